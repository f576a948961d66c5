package shop

import (
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type shopService struct {
	db *gorm.DB
}

// FindAllActive lists the merchandise a buyer can bundle with a mint. Item
// tags from here end up comma-joined on the receipt as itemsSelected.
func (ss *shopService) FindAllActive() ([]model.MerchItem, *reject.ProblemWithTrace) {
	var items []model.MerchItem
	result := ss.db.
		Model(&model.MerchItem{}).
		Where("active = true").
		Find(&items)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	return items, nil
}
