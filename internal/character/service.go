package character

import (
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type characterService struct {
	db *gorm.DB
}

type LeaderboardEntry struct {
	BuyerAddress string `json:"buyerAddress"`
	MintCount    int64  `json:"mintCount"`
}

func (cs *characterService) findAll(page utils.PageRequest) ([]model.Character, *int64, *reject.ProblemWithTrace) {
	characters := []model.Character{}
	count := int64(0)

	err := cs.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Character{}).Count(&count)
		if res.Error != nil {
			return res.Error
		}

		res = tx.Model(&model.Character{}).
			Order("minted_at DESC").
			Limit(page.Size).
			Offset(page.Offset).
			Find(&characters)

		return res.Error
	})

	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return characters, &count, nil
}

func (cs *characterService) leaderboard() ([]LeaderboardEntry, *reject.ProblemWithTrace) {
	entries := []LeaderboardEntry{}
	result := cs.db.Raw(`
		SELECT buyer_address
		     , COUNT(*) AS mint_count
		  FROM mint_event
	  GROUP BY buyer_address
	  ORDER BY mint_count DESC, buyer_address
	     LIMIT 20
	`).Scan(&entries)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	return entries, nil
}
