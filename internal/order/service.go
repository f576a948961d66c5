package order

import (
	"errors"
	"net/http"

	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"
	"gorm.io/gorm"
)

const (
	trackingInvalid  string = "error.order.tracking-invalid"
	decryptionFailed string = "error.order.decryption-failed"
	commandFailed    string = "error.order.command-publish-failed"
)

type orderService struct {
	db           *gorm.DB
	bridge       *receiptContractBridge
	newDecryptor func(privateKeyHex string) shipping.Decryptor
}

func (os *orderService) findByBuyer(page utils.PageRequest, address string) ([]model.Receipt, *int64, *reject.ProblemWithTrace) {
	receipts := []model.Receipt{}
	count := int64(0)

	err := os.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Receipt{}).
			Where("buyer_address = ?", address).
			Count(&count)
		if res.Error != nil {
			return res.Error
		}

		res = tx.Model(&model.Receipt{}).
			Where("buyer_address = ?", address).
			Order("created_at DESC").
			Limit(page.Size).
			Offset(page.Offset).
			Find(&receipts)

		return res.Error
	})

	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return receipts, &count, nil
}

func (os *orderService) findAll(page utils.PageRequest, status model.OrderStatus) ([]model.Receipt, *int64, *reject.ProblemWithTrace) {
	receipts := []model.Receipt{}
	count := int64(0)

	query := os.db.Model(&model.Receipt{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Count(&count).Error
	if err == nil {
		err = query.
			Order("created_at DESC").
			Limit(page.Size).
			Offset(page.Offset).
			Find(&receipts).Error
	}

	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return receipts, &count, nil
}

func (os *orderService) findByReceiptId(receiptId string) (*model.Receipt, *reject.ProblemWithTrace) {
	var receipt model.Receipt
	result := os.db.
		Model(&model.Receipt{}).
		Where("receipt_id = ?", receiptId).
		First(&receipt)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem(),
				Cause:   result.Error,
			}
		}
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	return &receipt, nil
}

// markShipped submits the PENDING -> SHIPPED transition. The contract re-checks
// the precondition on chain; this check exists so an admin double-action fails
// fast instead of burning a transaction.
func (os *orderService) markShipped(receiptId string) *reject.ProblemWithTrace {
	receipt, problem := os.findByReceiptId(receiptId)
	if problem != nil {
		return problem
	}

	if !receipt.Status.CanTransitionTo(model.OrderShipped) {
		return &reject.ProblemWithTrace{
			Problem: reject.ConflictProblem("receipt is not pending"),
		}
	}

	if err := os.bridge.markShipped(receiptId); err != nil {
		return commandProblem(err)
	}

	return nil
}

// addTracking attaches or edits tracking metadata. It never changes the
// status, and it is rejected while the order is still pending.
func (os *orderService) addTracking(receiptId string, request TrackingRequest) *reject.ProblemWithTrace {
	if violations := request.validate(); len(violations) > 0 {
		details := make([]reject.ProblemDetail, 0, len(violations))
		for _, violation := range violations {
			details = append(details, reject.ProblemDetail{Info: violation, Code: trackingInvalid})
		}
		return &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Tracking info is invalid").
				WithStatus(http.StatusBadRequest).
				WithCode(trackingInvalid).
				WithErrors(details).
				Build(),
		}
	}

	receipt, problem := os.findByReceiptId(receiptId)
	if problem != nil {
		return problem
	}

	if receipt.Status == model.OrderPending {
		return &reject.ProblemWithTrace{
			Problem: reject.ConflictProblem("tracking cannot be attached to a pending receipt"),
		}
	}

	if err := os.bridge.setTracking(receiptId, request); err != nil {
		return commandProblem(err)
	}

	return nil
}

// decryptShipping reveals the shipping info for one receipt using the
// operator-supplied key. The plaintext is returned to the caller and dropped;
// a wrong key is an expected, recoverable failure.
func (os *orderService) decryptShipping(receiptId string, privateKeyHex string) (*shipping.ShippingInfo, *reject.ProblemWithTrace) {
	receipt, problem := os.findByReceiptId(receiptId)
	if problem != nil {
		return nil, problem
	}

	info, err := os.newDecryptor(privateKeyHex).Decrypt(receipt.EncryptedShippingInfo)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Decryption failed").
				WithDetail("The private key does not match this deployment's shipping key, or the blob is corrupted.").
				WithStatus(http.StatusBadRequest).
				WithCode(decryptionFailed).
				Build(),
			Cause: err,
		}
	}

	return info, nil
}

func commandProblem(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.NewProblem().
			WithTitle("Receipt update could not be submitted").
			WithStatus(http.StatusBadGateway).
			WithCode(commandFailed).
			Build(),
		Cause: err,
	}
}
