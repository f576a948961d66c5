package mint

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/blockchain"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const (
	shippingInvalid     string = "error.mint.shipping-info-invalid"
	insufficientBalance string = "error.mint.insufficient-balance"
	encryptionFailed    string = "error.mint.shipping-encryption-failed"
	commandFailed       string = "error.mint.command-publish-failed"
)

type mintService struct {
	db     *gorm.DB
	keys   shipping.KeyConfig
	bridge *receiptContractBridge
}

// mintCharacter runs the checkout sequence: validate the shipping form,
// precheck the buyer balance, encrypt the shipping data and hand the mint
// command to the chain worker. Encryption happens before anything touches
// the chain; if the command publish fails the blob is simply discarded.
func (ms *mintService) mintCharacter(ctx context.Context, request MintRequest) *reject.ProblemWithTrace {
	validation := shipping.Validate(request.ShippingInfo)
	if !validation.Valid {
		details := make([]reject.ProblemDetail, 0, len(validation.Errors))
		for _, violation := range validation.Errors {
			details = append(details, reject.ProblemDetail{Info: violation, Code: shippingInvalid})
		}
		return &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Shipping info is invalid").
				WithStatus(http.StatusBadRequest).
				WithCode(shippingInvalid).
				WithErrors(details).
				Build(),
		}
	}

	mintPrice, err := strconv.ParseFloat(viper.Get("MINT_PRICE").(string), 64)
	if err != nil {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	balance, err := blockchain.CheckBalance(ctx, request.BuyerAddress)
	if err != nil {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	bf, err := strconv.ParseFloat(balance, 64)
	if err != nil {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	if bf < mintPrice {
		return &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Wallet balance does not cover the mint price").
				WithStatus(http.StatusUnprocessableEntity).
				WithCode(insufficientBalance).
				Build(),
		}
	}

	blob, err := shipping.Encrypt(request.ShippingInfo, ms.keys.PublicKeyHex)
	if err != nil {
		// fatal for this checkout attempt, nothing can be minted without
		// an encrypted shipping blob
		log.Error().Err(err).Msg("Shipping encryption failed during checkout")
		return &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Cannot encrypt shipping info").
				WithStatus(http.StatusInternalServerError).
				WithCode(encryptionFailed).
				Build(),
			Cause: err,
		}
	}

	if err := ms.bridge.mint(request, blob, ms.keys.PublicKeyHex, mintPrice); err != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Mint transaction could not be submitted").
				WithStatus(http.StatusBadGateway).
				WithCode(commandFailed).
				Build(),
			Cause: err,
		}
	}

	return nil
}
