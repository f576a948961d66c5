package cosign

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/onflow/flow-go-sdk"
	"github.com/onflow/flow-go-sdk/crypto/cloudkms"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type cosignService struct {
	db *gorm.DB
}

func (cs *cosignService) VerifyAndSign(request CosignRequest) ([]byte, *reject.ProblemWithTrace) {
	signable, err := cs.parsePayload(request.Payload)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	log.
		Info().
		Msg(fmt.Sprintf("Checking cosign transaction %+v", signable))

	decodedData, err := hex.DecodeString(signable.Message[64:])
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	transaction, err := flow.DecodeTransaction(decodedData)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	if cs.validateRequestTxCode(string(transaction.Script)) {
		return cs.signVoucher(transaction)
	}

	err = fmt.Errorf("invalid request: you are not authorized to request this signature")
	return nil, &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}

func (cs *cosignService) signVoucher(transaction *flow.Transaction) ([]byte, *reject.ProblemWithTrace) {
	adminKMSKey, err := cloudkms.KeyFromResourceID(viper.Get("ADMIN_GCP_KMS_RESOURCE_NAME").(string))
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	ctx := context.Background()
	kmsClient, err := cloudkms.NewClient(ctx)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	signer, err := kmsClient.SignerForKey(
		ctx,
		adminKMSKey,
	)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	adminAddress := viper.Get("ADMIN_AUTHORIZER_ADDR").(string)
	err = transaction.SignEnvelope(flow.HexToAddress(adminAddress), 0, signer)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return transaction.EnvelopeSignatures[len(transaction.EnvelopeSignatures)-1].Signature, nil
}

func (cs *cosignService) parsePayload(payload map[string]any) (*Signable, error) {
	jsonByteSlice, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var t Signable
	err = json.Unmarshal(jsonByteSlice, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (cs *cosignService) validateRequestTxCode(requestTxCode string) bool {
	pattern := regexp.MustCompile(`\s`)
	serverTxCode := cs.getTxCode()
	serverTxCode = pattern.ReplaceAllString(serverTxCode, "")
	requestTxCode = pattern.ReplaceAllString(requestTxCode, "")

	if serverTxCode == requestTxCode {
		return true
	}

	log.Warn().Msg(fmt.Sprintf(
		"Transactions dont match: server \"%s\", request \"%s\"",
		serverTxCode,
		requestTxCode))

	return false
}

func (cs *cosignService) getTxCode() string {
	txCode := cs.getTxCodeTemplate()

	addressTemplates := map[string]string{
		"POGI_CHARACTER_ADDRESS":     viper.Get("POGI_CHARACTER_ADDRESS").(string),
		"FUNGIBLE_TOKEN_ADDRESS":     viper.Get("FUNGIBLE_TOKEN_ADDRESS").(string),
		"NON_FUNGIBLE_TOKEN_ADDRESS": viper.Get("NON_FUNGIBLE_TOKEN_ADDRESS").(string),
		"FLOW_TOKEN_ADDRESS":         viper.Get("FLOW_TOKEN_ADDRESS").(string),
	}

	for k, v := range addressTemplates {
		txCode = strings.ReplaceAll(txCode, k, v)
	}

	return txCode
}

func (cs *cosignService) getTxCodeTemplate() string {
	return `import PogiCharacter from 0xPOGI_CHARACTER_ADDRESS
import FungibleToken from 0xFUNGIBLE_TOKEN_ADDRESS
import NonFungibleToken from 0xNON_FUNGIBLE_TOKEN_ADDRESS
import FlowToken from 0xFLOW_TOKEN_ADDRESS

transaction(paymentAmount: UFix64, treasuryAddress: Address) {

    let paymentVault: @FungibleToken.Vault
    let collectionRef: &PogiCharacter.Collection{NonFungibleToken.Receiver}

    prepare(buyer: AuthAccount) {

        // Set up the buyer's collection if it is missing
        if buyer.borrow<&PogiCharacter.Collection>(from: PogiCharacter.CollectionStoragePath) == nil {
            buyer.save(<-PogiCharacter.createEmptyCollection(), to: PogiCharacter.CollectionStoragePath)

            buyer.link<
                &PogiCharacter.Collection{NonFungibleToken.Receiver, NonFungibleToken.CollectionPublic, PogiCharacter.PogiCharacterCollectionPublic}
                >(
                    PogiCharacter.CollectionPublicPath,
                    target: PogiCharacter.CollectionStoragePath
                )
        }

        self.collectionRef = buyer
            .getCapability<&PogiCharacter.Collection{NonFungibleToken.Receiver}>(PogiCharacter.CollectionPublicPath)
            .borrow() ?? panic("Could not borrow receiver reference to the buyer's collection")

        let vaultRef = buyer.borrow<&FlowToken.Vault>(from: /storage/flowTokenVault)
            ?? panic("Could not borrow reference to the buyer's FlowToken vault")

        self.paymentVault <- vaultRef.withdraw(amount: paymentAmount)
    }

    execute {
        let treasury = getAccount(treasuryAddress)
            .getCapability(/public/flowTokenReceiver)
            .borrow<&{FungibleToken.Receiver}>()
            ?? panic("Could not borrow receiver reference to the treasury vault")

        treasury.deposit(from: <-self.paymentVault)

        PogiCharacter.requestMint(recipient: self.collectionRef)
    }
}`
}
