package blockchain

import (
	"context"
	"strings"

	"github.com/onflow/cadence"
	"github.com/onflow/flow-go-sdk"
	"github.com/onflow/flow-go-sdk/access/grpc"
	"github.com/spf13/viper"
)

const balanceScript = `
	import FungibleToken from 0xFUNGIBLE_TOKEN_ADDRESS
	import FlowToken from 0xFLOW_TOKEN_ADDRESS

	pub fun main(account: Address): UFix64 {

	let vaultRef = getAccount(account)
	.getCapability(/public/flowTokenBalance)
	.borrow<&FlowToken.Vault{FungibleToken.Balance}>()
	?? panic("Could not borrow Balance reference to the Vault")

	return vaultRef.balance
	}
	`

// CheckBalance executes the balance script against the configured access node
// and returns the account balance as the node reports it.
func CheckBalance(ctx context.Context, address string) (string, error) {
	txCode := balanceScript

	addressTemplates := map[string]string{
		"0xFLOW_TOKEN_ADDRESS":     viper.Get("FLOW_TOKEN_ADDRESS").(string),
		"0xFUNGIBLE_TOKEN_ADDRESS": viper.Get("FUNGIBLE_TOKEN_ADDRESS").(string),
	}

	for k, v := range addressTemplates {
		txCode = strings.ReplaceAll(txCode, k, v)
	}

	c, err := grpc.NewClient(viper.Get("FLOW_ACCESS_NODE").(string))
	if err != nil {
		return "", err
	}

	flowAddress := flow.HexToAddress(address)
	cadenceAddress := cadence.BytesToAddress(flowAddress.Bytes())
	args := []cadence.Value{cadence.Address(cadenceAddress)}

	balance, err := c.ExecuteScriptAtLatestBlock(ctx, []byte(txCode), args)
	if err != nil {
		return "", err
	}

	return balance.String(), nil
}
