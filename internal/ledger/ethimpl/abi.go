package ethimpl

import (
	_ "embed"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	//go:embed abis/PostContract.json
	postContractJSON string
	//go:embed abis/ERC20.json
	erc20JSON string
)

const (
	eventUsernameSet = "UsernameSet"
	eventTransfer    = "Transfer"
)

func parseABIs() (post abi.ABI, token abi.ABI, err error) {
	post, err = abi.JSON(strings.NewReader(postContractJSON))
	if err != nil {
		return post, token, err
	}
	token, err = abi.JSON(strings.NewReader(erc20JSON))
	return post, token, err
}
