package domain

import (
	"fmt"
	"math/big"
	"strings"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

// Address is an evm address. Addresses are not case-sensitive identity, so
// every comparison must go through Equals.
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a == EmptyAddress
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id %s", i)
	}
	return id, nil
}

type BlockNumber uint64

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

// OwnershipSource tags where an owner resolution came from. Callers must
// propagate it for audit and lenience decisions.
type OwnershipSource string

const (
	OwnershipSourceDatabase   OwnershipSource = "database"
	OwnershipSourceBlockchain OwnershipSource = "blockchain"
	OwnershipSourceFallback   OwnershipSource = "fallback"
)
