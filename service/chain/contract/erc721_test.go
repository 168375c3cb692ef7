package contract

import (
	"math/big"
	"testing"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/stretchr/testify/require"
)

type stubChainClient struct {
	owner common.Address
	calls int
	err   error
}

func (s *stubChainClient) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi ethabi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []interface{}{s.owner}, nil
}

func (s *stubChainClient) TransactionReceipt(ctx bCtx.Ctx, chainId int32, txHash domain.TxHash) (*types.Receipt, error) {
	return nil, domain.ErrNotFound
}

func TestErc721_OwnerOf(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	stub := &stubChainClient{owner: common.HexToAddress("0xAbC0000000000000000000000000000000000001")}
	e := NewErc721(&Erc721Cfg{ChainService: stub})
	token := landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "42"}

	owner, err := e.OwnerOf(ctx, token)
	req.NoError(err)
	req.Equal(domain.Address("0xabc0000000000000000000000000000000000001"), owner)
	req.Equal(1, stub.calls)

	// not memoized without a cache, every lookup goes to the ledger
	_, err = e.OwnerOf(ctx, token)
	req.NoError(err)
	req.Equal(2, stub.calls)
}

func TestErc721_OwnerOfMemoized(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	stub := &stubChainClient{owner: common.HexToAddress("0xAbC0000000000000000000000000000000000001")}
	e := NewErc721(&Erc721Cfg{ChainService: stub, OwnerCacheSize: 512 * 1024})
	token := landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "42"}

	for i := 0; i < 3; i++ {
		owner, err := e.OwnerOf(ctx, token)
		req.NoError(err)
		req.Equal(domain.Address("0xabc0000000000000000000000000000000000001"), owner)
	}
	req.Equal(1, stub.calls)

	// a different token is a different cache entry
	other := landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "43"}
	_, err := e.OwnerOf(ctx, other)
	req.NoError(err)
	req.Equal(2, stub.calls)
}

func TestErc721_OwnerOfErrorNotCached(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	stub := &stubChainClient{err: domain.ErrLedgerTimeout}
	e := NewErc721(&Erc721Cfg{ChainService: stub, OwnerCacheSize: 512 * 1024})
	token := landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "42"}

	_, err := e.OwnerOf(ctx, token)
	req.Equal(domain.ErrLedgerTimeout, err)
	_, err = e.OwnerOf(ctx, token)
	req.Equal(domain.ErrLedgerTimeout, err)
	req.Equal(2, stub.calls)

	stub.err = nil
	stub.owner = common.HexToAddress("0xAbC0000000000000000000000000000000000001")
	owner, err := e.OwnerOf(ctx, token)
	req.NoError(err)
	req.Equal(domain.Address("0xabc0000000000000000000000000000000000001"), owner)
}
