package contract

import (
	"fmt"
	"time"

	"github.com/coocood/freecache"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/platz/goapi/base/abi"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/service/chain"
)

type Erc721Contract interface {
	Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error)
	OwnerOf(ctx bCtx.Ctx, token landtoken.Id) (domain.Address, error)
}

type Erc721Cfg struct {
	ChainService chain.Client
	// OwnerCacheSize in bytes, owner lookups are not memoized when zero
	OwnerCacheSize int
	// OwnerCacheTtl bounds staleness of memoized owners, 10s when zero
	OwnerCacheTtl time.Duration
}

type Erc721 struct {
	chainService      chain.Client
	abi               ethabi.ABI
	erc721InterfaceId [4]byte
	ownerCache        *freecache.Cache
	ownerCacheTtl     time.Duration
}

func NewErc721(cfg *Erc721Cfg) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	e := &Erc721{
		abi:               baseabi.ERC721TokenABI,
		chainService:      cfg.ChainService,
		erc721InterfaceId: interfaceId,
		ownerCacheTtl:     cfg.OwnerCacheTtl,
	}
	if cfg.OwnerCacheSize > 0 {
		e.ownerCache = freecache.NewCache(cfg.OwnerCacheSize)
	}
	if e.ownerCacheTtl == 0 {
		e.ownerCacheTtl = 10 * time.Second
	}
	return e
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error) {
	method := "supportsInterface"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

// OwnerOf resolves the current owner on the ledger. Answers are memoized for
// a short ttl so bursts of validations against the same token do not hammer
// the rpc endpoint; errors are never cached.
func (e *Erc721) OwnerOf(ctx bCtx.Ctx, token landtoken.Id) (domain.Address, error) {
	var cacheKey []byte
	if e.ownerCache != nil {
		cacheKey = []byte(fmt.Sprintf("ownerOf:%s", token.ToString()))
		if val, err := e.ownerCache.Get(cacheKey); err == nil {
			return domain.Address(val), nil
		}
	}

	tokenId, err := token.TokenId.ToBigInt()
	if err != nil {
		return "", domain.ErrBadParamInput
	}
	method := "ownerOf"
	unpacked, err := e.chainService.Call(ctx, int32(token.ChainId), common.HexToAddress(string(token.ContractAddress)), nil, e.abi, method, tokenId)
	if err != nil {
		return "", err
	}
	owner := domain.Address(unpacked[0].(common.Address).String()).ToLower()

	if e.ownerCache != nil {
		_ = e.ownerCache.Set(cacheKey, []byte(owner), int(e.ownerCacheTtl/time.Second))
	}
	return owner, nil
}
