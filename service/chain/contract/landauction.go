package contract

import (
	"math/big"
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	baseabi "github.com/platz/goapi/base/abi"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/service/chain"
)

// listing states as encoded by the contract's getListing view
const (
	rawListingNone uint8 = iota
	rawListingListed
	rawListingSold
	rawListingCancelled
)

type LandAuctionCfg struct {
	ChainService chain.Client
	Transactor   chain.Transactor
	// Addresses maps chain id to the deployed auction contract
	Addresses map[int32]domain.Address
}

// LandAuction is the chain-backed auction contract binding. Reads go through
// the bounded-timeout client, mutations are signed and submitted by the
// transactor and never retried here.
type LandAuction struct {
	chainService chain.Client
	transactor   chain.Transactor
	addresses    map[int32]domain.Address
	abi          ethabi.ABI
	settledTopic common.Hash
}

func NewLandAuction(cfg *LandAuctionCfg) *LandAuction {
	return &LandAuction{
		chainService: cfg.ChainService,
		transactor:   cfg.Transactor,
		addresses:    cfg.Addresses,
		abi:          baseabi.LandAuctionABI,
		settledTopic: baseabi.LandAuctionABI.Events["Settled"].ID,
	}
}

func (a *LandAuction) contractOf(chainId domain.ChainId) (common.Address, error) {
	addr, ok := a.addresses[int32(chainId)]
	if !ok {
		return common.Address{}, chain.ErrUnsupportedChain
	}
	return common.HexToAddress(string(addr)), nil
}

func (a *LandAuction) send(ctx bCtx.Ctx, token landtoken.Id, value *big.Int, method string, extra ...interface{}) (domain.TxHash, error) {
	contract, err := a.contractOf(token.ChainId)
	if err != nil {
		return "", err
	}
	tokenId, err := token.TokenId.ToBigInt()
	if err != nil {
		return "", domain.ErrBadParamInput
	}
	params := append([]interface{}{common.HexToAddress(string(token.ContractAddress)), tokenId}, extra...)
	txHash, err := a.transactor.Send(ctx, int32(token.ChainId), contract, value, a.abi, method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token":  token.ToString(),
			"method": method,
			"err":    err,
		}).Error("transactor.Send failed")
		return "", err
	}
	return txHash, nil
}

func (a *LandAuction) CreateListing(ctx bCtx.Ctx, token landtoken.Id, seller domain.Address, price *big.Int) (domain.TxHash, error) {
	if price == nil || price.Sign() <= 0 {
		return "", auction.ErrInvalidPrice
	}
	return a.send(ctx, token, nil, "createListing", price)
}

func (a *LandAuction) CancelListing(ctx bCtx.Ctx, token landtoken.Id, seller domain.Address) (domain.TxHash, error) {
	return a.send(ctx, token, nil, "cancelListing")
}

func (a *LandAuction) PlaceBid(ctx bCtx.Ctx, token landtoken.Id, bidder domain.Address, amount *big.Int) (domain.TxHash, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", domain.ErrInvalidAmount
	}
	return a.send(ctx, token, amount, "placeBid")
}

func (a *LandAuction) AcceptBid(ctx bCtx.Ctx, token landtoken.Id, caller domain.Address) (*auction.Settlement, error) {
	txHash, err := a.send(ctx, token, nil, "acceptBid")
	if err != nil {
		return nil, err
	}
	receipt, err := a.transactor.WaitMined(ctx, int32(token.ChainId), txHash)
	if err != nil {
		return nil, err
	}
	return a.settlementFromReceipt(ctx, token, auction.SettlementKindBidAccepted, txHash, receipt)
}

func (a *LandAuction) WithdrawBid(ctx bCtx.Ctx, token landtoken.Id, caller domain.Address) (domain.TxHash, error) {
	return a.send(ctx, token, nil, "withdrawBid")
}

func (a *LandAuction) Purchase(ctx bCtx.Ctx, token landtoken.Id, buyer domain.Address, payment *big.Int) (*auction.Settlement, error) {
	if payment == nil || payment.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	txHash, err := a.send(ctx, token, payment, "purchase")
	if err != nil {
		return nil, err
	}
	receipt, err := a.transactor.WaitMined(ctx, int32(token.ChainId), txHash)
	if err != nil {
		return nil, err
	}
	return a.settlementFromReceipt(ctx, token, auction.SettlementKindPurchase, txHash, receipt)
}

func (a *LandAuction) GetListing(ctx bCtx.Ctx, token landtoken.Id) (*auction.Listing, error) {
	contract, err := a.contractOf(token.ChainId)
	if err != nil {
		return nil, err
	}
	tokenId, err := token.TokenId.ToBigInt()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	method := "getListing"
	unpacked, err := a.chainService.Call(ctx, int32(token.ChainId), contract, nil, a.abi, method, common.HexToAddress(string(token.ContractAddress)), tokenId)
	if err != nil {
		return nil, err
	}
	listing := &auction.Listing{
		Seller: domain.Address(unpacked[0].(common.Address).String()).ToLower(),
		Price:  unpacked[1].(*big.Int),
	}
	switch unpacked[2].(uint8) {
	case rawListingListed:
		listing.State = auction.ListingStateListed
	case rawListingSold:
		listing.State = auction.ListingStateSold
	case rawListingCancelled:
		listing.State = auction.ListingStateCancelled
	default:
		return nil, auction.ErrNoListing
	}
	return listing, nil
}

func (a *LandAuction) HighestBid(ctx bCtx.Ctx, token landtoken.Id) (*auction.EscrowedBid, error) {
	contract, err := a.contractOf(token.ChainId)
	if err != nil {
		return nil, err
	}
	tokenId, err := token.TokenId.ToBigInt()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	method := "highestBid"
	unpacked, err := a.chainService.Call(ctx, int32(token.ChainId), contract, nil, a.abi, method, common.HexToAddress(string(token.ContractAddress)), tokenId)
	if err != nil {
		return nil, err
	}
	bidder := domain.Address(unpacked[0].(common.Address).String()).ToLower()
	if bidder.IsEmpty() {
		return nil, auction.ErrNoBid
	}
	return &auction.EscrowedBid{
		Bidder:   bidder,
		Amount:   unpacked[1].(*big.Int),
		PlacedAt: time.Unix(unpacked[2].(*big.Int).Int64(), 0),
	}, nil
}

// settlementFromReceipt decodes the Settled event out of a mined settlement
// transaction. The event is the source of truth for the fund split.
func (a *LandAuction) settlementFromReceipt(ctx bCtx.Ctx, token landtoken.Id, kind auction.SettlementKind, txHash domain.TxHash, receipt *types.Receipt) (*auction.Settlement, error) {
	for _, logEntry := range receipt.Logs {
		if len(logEntry.Topics) == 0 || logEntry.Topics[0] != a.settledTopic {
			continue
		}
		settled, err := baseabi.ToLandAuctionSettledLog(logEntry)
		if err != nil {
			ctx.WithFields(log.Fields{
				"tx":  txHash,
				"err": err,
			}).Error("failed to decode settled log")
			return nil, err
		}
		return &auction.Settlement{
			TxHash:         txHash,
			Token:          token,
			Kind:           kind,
			Seller:         domain.Address(settled.Seller.String()).ToLower(),
			Buyer:          domain.Address(settled.Buyer.String()).ToLower(),
			Price:          settled.Price,
			SellerProceeds: new(big.Int).Sub(settled.Price, settled.Fee),
			Fee:            settled.Fee,
			SettledAt:      time.Now(),
		}, nil
	}
	ctx.WithField("tx", txHash).Error("mined settlement has no settled log")
	return nil, domain.ErrSettlementFailed
}
