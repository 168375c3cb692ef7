package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/base/metrics"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/audit"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/domain/pricehistory"
	"github.com/platz/goapi/domain/reconcile"
	"github.com/platz/goapi/domain/transaction"
)

const (
	// DefaultDuplicateSaleWindow guards against double settlement of a token
	DefaultDuplicateSaleWindow = time.Hour

	healPoolSize = 4
)

type ReconcileUseCaseCfg struct {
	LandTokenRepo    landtoken.Repo
	CollectionRepo   landtoken.CollectionRepo
	BidRepo          bid.Repo
	TransactionRepo  transaction.Repo
	AuditRepo        audit.Repo
	PriceHistoryUC   pricehistory.UseCase
	Marketplace      auction.Marketplace
	Oracle           reconcile.Oracle
	Lenience         reconcile.LeniencePolicy
	// DuplicateSaleWindow defaults to DefaultDuplicateSaleWindow when zero
	DuplicateSaleWindow time.Duration
}

type impl struct {
	landTokenRepo   landtoken.Repo
	collectionRepo  landtoken.CollectionRepo
	bidRepo         bid.Repo
	transactionRepo transaction.Repo
	auditRepo       audit.Repo
	priceHistoryUC  pricehistory.UseCase
	marketplace     auction.Marketplace
	oracle          reconcile.Oracle
	lenience        reconcile.LeniencePolicy
	duplicateWindow time.Duration
	healPool        *goroutines.Pool
	met             metrics.Service
}

// Service is the full reconciliation surface: bid validation plus owner
// resolution.
type Service interface {
	bid.UseCase
	reconcile.Resolver
}

// New builds the reconciliation and validation service.
func New(cfg *ReconcileUseCaseCfg) Service {
	window := cfg.DuplicateSaleWindow
	if window == 0 {
		window = DefaultDuplicateSaleWindow
	}
	return &impl{
		landTokenRepo:   cfg.LandTokenRepo,
		collectionRepo:  cfg.CollectionRepo,
		bidRepo:         cfg.BidRepo,
		transactionRepo: cfg.TransactionRepo,
		auditRepo:       cfg.AuditRepo,
		priceHistoryUC:  cfg.PriceHistoryUC,
		marketplace:     cfg.Marketplace,
		oracle:          cfg.Oracle,
		lenience:        cfg.Lenience,
		duplicateWindow: window,
		healPool:        goroutines.NewPool(healPoolSize),
		met:             metrics.New("reconcile"),
	}
}

// ResolveOwner is the tiered owner resolver: per-token cache record first,
// collection creator fallback second, ledger read last. A ledger-sourced
// cache record is re-confirmed against the ledger when reachable.
func (im *impl) ResolveOwner(c bCtx.Ctx, token landtoken.Id) (*reconcile.Resolution, error) {
	t, err := im.landTokenRepo.FindOne(c, token)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if err == nil && !t.Owner.IsEmpty() {
		res := &reconcile.Resolution{
			Owner:  t.Owner,
			Source: domain.OwnershipSourceDatabase,
		}
		if t.OwnerSource != domain.OwnershipSourceBlockchain {
			return res, nil
		}
		ledgerOwner, oerr := im.oracle.OwnerOf(c, token)
		if oerr != nil {
			// ledger unreachable, serve the possibly-stale mirror
			c.WithFields(log.Fields{
				"token": token.ToString(),
				"err":   oerr,
			}).Warn("oracle.OwnerOf failed, using cached owner")
			im.met.BumpSum("resolve_owner.ledger_unreachable", 1)
			return res, nil
		}
		res.LedgerChecked = true
		if !t.Owner.Equals(ledgerOwner) {
			im.met.BumpSum("resolve_owner.divergence", 1)
			im.healOwner(c, token, ledgerOwner)
			res.Owner = ledgerOwner
			res.Source = domain.OwnershipSourceBlockchain
		}
		return res, nil
	}

	coll, err := im.collectionRepo.FindOne(c, token.ChainId, token.ContractAddress)
	if err == nil && !coll.Creator.IsEmpty() {
		return &reconcile.Resolution{
			Owner:  coll.Creator,
			Source: domain.OwnershipSourceFallback,
		}, nil
	} else if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	ledgerOwner, err := im.oracle.OwnerOf(c, token)
	if err == domain.ErrNotFound {
		return nil, domain.ErrOwnerUnresolved
	} else if err != nil {
		return nil, err
	}
	if ledgerOwner.IsEmpty() {
		return nil, domain.ErrOwnerUnresolved
	}
	return &reconcile.Resolution{
		Owner:         ledgerOwner,
		Source:        domain.OwnershipSourceBlockchain,
		LedgerChecked: true,
	}, nil
}

// SyncOwnershipWithBlockchain re-reads the ledger and unconditionally
// overwrites the cached owner. Idempotent, last writer wins.
func (im *impl) SyncOwnershipWithBlockchain(c bCtx.Ctx, token landtoken.Id) (domain.Address, error) {
	owner, err := im.oracle.OwnerOf(c, token)
	if err != nil {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"err":   err,
		}).Error("oracle.OwnerOf failed")
		return "", err
	}
	if err := im.landTokenRepo.SetOwner(c, token, owner, domain.OwnershipSourceBlockchain); err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"owner": owner,
			"err":   err,
		}).Error("landTokenRepo.SetOwner failed")
		return "", err
	}
	return owner, nil
}

// healOwner repairs the cache mirror in the background. Best effort: failure
// is logged and never surfaces to the caller.
func (im *impl) healOwner(c bCtx.Ctx, token landtoken.Id, owner domain.Address) {
	healCtx := bCtx.WithValues(bCtx.Background(), map[string]interface{}{
		"token": token.ToString(),
	})
	err := im.healPool.Schedule(func() {
		if err := im.landTokenRepo.SetOwner(healCtx, token, owner, domain.OwnershipSourceBlockchain); err != nil && err != domain.ErrNotFound {
			healCtx.WithField("err", err).Warn("owner heal failed")
			im.met.BumpSum("heal_owner.err", 1)
		} else {
			im.met.BumpSum("heal_owner.ok", 1)
		}
	})
	if err != nil {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"err":   err,
		}).Warn("failed to schedule owner heal")
	}
}

func (im *impl) PlaceBid(c bCtx.Ctx, token landtoken.Id, bidder domain.Address, amountStr string) (*bid.PlaceBidResult, error) {
	defer im.met.BumpTime("place_bid.time").End()

	if bidder.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}
	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	bidder = bidder.ToLower()

	result := &bid.PlaceBidResult{}
	resolution, err := im.ResolveOwner(c, token)
	if err != nil {
		if !im.lenience.Allows(err) {
			im.met.BumpSum("place_bid.err", 1)
			return nil, err
		}
		c.WithFields(log.Fields{
			"token":  token.ToString(),
			"bidder": bidder,
			"err":    err,
		}).Warn("owner unresolved, lenience bypass")
		result.Bypassed = true
		result.BypassReason = string(audit.BypassReasonConnectivity)
	} else {
		result.OwnerSource = resolution.Source
		if resolution.Owner.Equals(bidder) {
			return nil, domain.ErrSelfBid
		}
	}

	txHash, err := im.marketplace.PlaceBid(c, token, bidder, amount)
	if err != nil {
		im.met.BumpSum("place_bid.contract_err", 1)
		return nil, err
	}

	now := time.Now()
	newBid := &bid.Bid{
		Id:              uuid.New().String(),
		ChainId:         token.ChainId,
		ContractAddress: token.ContractAddress.ToLower(),
		TokenId:         token.TokenId,
		Bidder:          bidder,
		Amount:          amount.String(),
		AmountInNative:  weiToNative(amount),
		Status:          bid.StatusActive,
		TxHash:          txHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := im.bidRepo.Create(c, newBid); err != nil {
		c.WithFields(log.Fields{
			"bid": *newBid,
			"err": err,
		}).Error("bidRepo.Create failed")
		return nil, err
	}
	if err := im.bidRepo.SetStatusByToken(c, token, bid.StatusActive, bid.StatusOutbid, newBid.Id); err != nil {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"err":   err,
		}).Error("bidRepo.SetStatusByToken failed")
		return nil, err
	}

	im.recordTransaction(c, &transaction.Transaction{
		TxHash:          txHash,
		ChainId:         token.ChainId,
		ContractAddress: token.ContractAddress,
		TokenId:         token.TokenId,
		From:            bidder,
		Price:           amount.String(),
		PriceInNative:   newBid.AmountInNative,
		Type:            transaction.TypeBidPlaced,
		CreatedAt:       now,
	})

	if _, err := im.priceHistoryUC.RecordEvent(c, token, pricehistory.EventTypeBid, newBid.AmountInNative, pricehistory.Refs{
		BidId:  &newBid.Id,
		TxHash: &txHash,
	}); err != nil {
		c.WithFields(log.Fields{
			"bidId": newBid.Id,
			"err":   err,
		}).Warn("priceHistoryUC.RecordEvent failed")
	}

	if result.Bypassed {
		im.recordBypass(c, newBid, bidder, "place_bid")
	}

	im.met.BumpSum("place_bid.ok", 1)
	result.Bid = newBid
	result.TxHash = txHash
	return result, nil
}

func (im *impl) AcceptBid(c bCtx.Ctx, bidId string, caller domain.Address) (*bid.AcceptBidResult, error) {
	defer im.met.BumpTime("accept_bid.time").End()

	if caller.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}
	caller = caller.ToLower()

	b, err := im.bidRepo.FindOne(c, bidId)
	if err != nil {
		return nil, err
	}
	token := b.TokenRef()

	// the window guard runs before the status check: a retry of an
	// already-settled acceptance must surface the prior settlement, not a
	// bid-state rejection
	if recent, err := im.bidRepo.FindRecentAccepted(c, token, im.duplicateWindow); err == nil {
		dup := &domain.DuplicateSaleError{}
		if recent.AcceptedAt != nil {
			dup.SettledAt = *recent.AcceptedAt
		}
		if recent.AcceptedTxHash != nil {
			dup.TxHash = *recent.AcceptedTxHash
		}
		im.met.BumpSum("accept_bid.duplicate_sale", 1)
		return nil, dup
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	if b.Status != bid.StatusActive {
		return nil, domain.ErrBidNotActive
	}

	result := &bid.AcceptBidResult{}
	resolution, err := im.ResolveOwner(c, token)
	if err != nil {
		if !im.lenience.Allows(err) {
			im.met.BumpSum("accept_bid.err", 1)
			return nil, err
		}
		c.WithFields(log.Fields{
			"bidId":  bidId,
			"caller": caller,
			"err":    err,
		}).Warn("owner unresolved, lenience bypass")
		result.Bypassed = true
		result.BypassReason = string(audit.BypassReasonConnectivity)
	} else {
		result.OwnerSource = resolution.Source
		if !resolution.Owner.Equals(caller) {
			// the mirror may be stale, the ledger has the last word on the
			// critical ownership check
			if resolution.LedgerChecked {
				return nil, domain.ErrNotOwner
			}
			ledgerOwner, oerr := im.oracle.OwnerOf(c, token)
			if oerr != nil || !ledgerOwner.Equals(caller) {
				return nil, domain.ErrNotOwner
			}
			im.met.BumpSum("accept_bid.divergence_healed", 1)
			im.healOwner(c, token, ledgerOwner)
			result.OwnerSource = domain.OwnershipSourceBlockchain
		}
	}

	// self trade is judged against the resolved owner; past this point the
	// caller either is that owner or passed under the lenience bypass
	if b.Bidder.Equals(caller) {
		return nil, domain.ErrSelfTrade
	}

	settlement, err := im.marketplace.AcceptBid(c, token, caller)
	if err != nil {
		im.met.BumpSum("accept_bid.contract_err", 1)
		return nil, err
	}

	im.finishSettlement(c, b, settlement)

	if result.Bypassed {
		im.recordBypass(c, b, caller, "accept_bid")
	}

	im.met.BumpSum("accept_bid.ok", 1)
	result.Bid = b
	result.Settlement = settlement
	return result, nil
}

func (im *impl) WithdrawBid(c bCtx.Ctx, bidId string, caller domain.Address) (domain.TxHash, error) {
	defer im.met.BumpTime("withdraw_bid.time").End()

	caller = caller.ToLower()
	b, err := im.bidRepo.FindOne(c, bidId)
	if err != nil {
		return "", err
	}
	if b.Status != bid.StatusActive {
		return "", domain.ErrBidNotActive
	}
	if !b.Bidder.Equals(caller) {
		return "", domain.ErrNotOwner
	}

	txHash, err := im.marketplace.WithdrawBid(c, b.TokenRef(), caller)
	if err != nil {
		im.met.BumpSum("withdraw_bid.contract_err", 1)
		return "", err
	}

	now := time.Now()
	status := bid.StatusWithdrawn
	if err := im.bidRepo.Patch(c, bidId, bid.PatchableBid{
		Status:    &status,
		UpdatedAt: &now,
	}); err != nil {
		c.WithFields(log.Fields{
			"bidId": bidId,
			"err":   err,
		}).Error("bidRepo.Patch failed")
		return "", err
	}

	im.met.BumpSum("withdraw_bid.ok", 1)
	return txHash, nil
}

// finishSettlement performs the post-settlement bookkeeping: the transaction
// record, bid status transitions, the cache mirror, and the analytics
// recomputation. All of it runs before the settlement response returns, so a
// success response implies the caches already reflect the sale.
func (im *impl) finishSettlement(c bCtx.Ctx, b *bid.Bid, settlement *auction.Settlement) {
	now := time.Now()
	token := settlement.Token
	priceNative := weiToNative(settlement.Price)

	im.recordTransaction(c, &transaction.Transaction{
		TxHash:          settlement.TxHash,
		ChainId:         token.ChainId,
		ContractAddress: token.ContractAddress,
		TokenId:         token.TokenId,
		From:            settlement.Seller,
		To:              settlement.Buyer,
		Price:           settlement.Price.String(),
		PriceInNative:   priceNative,
		Type:            transaction.TypeBidAccepted,
		CreatedAt:       now,
	})

	status := bid.StatusAccepted
	acceptedAt := settlement.SettledAt
	acceptedTx := settlement.TxHash
	if err := im.bidRepo.Patch(c, b.Id, bid.PatchableBid{
		Status:         &status,
		AcceptedTxHash: &acceptedTx,
		AcceptedAt:     &acceptedAt,
		UpdatedAt:      &now,
	}); err != nil {
		c.WithFields(log.Fields{
			"bidId": b.Id,
			"err":   err,
		}).Error("bidRepo.Patch failed")
	}
	b.Status = status
	b.AcceptedTxHash = &acceptedTx
	b.AcceptedAt = &acceptedAt

	if err := im.bidRepo.SetStatusByToken(c, token, bid.StatusActive, bid.StatusCancelled, b.Id); err != nil {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"err":   err,
		}).Error("bidRepo.SetStatusByToken failed")
	}

	if err := im.landTokenRepo.SetOwner(c, token, settlement.Buyer, domain.OwnershipSourceBlockchain); err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"err":   err,
		}).Error("landTokenRepo.SetOwner failed")
	}
	listed := false
	if err := im.landTokenRepo.Patch(c, token, landtoken.PatchableLandToken{
		IsListed:  &listed,
		SoldAt:    &now,
		UpdatedAt: &now,
	}); err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"token": token.ToString(),
			"err":   err,
		}).Error("landTokenRepo.Patch failed")
	}

	if _, err := im.priceHistoryUC.RecordEvent(c, token, pricehistory.EventTypeBidAccepted, priceNative, pricehistory.Refs{
		BidId:  &b.Id,
		TxHash: &acceptedTx,
	}); err != nil {
		c.WithFields(log.Fields{
			"bidId": b.Id,
			"err":   err,
		}).Warn("priceHistoryUC.RecordEvent failed")
	}
	if _, err := im.priceHistoryUC.RecalcFloorPrice(c, token); err != nil {
		c.WithField("err", err).Warn("priceHistoryUC.RecalcFloorPrice failed")
	}
	if _, err := im.priceHistoryUC.RecalcAveragePrice(c, token); err != nil {
		c.WithField("err", err).Warn("priceHistoryUC.RecalcAveragePrice failed")
	}
}

// recordTransaction writes the settled-transaction record. A duplicate tx
// hash means the record is already there, which is exactly what we want.
func (im *impl) recordTransaction(c bCtx.Ctx, t *transaction.Transaction) {
	if err := im.transactionRepo.Create(c, t); err == domain.ErrConflict {
		c.WithField("txHash", t.TxHash).Info("transaction already recorded")
	} else if err != nil {
		c.WithFields(log.Fields{
			"txHash": t.TxHash,
			"err":    err,
		}).Error("transactionRepo.Create failed")
	}
}

func (im *impl) recordBypass(c bCtx.Ctx, b *bid.Bid, actor domain.Address, operation string) {
	entry := &audit.Entry{
		BidId:           b.Id,
		ChainId:         b.ChainId,
		ContractAddress: b.ContractAddress,
		TokenId:         b.TokenId,
		Actor:           actor,
		Operation:       operation,
		Reason:          audit.BypassReasonConnectivity,
		Detail:          "ownership could not be resolved against the ledger",
		CreatedAt:       time.Now(),
	}
	if err := im.auditRepo.Insert(c, entry); err != nil {
		c.WithFields(log.Fields{
			"bidId": b.Id,
			"err":   err,
		}).Error("auditRepo.Insert failed")
	}
	im.met.BumpSum("lenience_bypass", 1, "operation:"+operation)
}

func weiToNative(wei *big.Int) float64 {
	native, _ := decimal.NewFromBigInt(wei, -18).Float64()
	return native
}
