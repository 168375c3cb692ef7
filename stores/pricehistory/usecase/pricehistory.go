package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/base/ptr"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/domain/pricehistory"
)

const (
	averageWindow     = 7 * 24 * time.Hour
	averageSampleSize = 10
	statsWindow       = 24 * time.Hour
)

type PriceHistoryUseCaseCfg struct {
	PriceHistoryRepo pricehistory.Repo
	LandTokenRepo    landtoken.Repo
	CollectionRepo   landtoken.CollectionRepo
	BidRepo          bid.Repo
}

type impl struct {
	priceHistoryRepo pricehistory.Repo
	landTokenRepo    landtoken.Repo
	collectionRepo   landtoken.CollectionRepo
	bidRepo          bid.Repo
}

func New(cfg *PriceHistoryUseCaseCfg) pricehistory.UseCase {
	return &impl{
		priceHistoryRepo: cfg.PriceHistoryRepo,
		landTokenRepo:    cfg.LandTokenRepo,
		collectionRepo:   cfg.CollectionRepo,
		bidRepo:          cfg.BidRepo,
	}
}

func isCollectionLevel(eventType pricehistory.EventType) bool {
	return eventType == pricehistory.EventTypeFloorPrice || eventType == pricehistory.EventTypeAveragePrice
}

func scopeOpt(token landtoken.Id, eventType pricehistory.EventType) pricehistory.FindAllOptionsFunc {
	if isCollectionLevel(eventType) {
		return pricehistory.WithCollection(token.ChainId, token.ContractAddress)
	}
	return pricehistory.WithToken(token)
}

// RecordEvent appends one price event, deriving the percent change against
// the previous event of the same type in the same scope.
func (im *impl) RecordEvent(c bCtx.Ctx, token landtoken.Id, eventType pricehistory.EventType, price float64, refs pricehistory.Refs) (*pricehistory.Entry, error) {
	entry := &pricehistory.Entry{
		ChainId:         token.ChainId,
		ContractAddress: token.ContractAddress.ToLower(),
		EventType:       eventType,
		Price:           price,
		BidId:           refs.BidId,
		TxHash:          refs.TxHash,
		CreatedAt:       time.Now(),
	}
	if !isCollectionLevel(eventType) {
		entry.TokenId = token.TokenId
	}

	prev, err := im.priceHistoryRepo.FindLatest(c, scopeOpt(token, eventType), pricehistory.WithEventTypes(eventType))
	if err == nil {
		entry.PreviousPrice = ptr.Float64(prev.Price)
		if prev.Price > 0 {
			entry.PercentChange = ptr.Float64((price - prev.Price) / prev.Price * 100)
		}
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	if err := im.priceHistoryRepo.Insert(c, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecalcFloorPrice recomputes the collection floor as the minimum listed
// token price, falling back to the collection listing price when no token is
// individually listed. Only positive floors are recorded, and an unchanged
// floor is not re-appended.
func (im *impl) RecalcFloorPrice(c bCtx.Ctx, token landtoken.Id) (float64, error) {
	floor := 0.0

	tokens, err := im.landTokenRepo.FindAll(c,
		landtoken.WithChainId(token.ChainId),
		landtoken.WithContractAddress(token.ContractAddress),
		landtoken.WithIsListed(true),
	)
	if err != nil {
		return 0, err
	}
	for _, t := range tokens {
		if t.Price == nil || *t.Price <= 0 {
			continue
		}
		if floor == 0 || *t.Price < floor {
			floor = *t.Price
		}
	}

	if floor == 0 {
		coll, err := im.collectionRepo.FindOne(c, token.ChainId, token.ContractAddress)
		if err == nil && coll.IsListed && coll.ListingPrice != nil && *coll.ListingPrice > 0 {
			floor = *coll.ListingPrice
		} else if err != nil && err != domain.ErrNotFound {
			return 0, err
		}
	}

	if floor <= 0 {
		// nothing listed, keep the previous floor untouched
		return 0, nil
	}

	latest, err := im.priceHistoryRepo.FindLatest(c,
		pricehistory.WithCollection(token.ChainId, token.ContractAddress),
		pricehistory.WithEventTypes(pricehistory.EventTypeFloorPrice),
	)
	if err == nil && latest.Price == floor {
		return floor, nil
	} else if err != nil && err != domain.ErrNotFound {
		return 0, err
	}

	if _, err := im.RecordEvent(c, token, pricehistory.EventTypeFloorPrice, floor, pricehistory.Refs{}); err != nil {
		c.WithFields(log.Fields{
			"collection": token.ContractAddress,
			"err":        err,
		}).Error("RecordEvent failed")
		return 0, err
	}
	return floor, nil
}

// RecalcAveragePrice averages the most recent sales and accepted bids of the
// trailing 7 days, capped at averageSampleSize entries per event type.
func (im *impl) RecalcAveragePrice(c bCtx.Ctx, token landtoken.Id) (float64, error) {
	since := time.Now().Add(-averageWindow)

	entries := []*pricehistory.Entry{}
	for _, eventType := range pricehistory.SettlementEventTypes {
		batch, err := im.priceHistoryRepo.FindAll(c,
			pricehistory.WithCollection(token.ChainId, token.ContractAddress),
			pricehistory.WithEventTypes(eventType),
			pricehistory.WithCreatedAfter(since),
			pricehistory.WithSort("createdAt", domain.SortDirDesc),
			pricehistory.WithLimit(averageSampleSize),
		)
		if err != nil {
			return 0, err
		}
		entries = append(entries, batch...)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.Price))
	}
	average, _ := sum.Div(decimal.NewFromInt(int64(len(entries)))).Float64()

	if _, err := im.RecordEvent(c, token, pricehistory.EventTypeAveragePrice, average, pricehistory.Refs{}); err != nil {
		c.WithFields(log.Fields{
			"collection": token.ContractAddress,
			"err":        err,
		}).Error("RecordEvent failed")
		return 0, err
	}
	return average, nil
}

// Get24hStats derives the trailing-24h market snapshot for a collection.
func (im *impl) Get24hStats(c bCtx.Ctx, token landtoken.Id) (*pricehistory.Stats24h, error) {
	since := time.Now().Add(-statsWindow)
	stats := &pricehistory.Stats24h{}

	sales, err := im.priceHistoryRepo.FindAll(c,
		pricehistory.WithCollection(token.ChainId, token.ContractAddress),
		pricehistory.WithEventTypes(pricehistory.SettlementEventTypes...),
		pricehistory.WithCreatedAfter(since),
	)
	if err != nil {
		return nil, err
	}
	volume := decimal.Zero
	for _, e := range sales {
		stats.SaleCount++
		volume = volume.Add(decimal.NewFromFloat(e.Price))
	}
	stats.Volume, _ = volume.Float64()

	latestFloor, err := im.priceHistoryRepo.FindLatest(c,
		pricehistory.WithCollection(token.ChainId, token.ContractAddress),
		pricehistory.WithEventTypes(pricehistory.EventTypeFloorPrice),
	)
	if err == nil {
		stats.FloorPrice = latestFloor.Price
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	oldFloor, err := im.priceHistoryRepo.FindLatest(c,
		pricehistory.WithCollection(token.ChainId, token.ContractAddress),
		pricehistory.WithEventTypes(pricehistory.EventTypeFloorPrice),
		pricehistory.WithCreatedBefore(since),
	)
	if err == nil && oldFloor.Price > 0 && stats.FloorPrice > 0 {
		stats.FloorChangePct = ptr.Float64((stats.FloorPrice - oldFloor.Price) / oldFloor.Price * 100)
	} else if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	topBid, err := im.bidRepo.FindActiveBid(c, token)
	if err == nil {
		stats.TopOffer = ptr.Float64(topBid.AmountInNative)
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	return stats, nil
}
