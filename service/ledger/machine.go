package ledger

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/domain/landtoken"
)

// Machine models the ledger auction contract as an in-process state machine:
// per-token listing and bid sub-states, escrowed funds, monotonic bid
// increase, self-refunds and atomic settlement with fee split. Every
// operation happens-or-not under one lock, mirroring transaction atomicity.
//
// It implements auction.Marketplace and serves as the ledger in tests.
type Machine struct {
	mu           sync.Mutex
	feeBps       int64
	feeRecipient domain.Address
	nonce        uint64
	tokens       map[string]*tokenState
	balances     map[domain.Address]*big.Int
	refunds      map[domain.Address]int
	settlements  []*auction.Settlement
}

type tokenState struct {
	owner    domain.Address
	approved bool
	listing  *auction.Listing
	bid      *auction.EscrowedBid
	bidState auction.BidState
}

type MachineCfg struct {
	FeeBps       int64
	FeeRecipient domain.Address
}

func NewMachine(cfg *MachineCfg) *Machine {
	feeBps := cfg.FeeBps
	if feeBps == 0 {
		feeBps = auction.DefaultFeeBps
	}
	return &Machine{
		feeBps:       feeBps,
		feeRecipient: cfg.FeeRecipient.ToLower(),
		tokens:       map[string]*tokenState{},
		balances:     map[domain.Address]*big.Int{},
		refunds:      map[domain.Address]int{},
	}
}

// Mint registers a token with its initial owner.
func (m *Machine) Mint(token landtoken.Id, owner domain.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.ToString()] = &tokenState{
		owner:    owner.ToLower(),
		bidState: auction.BidStateNone,
	}
}

// SetApproval toggles the auction contract's transfer approval for a token.
func (m *Machine) SetApproval(token landtoken.Id, approved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.tokens[token.ToString()]; ok {
		st.approved = approved
	}
}

// SetOwner transfers a token out-of-band, simulating activity the cache has
// not observed yet.
func (m *Machine) SetOwner(token landtoken.Id, owner domain.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.tokens[token.ToString()]; ok {
		st.owner = owner.ToLower()
	}
}

// OwnerOf satisfies the ownership oracle interface.
func (m *Machine) OwnerOf(c ctx.Ctx, token landtoken.Id) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return "", domain.ErrNotFound
	}
	return st.owner, nil
}

// BalanceOf returns funds credited to an address by refunds and payouts.
func (m *Machine) BalanceOf(addr domain.Address) *big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if bal, ok := m.balances[addr.ToLower()]; ok {
		return new(big.Int).Set(bal)
	}
	return big.NewInt(0)
}

// RefundCount returns how many escrow refunds an address received.
func (m *Machine) RefundCount(addr domain.Address) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refunds[addr.ToLower()]
}

// Settlements returns the settlement events emitted so far.
func (m *Machine) Settlements() []*auction.Settlement {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*auction.Settlement, len(m.settlements))
	copy(res, m.settlements)
	return res
}

func (m *Machine) CreateListing(c ctx.Ctx, token landtoken.Id, seller domain.Address, price *big.Int) (domain.TxHash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return "", domain.ErrNotFound
	}
	if !st.owner.Equals(seller) {
		return "", domain.ErrNotOwner
	}
	if !st.approved {
		return "", auction.ErrNotApproved
	}
	if price == nil || price.Sign() <= 0 {
		return "", auction.ErrInvalidPrice
	}
	st.listing = &auction.Listing{
		Seller: seller.ToLower(),
		Price:  new(big.Int).Set(price),
		State:  auction.ListingStateListed,
	}
	return m.nextTxHash(token), nil
}

func (m *Machine) CancelListing(c ctx.Ctx, token landtoken.Id, seller domain.Address) (domain.TxHash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return "", domain.ErrNotFound
	}
	if st.listing == nil || st.listing.State != auction.ListingStateListed {
		return "", auction.ErrNoListing
	}
	if !st.owner.Equals(seller) {
		return "", domain.ErrNotOwner
	}
	st.listing.State = auction.ListingStateCancelled
	return m.nextTxHash(token), nil
}

func (m *Machine) PlaceBid(c ctx.Ctx, token landtoken.Id, bidder domain.Address, amount *big.Int) (domain.TxHash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return "", domain.ErrNotFound
	}
	if st.owner.Equals(bidder) {
		return "", domain.ErrSelfBid
	}
	if amount == nil || amount.Sign() <= 0 {
		return "", auction.ErrBidTooLow
	}
	if st.bid != nil && amount.Cmp(st.bid.Amount) <= 0 {
		return "", auction.ErrBidTooLow
	}
	// refund the previous highest bidder's escrow before storing the new bid
	if st.bid != nil {
		m.credit(st.bid.Bidder, st.bid.Amount)
		m.refunds[st.bid.Bidder.ToLower()]++
	}
	now := time.Now()
	st.bid = &auction.EscrowedBid{
		Bidder:   bidder.ToLower(),
		Amount:   new(big.Int).Set(amount),
		PlacedAt: now,
	}
	st.bidState = auction.BidStateHasBid
	return m.nextTxHash(token), nil
}

func (m *Machine) AcceptBid(c ctx.Ctx, token landtoken.Id, caller domain.Address) (*auction.Settlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !st.owner.Equals(caller) {
		return nil, domain.ErrNotOwner
	}
	if !st.approved {
		return nil, auction.ErrNotApproved
	}
	if st.bid == nil {
		return nil, auction.ErrNoBid
	}
	settlement := m.settle(token, st, st.bid.Bidder, st.bid.Amount, auction.SettlementKindBidAccepted)
	st.bid = nil
	st.bidState = auction.BidStateAccepted
	return settlement, nil
}

func (m *Machine) WithdrawBid(c ctx.Ctx, token landtoken.Id, caller domain.Address) (domain.TxHash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return "", domain.ErrNotFound
	}
	if st.bid == nil {
		return "", auction.ErrNoBid
	}
	if !st.bid.Bidder.Equals(caller) {
		return "", domain.ErrNotOwner
	}
	m.credit(st.bid.Bidder, st.bid.Amount)
	m.refunds[st.bid.Bidder.ToLower()]++
	st.bid = nil
	st.bidState = auction.BidStateWithdrawn
	return m.nextTxHash(token), nil
}

func (m *Machine) Purchase(c ctx.Ctx, token landtoken.Id, buyer domain.Address, payment *big.Int) (*auction.Settlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if st.listing != nil && st.listing.State == auction.ListingStateSold {
		return nil, auction.ErrAlreadySold
	}
	if st.listing == nil || st.listing.State != auction.ListingStateListed {
		return nil, auction.ErrNoListing
	}
	if st.owner.Equals(buyer) {
		return nil, domain.ErrSelfTrade
	}
	if payment == nil || payment.Cmp(st.listing.Price) < 0 {
		return nil, auction.ErrInsufficientPayment
	}
	// refund any excess over the asking price
	if excess := new(big.Int).Sub(payment, st.listing.Price); excess.Sign() > 0 {
		m.credit(buyer, excess)
	}
	settlement := m.settle(token, st, buyer, st.listing.Price, auction.SettlementKindPurchase)
	st.listing.State = auction.ListingStateSold
	// an escrowed bid left behind by a direct purchase is refunded
	if st.bid != nil {
		m.credit(st.bid.Bidder, st.bid.Amount)
		m.refunds[st.bid.Bidder.ToLower()]++
		st.bid = nil
		st.bidState = auction.BidStateOutbid
	}
	return settlement, nil
}

func (m *Machine) GetListing(c ctx.Ctx, token landtoken.Id) (*auction.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok || st.listing == nil {
		return nil, auction.ErrNoListing
	}
	cp := *st.listing
	cp.Price = new(big.Int).Set(st.listing.Price)
	return &cp, nil
}

func (m *Machine) HighestBid(c ctx.Ctx, token landtoken.Id) (*auction.EscrowedBid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token.ToString()]
	if !ok || st.bid == nil {
		return nil, auction.ErrNoBid
	}
	cp := *st.bid
	cp.Amount = new(big.Int).Set(st.bid.Amount)
	return &cp, nil
}

// settle transfers the token and splits funds, caller holds the lock.
func (m *Machine) settle(token landtoken.Id, st *tokenState, buyer domain.Address, price *big.Int, kind auction.SettlementKind) *auction.Settlement {
	seller := st.owner
	proceeds, fee := auction.SplitProceeds(price, m.feeBps)
	m.credit(seller, proceeds)
	m.credit(m.feeRecipient, fee)
	st.owner = buyer.ToLower()
	settlement := &auction.Settlement{
		TxHash:         m.nextTxHash(token),
		Token:          token,
		Kind:           kind,
		Seller:         seller,
		Buyer:          buyer.ToLower(),
		Price:          new(big.Int).Set(price),
		SellerProceeds: proceeds,
		Fee:            fee,
		SettledAt:      time.Now(),
	}
	m.settlements = append(m.settlements, settlement)
	return settlement
}

func (m *Machine) credit(addr domain.Address, amount *big.Int) {
	key := addr.ToLower()
	if _, ok := m.balances[key]; !ok {
		m.balances[key] = big.NewInt(0)
	}
	m.balances[key].Add(m.balances[key], amount)
}

func (m *Machine) nextTxHash(token landtoken.Id) domain.TxHash {
	m.nonce++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], m.nonce)
	digest := crypto.Keccak256(buf[:], []byte(token.ToString()))
	return domain.TxHash(fmt.Sprintf("0x%x", digest))
}
