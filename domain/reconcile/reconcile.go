package reconcile

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
)

// Resolution is a resolved owner together with its provenance. LedgerChecked
// records whether the ledger confirmed the answer, so callers can tell a
// fresh read from a stale mirror.
type Resolution struct {
	Owner         domain.Address         `json:"owner"`
	Source        domain.OwnershipSource `json:"source"`
	LedgerChecked bool                   `json:"ledgerChecked"`
}

// Oracle reads ground truth from the ledger with a bounded timeout. Failure
// surfaces as a connectivity-class error, never as a fatal.
type Oracle interface {
	OwnerOf(c ctx.Ctx, token landtoken.Id) (domain.Address, error)
}

// Resolver is the tiered owner resolver: per-token cache record first,
// collection-creator fallback second, ledger read third.
type Resolver interface {
	ResolveOwner(c ctx.Ctx, token landtoken.Id) (*Resolution, error)
	// SyncOwnershipWithBlockchain re-reads the ledger and unconditionally
	// overwrites the cached owner. Idempotent.
	SyncOwnershipWithBlockchain(c ctx.Ctx, token landtoken.Id) (domain.Address, error)
}

// LeniencePolicy decides whether a validation that failed only because the
// ledger was unreachable may proceed with an audit entry. Ownership
// mismatches are never bypassable regardless of policy.
type LeniencePolicy struct {
	Enabled bool
}

func (p LeniencePolicy) Allows(err error) bool {
	return p.Enabled && (domain.IsConnectivityError(err) || err == domain.ErrOwnerUnresolved)
}
