// Package ledger is an in-memory staking ledger: balances, delegations with
// pending rewards, an unbonding queue, a token factory, vaults and swap
// pairs. It is the world the hub runs against outside a real chain.
package ledger

import (
	"sync"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/btree"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownValidator   = errors.New("unknown validator")
	ErrNoDelegation       = errors.New("no delegation")
	ErrDenomExists        = errors.New("denom already exists")
	ErrNotDenomAdmin      = errors.New("not the denom admin")
	ErrUnknownVault       = errors.New("unknown vault")
	ErrUnknownPair        = errors.New("unknown swap pair")
	ErrUnknownRouter      = errors.New("unknown swap router")
	ErrUnsupportedEffect  = errors.New("unsupported effect")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrValidatorDuplicate = errors.New("validator already registered")
)

const btreeDegree = 32

// Config is the static setup of a ledger.
type Config struct {
	// BondDenom is the only denom that can be delegated.
	BondDenom string
	// UnbondingTime is how long undelegated tokens stay locked, in seconds.
	UnbondingTime uint64
}

type delegation struct {
	Delegator string
	Validator string
	Amount    sdkmath.Uint
}

func delegationLess(a, b delegation) bool {
	if a.Delegator != b.Delegator {
		return a.Delegator < b.Delegator
	}
	return a.Validator < b.Validator
}

type unbondingEntry struct {
	CompletionTime uint64
	Seq            uint64
	Delegator      string
	Validator      string
	Amount         sdkmath.Uint
}

func unbondingLess(a, b unbondingEntry) bool {
	if a.CompletionTime != b.CompletionTime {
		return a.CompletionTime < b.CompletionTime
	}
	return a.Seq < b.Seq
}

type rewardKey struct {
	Delegator string
	Validator string
}

type state struct {
	balances    map[string]sdk.Coins
	supply      sdk.Coins
	validators  map[string]struct{}
	delegations *btree.BTreeG[delegation]
	rewards     map[rewardKey]sdk.Coins
	unbondings  *btree.BTreeG[unbondingEntry]
	denomAdmins map[string]string
	vaults      map[string]Vault
	pairs       map[string]Pair
	routers     map[string]struct{}
}

func newState() *state {
	return &state{
		balances:    make(map[string]sdk.Coins),
		supply:      sdk.NewCoins(),
		validators:  make(map[string]struct{}),
		delegations: btree.NewG(btreeDegree, delegationLess),
		rewards:     make(map[rewardKey]sdk.Coins),
		unbondings:  btree.NewG(btreeDegree, unbondingLess),
		denomAdmins: make(map[string]string),
		vaults:      make(map[string]Vault),
		pairs:       make(map[string]Pair),
		routers:     make(map[string]struct{}),
	}
}

// clone copies the state. Coins and amounts are never mutated in place, so
// copying the maps and cloning the trees is enough.
func (s *state) clone() *state {
	return &state{
		balances:    copyMap(s.balances),
		supply:      s.supply,
		validators:  copyMap(s.validators),
		delegations: s.delegations.Clone(),
		rewards:     copyMap(s.rewards),
		unbondings:  s.unbondings.Clone(),
		denomAdmins: copyMap(s.denomAdmins),
		vaults:      copyMap(s.vaults),
		pairs:       copyMap(s.pairs),
		routers:     copyMap(s.routers),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	res := make(map[K]V, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu    sync.RWMutex
	cfg   Config
	seq   *atomic.Uint64
	state *state
}

func New(cfg Config) *Ledger {
	return &Ledger{
		cfg:   cfg,
		seq:   atomic.NewUint64(0),
		state: newState(),
	}
}

func (l *Ledger) BondDenom() string {
	return l.cfg.BondDenom
}

// Snapshot is an opaque copy of the ledger state.
type Snapshot struct {
	state *state
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot{state: l.state.clone()}
}

// Restore rolls the ledger back to snap. snap stays usable.
func (l *Ledger) Restore(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = snap.state.clone()
}
