package service

import (
	"sort"
	"sync"

	"github.com/punchamoorthee/propshare/internal/domain"
)

// Custody is the principal holding distribution pools and accumulated fees.
const Custody domain.Principal = "propshare-custody"

const (
	maxTokensPerProperty = 10000
	maxFeeRateBps        = 1000
	bpsDenominator       = 10000
)

type holdingKey struct {
	property uint64
	holder   domain.Principal
}

type distributionKey struct {
	property uint64
	id       uint64
}

type claimKey struct {
	property     uint64
	distribution uint64
	holder       domain.Principal
}

type listingKey struct {
	property uint64
	seller   domain.Principal
}

type tradeKey struct {
	property uint64
	id       uint64
}

// Platform is the bookkeeping core: property registry, token ledger, primary
// issuance, distribution engine and secondary market over a single state
// machine. The host guarantees serializable invocations; the mutex realizes
// that guarantee in-process. Every operation validates its preconditions and
// performs its fund transfers before touching state, so a failure never
// leaves a partial update behind.
type Platform struct {
	mu    sync.Mutex
	funds FundTransfer

	owner           domain.Principal
	paused          bool
	feeRateBps      uint64
	accumulatedFees uint64
	verifiers       map[domain.Principal]bool
	height          uint64

	propertyCount uint64
	properties    map[uint64]*domain.Property
	stats         map[uint64]*domain.PropertyStats
	holdings      map[holdingKey]*domain.Holding
	distributions map[distributionKey]*domain.Distribution
	distCount     map[uint64]uint64
	claims        map[claimKey]*domain.Claim
	listings      map[listingKey]*domain.Listing
	trades        map[tradeKey]*domain.Trade
	tradeCount    map[uint64]uint64
}

// NewPlatform creates an empty platform owned by the given principal.
func NewPlatform(owner domain.Principal, feeRateBps uint64, funds FundTransfer) *Platform {
	if feeRateBps > maxFeeRateBps {
		feeRateBps = maxFeeRateBps
	}
	return &Platform{
		funds:         funds,
		owner:         owner,
		feeRateBps:    feeRateBps,
		verifiers:     make(map[domain.Principal]bool),
		properties:    make(map[uint64]*domain.Property),
		stats:         make(map[uint64]*domain.PropertyStats),
		holdings:      make(map[holdingKey]*domain.Holding),
		distributions: make(map[distributionKey]*domain.Distribution),
		distCount:     make(map[uint64]uint64),
		claims:        make(map[claimKey]*domain.Claim),
		listings:      make(map[listingKey]*domain.Listing),
		trades:        make(map[tradeKey]*domain.Trade),
		tradeCount:    make(map[uint64]uint64),
	}
}

// RestorePlatform rebuilds a platform from a persisted snapshot. Sequential
// counters are derived from the highest persisted ids.
func RestorePlatform(snap *domain.Snapshot, funds FundTransfer) *Platform {
	p := NewPlatform(snap.State.Owner, snap.State.FeeRateBps, funds)
	p.paused = snap.State.Paused
	p.accumulatedFees = snap.State.AccumulatedFees
	p.height = snap.State.Height
	for _, v := range snap.Verifiers {
		p.verifiers[v] = true
	}
	for _, prop := range snap.Properties {
		cp := prop
		p.properties[cp.ID] = &cp
		if cp.ID > p.propertyCount {
			p.propertyCount = cp.ID
		}
	}
	for _, st := range snap.Stats {
		cp := st
		p.stats[cp.PropertyID] = &cp
	}
	for _, h := range snap.Holdings {
		cp := h
		p.holdings[holdingKey{cp.PropertyID, cp.Holder}] = &cp
	}
	for _, d := range snap.Distributions {
		cp := d
		p.distributions[distributionKey{cp.PropertyID, cp.ID}] = &cp
		if cp.ID > p.distCount[cp.PropertyID] {
			p.distCount[cp.PropertyID] = cp.ID
		}
	}
	for _, c := range snap.Claims {
		cp := c
		p.claims[claimKey{cp.PropertyID, cp.DistributionID, cp.Holder}] = &cp
	}
	for _, l := range snap.Listings {
		cp := l
		p.listings[listingKey{cp.PropertyID, cp.Seller}] = &cp
	}
	for _, t := range snap.Trades {
		cp := t
		p.trades[tradeKey{cp.PropertyID, cp.ID}] = &cp
		if cp.ID > p.tradeCount[cp.PropertyID] {
			p.tradeCount[cp.PropertyID] = cp.ID
		}
	}
	return p
}

// Snapshot returns a deep copy of the full platform state, ordered
// deterministically.
func (p *Platform) Snapshot() *domain.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := &domain.Snapshot{State: p.stateLocked()}
	for v := range p.verifiers {
		snap.Verifiers = append(snap.Verifiers, v)
	}
	sort.Slice(snap.Verifiers, func(i, j int) bool { return snap.Verifiers[i] < snap.Verifiers[j] })
	for _, prop := range p.properties {
		snap.Properties = append(snap.Properties, *prop)
	}
	sort.Slice(snap.Properties, func(i, j int) bool { return snap.Properties[i].ID < snap.Properties[j].ID })
	for _, st := range p.stats {
		snap.Stats = append(snap.Stats, *st)
	}
	sort.Slice(snap.Stats, func(i, j int) bool { return snap.Stats[i].PropertyID < snap.Stats[j].PropertyID })
	for _, h := range p.holdings {
		snap.Holdings = append(snap.Holdings, *h)
	}
	sort.Slice(snap.Holdings, func(i, j int) bool {
		a, b := snap.Holdings[i], snap.Holdings[j]
		if a.PropertyID != b.PropertyID {
			return a.PropertyID < b.PropertyID
		}
		return a.Holder < b.Holder
	})
	for _, d := range p.distributions {
		snap.Distributions = append(snap.Distributions, *d)
	}
	sort.Slice(snap.Distributions, func(i, j int) bool {
		a, b := snap.Distributions[i], snap.Distributions[j]
		if a.PropertyID != b.PropertyID {
			return a.PropertyID < b.PropertyID
		}
		return a.ID < b.ID
	})
	for _, c := range p.claims {
		snap.Claims = append(snap.Claims, *c)
	}
	sort.Slice(snap.Claims, func(i, j int) bool {
		a, b := snap.Claims[i], snap.Claims[j]
		if a.PropertyID != b.PropertyID {
			return a.PropertyID < b.PropertyID
		}
		if a.DistributionID != b.DistributionID {
			return a.DistributionID < b.DistributionID
		}
		return a.Holder < b.Holder
	})
	for _, l := range p.listings {
		snap.Listings = append(snap.Listings, *l)
	}
	sort.Slice(snap.Listings, func(i, j int) bool {
		a, b := snap.Listings[i], snap.Listings[j]
		if a.PropertyID != b.PropertyID {
			return a.PropertyID < b.PropertyID
		}
		return a.Seller < b.Seller
	})
	for _, t := range p.trades {
		snap.Trades = append(snap.Trades, *t)
	}
	sort.Slice(snap.Trades, func(i, j int) bool {
		a, b := snap.Trades[i], snap.Trades[j]
		if a.PropertyID != b.PropertyID {
			return a.PropertyID < b.PropertyID
		}
		return a.ID < b.ID
	})
	return snap
}

// State returns a copy of the singleton administrative state.
func (p *Platform) State() domain.PlatformState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Platform) stateLocked() domain.PlatformState {
	return domain.PlatformState{
		Owner:           p.owner,
		Paused:          p.paused,
		FeeRateBps:      p.feeRateBps,
		AccumulatedFees: p.accumulatedFees,
		Height:          p.height,
	}
}

// fee computes the platform fee on a payment amount, flooring per basis-point
// arithmetic. Pure; never fails.
func (p *Platform) fee(amount uint64) uint64 {
	return amount * p.feeRateBps / bpsDenominator
}

// advance moves the block counter forward one step. Called exactly once per
// mutating public operation, after all preconditions and fund transfers have
// succeeded; read-only queries never touch it.
func (p *Platform) advance() uint64 {
	p.height++
	return p.height
}

// Height returns the current block counter.
func (p *Platform) Height() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}
