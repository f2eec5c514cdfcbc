package service

import "github.com/punchamoorthee/propshare/internal/domain"

// Distribute pushes a rental-income lump sum into a new payout pool for the
// property. Only the property owner may distribute, and only on an active
// property. The full amount moves from the owner into custody as part of the
// call; holders pull their shares individually via ClaimIncome.
func (p *Platform) Distribute(caller domain.Principal, propertyID, amount uint64) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prop, ok := p.properties[propertyID]
	if !ok {
		return 0, ErrNotFound
	}
	if caller != prop.Owner {
		return 0, ErrNotAuthorized
	}
	if !prop.Active {
		return 0, ErrNotVerified
	}
	if amount == 0 {
		return 0, ErrInvalidParameter
	}

	if err := p.funds.Transfer(caller, Custody, amount); err != nil {
		return 0, err
	}

	height := p.advance()
	p.distCount[propertyID]++
	id := p.distCount[propertyID]
	p.distributions[distributionKey{propertyID, id}] = &domain.Distribution{
		PropertyID:     propertyID,
		ID:             id,
		TotalAmount:    amount,
		PerTokenAmount: amount / prop.TotalTokens,
		Date:           height,
	}
	st := p.stats[propertyID]
	st.TotalDistributed += amount
	st.LastDistribution = height
	return id, nil
}

// ClaimIncome pays the caller their share of a distribution, computed from
// their balance at claim time. Each holder can claim a given distribution at
// most once; the claim record itself is the guard.
func (p *Platform) ClaimIncome(caller domain.Principal, propertyID, distributionID uint64) (domain.Claim, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	balance := p.balanceLocked(propertyID, caller)
	if balance == 0 {
		return domain.Claim{}, ErrInsufficientTokens
	}
	dist, ok := p.distributions[distributionKey{propertyID, distributionID}]
	if !ok {
		return domain.Claim{}, ErrInvalidParameter
	}
	key := claimKey{propertyID, distributionID, caller}
	if _, claimed := p.claims[key]; claimed {
		return domain.Claim{}, ErrInvalidParameter
	}

	amount := balance * dist.PerTokenAmount
	if err := p.funds.Transfer(Custody, caller, amount); err != nil {
		return domain.Claim{}, err
	}

	height := p.advance()
	claim := &domain.Claim{
		PropertyID:     propertyID,
		DistributionID: distributionID,
		Holder:         caller,
		Amount:         amount,
		ClaimedAt:      height,
	}
	p.claims[key] = claim
	dist.ClaimedAmount += amount
	return *claim, nil
}

// Claimable returns the amount a holder would receive from a distribution
// right now, or 0 if they have already claimed it or hold no tokens.
func (p *Platform) Claimable(propertyID, distributionID uint64, holder domain.Principal) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	dist, ok := p.distributions[distributionKey{propertyID, distributionID}]
	if !ok {
		return 0, ErrNotFound
	}
	if _, claimed := p.claims[claimKey{propertyID, distributionID, holder}]; claimed {
		return 0, nil
	}
	return p.balanceLocked(propertyID, holder) * dist.PerTokenAmount, nil
}

// Distribution returns a copy of a distribution record.
func (p *Platform) Distribution(propertyID, distributionID uint64) (domain.Distribution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	dist, ok := p.distributions[distributionKey{propertyID, distributionID}]
	if !ok {
		return domain.Distribution{}, ErrNotFound
	}
	return *dist, nil
}

// ClaimRecord returns a copy of a claim record.
func (p *Platform) ClaimRecord(propertyID, distributionID uint64, holder domain.Principal) (domain.Claim, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.claims[claimKey{propertyID, distributionID, holder}]
	if !ok {
		return domain.Claim{}, ErrNotFound
	}
	return *c, nil
}
