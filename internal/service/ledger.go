package service

import "github.com/punchamoorthee/propshare/internal/domain"

// creditLocked adds tokens to a holder's balance and cost to their cumulative
// cost basis. The first acquisition for a property creates the holding record
// and counts the holder in the property's stats.
func (p *Platform) creditLocked(propertyID uint64, holder domain.Principal, tokens, cost, height uint64) {
	key := holdingKey{propertyID, holder}
	h, ok := p.holdings[key]
	if !ok {
		h = &domain.Holding{PropertyID: propertyID, Holder: holder}
		p.holdings[key] = h
		p.stats[propertyID].TotalHolders++
	}
	h.Tokens += tokens
	h.PurchasePrice += cost
	h.AcquiredAt = height
}

// debitLocked removes tokens from a holder's balance. Cost basis and
// acquired-at are untouched by debits.
func (p *Platform) debitLocked(propertyID uint64, holder domain.Principal, tokens uint64) error {
	h, ok := p.holdings[holdingKey{propertyID, holder}]
	if !ok || h.Tokens < tokens {
		return ErrInsufficientTokens
	}
	h.Tokens -= tokens
	return nil
}

func (p *Platform) balanceLocked(propertyID uint64, holder domain.Principal) uint64 {
	if h, ok := p.holdings[holdingKey{propertyID, holder}]; ok {
		return h.Tokens
	}
	return 0
}

// Holding returns a copy of a holder's record for a property.
func (p *Platform) Holding(propertyID uint64, holder domain.Principal) (domain.Holding, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.holdings[holdingKey{propertyID, holder}]
	if !ok {
		return domain.Holding{}, ErrNotFound
	}
	return *h, nil
}

// OwnershipPercentage returns the holder's share of a property in basis
// points, floored. An unknown property and a holder with no holding are not
// distinguished: both fail with ErrNotFound.
func (p *Platform) OwnershipPercentage(propertyID uint64, holder domain.Principal) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prop, ok := p.properties[propertyID]
	if !ok {
		return 0, ErrNotFound
	}
	h, ok := p.holdings[holdingKey{propertyID, holder}]
	if !ok {
		return 0, ErrNotFound
	}
	return h.Tokens * bpsDenominator / prop.TotalTokens, nil
}

// PortfolioValue is a placeholder pending per-holder valuation; it returns 0
// for every principal.
func (p *Platform) PortfolioValue(holder domain.Principal) uint64 {
	return 0
}
