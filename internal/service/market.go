package service

import "github.com/punchamoorthee/propshare/internal/domain"

// ListTokens puts part of the caller's holding up for sale. Sellers carry at
// most one listing per property; the balance is validated at listing time
// only, not continuously.
func (p *Platform) ListTokens(caller domain.Principal, propertyID, tokens, pricePerToken uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return ErrInvalidParameter
	}
	prop, ok := p.properties[propertyID]
	if !ok {
		return ErrNotFound
	}
	if !prop.Active {
		return ErrNotVerified
	}
	if tokens == 0 || pricePerToken == 0 {
		return ErrInvalidParameter
	}
	key := listingKey{propertyID, caller}
	if existing, ok := p.listings[key]; ok && existing.Active {
		return ErrInvalidParameter
	}
	if tokens > p.balanceLocked(propertyID, caller) {
		return ErrInsufficientTokens
	}

	height := p.advance()
	p.listings[key] = &domain.Listing{
		PropertyID:    propertyID,
		Seller:        caller,
		TokensForSale: tokens,
		PricePerToken: pricePerToken,
		ListedAt:      height,
		Active:        true,
	}
	return nil
}

// CancelListing deactivates the caller's listing. The record is kept with its
// remaining token count as history.
func (p *Platform) CancelListing(caller domain.Principal, propertyID uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.listings[listingKey{propertyID, caller}]
	if !ok {
		return ErrInvalidParameter
	}
	p.advance()
	l.Active = false
	return nil
}

// BuyListedTokens fills (part of) an active listing: tokens move seller to
// buyer, the buyer pays tokens x listed price, the seller receives that total
// minus the platform fee. A listing drained to zero deactivates itself. The
// buyer's cost basis grows by the gross trade total, matching primary
// issuance accounting. Returns the appended trade record.
func (p *Platform) BuyListedTokens(caller domain.Principal, propertyID uint64, seller domain.Principal, tokens uint64) (domain.Trade, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return domain.Trade{}, ErrInvalidParameter
	}
	if tokens == 0 || caller == seller {
		return domain.Trade{}, ErrInvalidParameter
	}
	l, ok := p.listings[listingKey{propertyID, seller}]
	if !ok || !l.Active {
		return domain.Trade{}, ErrInvalidParameter
	}
	if tokens > l.TokensForSale {
		return domain.Trade{}, ErrInsufficientTokens
	}
	// The listing balance check happened at listing time; re-check the
	// seller's live balance before any funds move.
	if tokens > p.balanceLocked(propertyID, seller) {
		return domain.Trade{}, ErrInsufficientTokens
	}

	total := tokens * l.PricePerToken
	fee := p.fee(total)

	if err := p.funds.Transfer(caller, Custody, total); err != nil {
		return domain.Trade{}, err
	}
	if err := p.funds.Transfer(Custody, seller, total-fee); err != nil {
		_ = p.funds.Transfer(Custody, caller, total)
		return domain.Trade{}, err
	}

	height := p.advance()
	if err := p.debitLocked(propertyID, seller, tokens); err != nil {
		// Unreachable given the balance check above.
		return domain.Trade{}, err
	}
	p.creditLocked(propertyID, caller, tokens, total, height)
	p.accumulatedFees += fee
	l.TokensForSale -= tokens
	if l.TokensForSale == 0 {
		l.Active = false
	}

	p.tradeCount[propertyID]++
	trade := &domain.Trade{
		PropertyID:    propertyID,
		ID:            p.tradeCount[propertyID],
		Seller:        seller,
		Buyer:         caller,
		Tokens:        tokens,
		PricePerToken: l.PricePerToken,
		TotalAmount:   total,
		TradedAt:      height,
	}
	p.trades[tradeKey{propertyID, trade.ID}] = trade
	return *trade, nil
}

// EmergencyDelist force-deactivates a seller's listing. Owner-gated escape
// hatch; works regardless of the listing's current state.
func (p *Platform) EmergencyDelist(caller domain.Principal, propertyID uint64, seller domain.Principal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return ErrOwnerOnly
	}
	l, ok := p.listings[listingKey{propertyID, seller}]
	if !ok {
		return ErrInvalidParameter
	}
	p.advance()
	l.Active = false
	return nil
}

// Listing returns a copy of a seller's listing for a property.
func (p *Platform) Listing(propertyID uint64, seller domain.Principal) (domain.Listing, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.listings[listingKey{propertyID, seller}]
	if !ok {
		return domain.Listing{}, ErrNotFound
	}
	return *l, nil
}

// Trade returns a copy of a trade record.
func (p *Platform) Trade(propertyID, tradeID uint64) (domain.Trade, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.trades[tradeKey{propertyID, tradeID}]
	if !ok {
		return domain.Trade{}, ErrNotFound
	}
	return *t, nil
}
