package service

import "github.com/punchamoorthee/propshare/internal/domain"

// PurchaseTokens sells tokens out of the property's available pool at the
// registry-derived unit price, floor(value / totalTokens). The buyer is
// charged base cost plus platform fee: the whole amount lands in custody
// first, then custody pays the base cost through to the property owner, so
// the buyer leg is the only one that can fail for lack of funds.
func (p *Platform) PurchaseTokens(caller domain.Principal, propertyID, tokens uint64) (domain.PurchaseReceipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return domain.PurchaseReceipt{}, ErrInvalidParameter
	}
	prop, ok := p.properties[propertyID]
	if !ok {
		return domain.PurchaseReceipt{}, ErrNotFound
	}
	if !prop.Active {
		return domain.PurchaseReceipt{}, ErrNotVerified
	}
	if tokens == 0 {
		return domain.PurchaseReceipt{}, ErrInvalidParameter
	}
	if tokens > prop.AvailableTokens {
		return domain.PurchaseReceipt{}, ErrInsufficientTokens
	}

	unitPrice := prop.Value / prop.TotalTokens
	baseCost := tokens * unitPrice
	fee := p.fee(baseCost)
	total := baseCost + fee

	if err := p.funds.Transfer(caller, Custody, total); err != nil {
		return domain.PurchaseReceipt{}, err
	}
	if err := p.funds.Transfer(Custody, prop.Owner, baseCost); err != nil {
		// Custody just received the full amount; pass-through cannot
		// overdraft, so any failure here is a broken funds primitive.
		// Unwind the buyer leg before reporting it.
		_ = p.funds.Transfer(Custody, caller, total)
		return domain.PurchaseReceipt{}, err
	}

	height := p.advance()
	prop.AvailableTokens -= tokens
	p.accumulatedFees += fee
	p.creditLocked(propertyID, caller, tokens, baseCost, height)

	return domain.PurchaseReceipt{
		PropertyID: propertyID,
		Buyer:      caller,
		Tokens:     tokens,
		UnitPrice:  unitPrice,
		BaseCost:   baseCost,
		Fee:        fee,
		TotalCost:  total,
	}, nil
}
