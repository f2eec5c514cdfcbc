package service

import "github.com/punchamoorthee/propshare/internal/domain"

// CreateProperty registers a new property and returns its id. Ids are
// assigned sequentially starting at 1. The property starts unverified and
// inactive with the full token supply available.
func (p *Platform) CreateProperty(caller domain.Principal, req domain.CreatePropertyRequest) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return 0, ErrInvalidParameter
	}
	if req.Value == 0 || req.TotalTokens == 0 || req.TotalTokens > maxTokensPerProperty {
		return 0, ErrInvalidParameter
	}

	height := p.advance()
	p.propertyCount++
	id := p.propertyCount
	p.properties[id] = &domain.Property{
		ID:              id,
		Owner:           caller,
		Title:           req.Title,
		Location:        req.Location,
		Value:           req.Value,
		TotalTokens:     req.TotalTokens,
		AvailableTokens: req.TotalTokens,
		MonthlyRent:     req.MonthlyRent,
		CreatedAt:       height,
	}
	p.stats[id] = &domain.PropertyStats{PropertyID: id}
	return id, nil
}

// VerifyProperty marks a property verified and active. Restricted to
// allow-listed verifiers; a property can be verified only once.
func (p *Platform) VerifyProperty(caller domain.Principal, propertyID uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.verifiers[caller] {
		return ErrNotAuthorized
	}
	prop, ok := p.properties[propertyID]
	if !ok {
		return ErrNotFound
	}
	if prop.Verified {
		return ErrAlreadyVerified
	}
	p.advance()
	prop.Verified = true
	prop.Active = true
	return nil
}

// UpdatePropertyValue records a verifier's reassessment and recomputes the
// appreciation rate in basis points against the previous value. Depreciation
// floors the rate at 0 rather than going negative.
func (p *Platform) UpdatePropertyValue(caller domain.Principal, propertyID, newValue uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.verifiers[caller] {
		return ErrNotAuthorized
	}
	prop, ok := p.properties[propertyID]
	if !ok {
		return ErrNotFound
	}
	if newValue == 0 {
		return ErrInvalidParameter
	}

	p.advance()
	st := p.stats[propertyID]
	if newValue > prop.Value {
		st.AppreciationRate = (newValue - prop.Value) * bpsDenominator / prop.Value
	} else {
		st.AppreciationRate = 0
	}
	prop.Value = newValue
	return nil
}

// TotalProperties returns the number of properties ever created.
func (p *Platform) TotalProperties() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.propertyCount
}

// Property returns a copy of a property record.
func (p *Platform) Property(propertyID uint64) (domain.Property, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prop, ok := p.properties[propertyID]
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	return *prop, nil
}

// PropertyStats returns a copy of a property's aggregate stats.
func (p *Platform) PropertyStats(propertyID uint64) (domain.PropertyStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.stats[propertyID]
	if !ok {
		return domain.PropertyStats{}, ErrNotFound
	}
	return *st, nil
}
