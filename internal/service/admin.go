package service

import "github.com/punchamoorthee/propshare/internal/domain"

// AddVerifier puts a principal on the verifier allow-list. Owner-gated.
func (p *Platform) AddVerifier(caller, verifier domain.Principal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return ErrOwnerOnly
	}
	p.advance()
	p.verifiers[verifier] = true
	return nil
}

// RemoveVerifier takes a principal off the verifier allow-list. Owner-gated.
func (p *Platform) RemoveVerifier(caller, verifier domain.Principal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return ErrOwnerOnly
	}
	p.advance()
	delete(p.verifiers, verifier)
	return nil
}

// IsVerifier reports whether a principal is on the allow-list.
func (p *Platform) IsVerifier(principal domain.Principal) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.verifiers[principal]
}

// SetFeeRate updates the platform fee rate. Owner-gated; rates above 1000
// basis points (10%) are rejected.
func (p *Platform) SetFeeRate(caller domain.Principal, bps uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return ErrOwnerOnly
	}
	if bps > maxFeeRateBps {
		return ErrInvalidParameter
	}
	p.advance()
	p.feeRateBps = bps
	return nil
}

// TogglePause flips the pause flag. While paused, every state-mutating
// operation fails with ErrInvalidParameter, the same signal used for bad
// input.
func (p *Platform) TogglePause(caller domain.Principal) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return false, ErrOwnerOnly
	}
	p.advance()
	p.paused = !p.paused
	return p.paused, nil
}

// WithdrawFees pays the accumulated platform fees out of custody to the
// owner and resets the accumulator. Withdrawing a zero balance succeeds.
func (p *Platform) WithdrawFees(caller domain.Principal) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return 0, ErrOwnerOnly
	}
	amount := p.accumulatedFees
	if err := p.funds.Transfer(Custody, p.owner, amount); err != nil {
		return 0, err
	}
	p.advance()
	p.accumulatedFees = 0
	return amount, nil
}
