package service

import (
	"sync"

	"github.com/punchamoorthee/propshare/internal/domain"
)

// FundTransfer is the external currency primitive: an atomic debit/credit
// that either moves the full amount or fails. The platform never holds
// currency itself; it only directs transfers between principals and the
// custody account.
type FundTransfer interface {
	Transfer(from, to domain.Principal, amount uint64) error
}

// TransferFunc adapts a plain function to the FundTransfer interface.
type TransferFunc func(from, to domain.Principal, amount uint64) error

func (f TransferFunc) Transfer(from, to domain.Principal, amount uint64) error {
	return f(from, to, amount)
}

// Bank is an in-memory FundTransfer used by tests and the default wiring.
// Balances never go negative; a transfer exceeding the payer's balance fails
// with ErrInsufficientFunds and moves nothing.
type Bank struct {
	mu       sync.Mutex
	balances map[domain.Principal]uint64
}

func NewBank() *Bank {
	return &Bank{balances: make(map[domain.Principal]uint64)}
}

// Deposit credits a principal out of thin air. Test/seed helper.
func (b *Bank) Deposit(p domain.Principal, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[p] += amount
}

func (b *Bank) Balance(p domain.Principal) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[p]
}

func (b *Bank) Transfer(from, to domain.Principal, amount uint64) error {
	if amount == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.balances[from] < amount {
		return ErrInsufficientFunds
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
