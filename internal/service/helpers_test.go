package service_test

import (
	"testing"

	"github.com/punchamoorthee/propshare/internal/domain"
	"github.com/punchamoorthee/propshare/internal/service"
	"github.com/stretchr/testify/require"
)

const (
	deployer = domain.Principal("deployer")
	verifier = domain.Principal("verifier-1")
	wallet1  = domain.Principal("wallet-1")
	wallet2  = domain.Principal("wallet-2")
	wallet3  = domain.Principal("wallet-3")
)

const startingBalance = uint64(10_000_000_000)

// newPlatform builds a platform with a funded in-memory bank and one
// authorized verifier.
func newPlatform(t *testing.T) (*service.Platform, *service.Bank) {
	t.Helper()
	bank := service.NewBank()
	for _, p := range []domain.Principal{deployer, wallet1, wallet2, wallet3} {
		bank.Deposit(p, startingBalance)
	}
	platform := service.NewPlatform(deployer, 250, bank)
	require.NoError(t, platform.AddVerifier(deployer, verifier))
	return platform, bank
}

func createProperty(t *testing.T, p *service.Platform, owner domain.Principal, value, tokens, rent uint64) uint64 {
	t.Helper()
	id, err := p.CreateProperty(owner, domain.CreatePropertyRequest{
		Title:       "Test Property",
		Location:    "Test Location",
		Value:       value,
		TotalTokens: tokens,
		MonthlyRent: rent,
	})
	require.NoError(t, err)
	return id
}

func createVerifiedProperty(t *testing.T, p *service.Platform, owner domain.Principal, value, tokens, rent uint64) uint64 {
	t.Helper()
	id := createProperty(t, p, owner, value, tokens, rent)
	require.NoError(t, p.VerifyProperty(verifier, id))
	return id
}

// requireSupplyConserved asserts available + sum of holder balances equals
// the total supply for every property.
func requireSupplyConserved(t *testing.T, p *service.Platform) {
	t.Helper()
	snap := p.Snapshot()
	held := make(map[uint64]uint64)
	for _, h := range snap.Holdings {
		held[h.PropertyID] += h.Tokens
	}
	for _, prop := range snap.Properties {
		require.Equal(t, prop.TotalTokens, prop.AvailableTokens+held[prop.ID],
			"supply conservation broken for property %d", prop.ID)
	}
}
