package service_test

import (
	"testing"

	"github.com/punchamoorthee/propshare/internal/domain"
	"github.com/punchamoorthee/propshare/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveVerifier(t *testing.T) {
	p, _ := newPlatform(t)

	require.NoError(t, p.AddVerifier(deployer, wallet1))
	assert.True(t, p.IsVerifier(wallet1))

	require.NoError(t, p.RemoveVerifier(deployer, wallet1))
	assert.False(t, p.IsVerifier(wallet1))
}

func TestVerifierChangesAreOwnerGated(t *testing.T) {
	p, _ := newPlatform(t)

	err := p.AddVerifier(wallet1, wallet2)
	assert.ErrorIs(t, err, service.ErrOwnerOnly)
	assert.Equal(t, 100, service.ErrorCode(err))

	assert.ErrorIs(t, p.RemoveVerifier(wallet1, verifier), service.ErrOwnerOnly)
	assert.True(t, p.IsVerifier(verifier))
}

func TestSetFeeRate(t *testing.T) {
	p, _ := newPlatform(t)

	require.NoError(t, p.SetFeeRate(deployer, 300))
	assert.Equal(t, uint64(300), p.State().FeeRateBps)

	err := p.SetFeeRate(deployer, 1100)
	assert.ErrorIs(t, err, service.ErrInvalidParameter)
	assert.Equal(t, 105, service.ErrorCode(err))
	assert.Equal(t, uint64(300), p.State().FeeRateBps)

	assert.ErrorIs(t, p.SetFeeRate(wallet1, 300), service.ErrOwnerOnly)
}

func TestTogglePause(t *testing.T) {
	p, _ := newPlatform(t)

	paused, err := p.TogglePause(deployer)
	require.NoError(t, err)
	assert.True(t, paused)

	paused, err = p.TogglePause(deployer)
	require.NoError(t, err)
	assert.False(t, paused)

	_, err = p.TogglePause(wallet1)
	assert.ErrorIs(t, err, service.ErrOwnerOnly)
}

func TestPausedRejectsMutationsAsInvalidParameter(t *testing.T) {
	p, _ := newPlatform(t)
	id := createVerifiedProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)
	_, err := p.PurchaseTokens(wallet2, id, 100)
	require.NoError(t, err)

	_, err = p.TogglePause(deployer)
	require.NoError(t, err)

	_, createErr := p.CreateProperty(wallet1, domain.CreatePropertyRequest{
		Title: "Paused", Location: "Nowhere", Value: 1, TotalTokens: 1,
	})
	assert.ErrorIs(t, createErr, service.ErrInvalidParameter)

	_, buyErr := p.PurchaseTokens(wallet2, id, 1)
	assert.ErrorIs(t, buyErr, service.ErrInvalidParameter)

	assert.ErrorIs(t, p.ListTokens(wallet2, id, 10, 1000), service.ErrInvalidParameter)
}

func TestWithdrawFees(t *testing.T) {
	p, bank := newPlatform(t)
	require.NoError(t, p.SetFeeRate(deployer, 200))
	id := createVerifiedProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	// 100 tokens at unit price 1,000,000 -> fee 2,000,000 at 200 bps.
	_, err := p.PurchaseTokens(wallet2, id, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), p.State().AccumulatedFees)

	before := bank.Balance(deployer)
	amount, err := p.WithdrawFees(deployer)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000), amount)
	assert.Equal(t, before+2_000_000, bank.Balance(deployer))
	assert.Zero(t, p.State().AccumulatedFees)

	// Withdrawing a zero balance still succeeds.
	amount, err = p.WithdrawFees(deployer)
	require.NoError(t, err)
	assert.Zero(t, amount)

	_, err = p.WithdrawFees(wallet1)
	assert.ErrorIs(t, err, service.ErrOwnerOnly)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	p, bank := newPlatform(t)
	id := createVerifiedProperty(t, p, wallet1, 2_000_000_000, 2000, 40_000_000)
	_, err := p.PurchaseTokens(wallet2, id, 600)
	require.NoError(t, err)
	_, err = p.Distribute(wallet1, id, 40_000_000)
	require.NoError(t, err)
	require.NoError(t, p.ListTokens(wallet2, id, 100, 2_000_000))

	restored := service.RestorePlatform(p.Snapshot(), bank)
	assert.Equal(t, p.Snapshot(), restored.Snapshot())

	// Counters continue from the restored high-water marks.
	id2, err := restored.CreateProperty(wallet1, domain.CreatePropertyRequest{
		Title: "Second", Location: "Elsewhere", Value: 1_000_000, TotalTokens: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, id+1, id2)
}

func TestEndToEndScenario(t *testing.T) {
	p, bank := newPlatform(t)
	id := createVerifiedProperty(t, p, wallet1, 2_000_000_000, 2000, 40_000_000)

	_, err := p.PurchaseTokens(wallet1, id, 600)
	require.NoError(t, err)
	_, err = p.PurchaseTokens(wallet2, id, 800)
	require.NoError(t, err)
	_, err = p.PurchaseTokens(wallet3, id, 400)
	require.NoError(t, err)
	requireSupplyConserved(t, p)

	pct, err := p.OwnershipPercentage(id, wallet1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3000), pct)
	pct, err = p.OwnershipPercentage(id, wallet2)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000), pct)

	did, err := p.Distribute(wallet1, id, 40_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1), did)

	before1, before2 := bank.Balance(wallet1), bank.Balance(wallet2)
	claim1, err := p.ClaimIncome(wallet1, id, did)
	require.NoError(t, err)
	assert.Equal(t, uint64(12_000_000), claim1.Amount)
	claim2, err := p.ClaimIncome(wallet2, id, did)
	require.NoError(t, err)
	assert.Equal(t, uint64(16_000_000), claim2.Amount)
	assert.Equal(t, before1+12_000_000, bank.Balance(wallet1))
	assert.Equal(t, before2+16_000_000, bank.Balance(wallet2))

	stats, err := p.PropertyStats(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.TotalHolders)
	assert.Equal(t, uint64(40_000_000), stats.TotalDistributed)
	requireSupplyConserved(t, p)
}
