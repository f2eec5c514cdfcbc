package service_test

import (
	"testing"

	"github.com/punchamoorthee/propshare/internal/domain"
	"github.com/punchamoorthee/propshare/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePropertyAssignsSequentialIDs(t *testing.T) {
	p, _ := newPlatform(t)

	assert.Zero(t, p.TotalProperties())

	id1 := createProperty(t, p, wallet1, 500_000_000, 500, 5_000_000)
	id2 := createProperty(t, p, wallet2, 800_000_000, 800, 8_000_000)
	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)
	assert.Equal(t, uint64(2), p.TotalProperties())
}

func TestCreatePropertyInitialState(t *testing.T) {
	p, _ := newPlatform(t)
	id := createProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	prop, err := p.Property(id)
	require.NoError(t, err)
	assert.Equal(t, wallet1, prop.Owner)
	assert.Equal(t, "Test Property", prop.Title)
	assert.Equal(t, uint64(1_000_000_000), prop.Value)
	assert.Equal(t, uint64(1000), prop.TotalTokens)
	assert.Equal(t, uint64(1000), prop.AvailableTokens)
	assert.False(t, prop.Verified)
	assert.False(t, prop.Active)

	stats, err := p.PropertyStats(id)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStats{PropertyID: id}, stats)
}

func TestCreatePropertyValidation(t *testing.T) {
	p, _ := newPlatform(t)

	tests := []struct {
		name string
		req  domain.CreatePropertyRequest
	}{
		{"zero value", domain.CreatePropertyRequest{Title: "x", Location: "y", Value: 0, TotalTokens: 1000}},
		{"zero tokens", domain.CreatePropertyRequest{Title: "x", Location: "y", Value: 1_000_000_000, TotalTokens: 0}},
		{"too many tokens", domain.CreatePropertyRequest{Title: "x", Location: "y", Value: 1_000_000_000, TotalTokens: 15000}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.CreateProperty(wallet1, tc.req)
			assert.ErrorIs(t, err, service.ErrInvalidParameter)
		})
	}
	assert.Zero(t, p.TotalProperties())
}

func TestVerifyProperty(t *testing.T) {
	p, _ := newPlatform(t)
	id := createProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	require.NoError(t, p.VerifyProperty(verifier, id))
	prop, err := p.Property(id)
	require.NoError(t, err)
	assert.True(t, prop.Verified)
	assert.True(t, prop.Active)
}

func TestVerifyPropertyFailures(t *testing.T) {
	p, _ := newPlatform(t)
	id := createProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	err := p.VerifyProperty(wallet3, id)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
	assert.Equal(t, 101, service.ErrorCode(err))

	err = p.VerifyProperty(verifier, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, 102, service.ErrorCode(err))

	require.NoError(t, p.VerifyProperty(verifier, id))
	err = p.VerifyProperty(verifier, id)
	assert.ErrorIs(t, err, service.ErrAlreadyVerified)
	assert.Equal(t, 107, service.ErrorCode(err))
}

func TestUpdatePropertyValueAppreciation(t *testing.T) {
	p, _ := newPlatform(t)
	id := createVerifiedProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	// 1000 -> 1500: 50% appreciation = 5000 bps.
	require.NoError(t, p.UpdatePropertyValue(verifier, id, 1_500_000_000))
	stats, err := p.PropertyStats(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), stats.AppreciationRate)

	prop, err := p.Property(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), prop.Value)
}

func TestUpdatePropertyValueDepreciationFloorsAtZero(t *testing.T) {
	p, _ := newPlatform(t)
	id := createVerifiedProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	require.NoError(t, p.UpdatePropertyValue(verifier, id, 800_000_000))
	stats, err := p.PropertyStats(id)
	require.NoError(t, err)
	assert.Zero(t, stats.AppreciationRate)

	prop, err := p.Property(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(800_000_000), prop.Value)
}

func TestUpdatePropertyValueFailures(t *testing.T) {
	p, _ := newPlatform(t)
	id := createVerifiedProperty(t, p, wallet1, 1_000_000_000, 1000, 10_000_000)

	assert.ErrorIs(t, p.UpdatePropertyValue(wallet3, id, 1_200_000_000), service.ErrNotAuthorized)
	assert.ErrorIs(t, p.UpdatePropertyValue(verifier, id, 0), service.ErrInvalidParameter)
	assert.ErrorIs(t, p.UpdatePropertyValue(verifier, 999, 1_200_000_000), service.ErrNotFound)

	prop, err := p.Property(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), prop.Value)
}
