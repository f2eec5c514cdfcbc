package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchamoorthee/propshare/internal/domain"
)

// AddVerifier and RemoveVerifier are persistence markers for allow-list
// changes, since the verifier set has no record type of its own.
type (
	AddVerifier    domain.Principal
	RemoveVerifier domain.Principal
)

// Persist writes the given records in one transaction. Callers pass exactly
// the records an operation touched; each is upserted on its natural key so
// replays are harmless.
func (s *Store) Persist(ctx context.Context, records ...any) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		if err := persistOne(ctx, tx, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx commit failed: %w", err)
	}
	return nil
}

func persistOne(ctx context.Context, tx pgx.Tx, rec any) error {
	var err error
	switch r := rec.(type) {
	case domain.PlatformState:
		_, err = tx.Exec(ctx,
			`INSERT INTO platform_state (id, owner, paused, fee_rate_bps, accumulated_fees, height)
			 VALUES (1, $1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET owner = $1, paused = $2, fee_rate_bps = $3, accumulated_fees = $4, height = $5`,
			string(r.Owner), r.Paused, int64(r.FeeRateBps), int64(r.AccumulatedFees), int64(r.Height))
	case AddVerifier:
		_, err = tx.Exec(ctx,
			`INSERT INTO verifiers (principal) VALUES ($1) ON CONFLICT DO NOTHING`, string(r))
	case RemoveVerifier:
		_, err = tx.Exec(ctx, `DELETE FROM verifiers WHERE principal = $1`, string(r))
	case domain.Property:
		_, err = tx.Exec(ctx,
			`INSERT INTO properties (id, owner, title, location, property_value, total_tokens, available_tokens, monthly_rent, verified, active, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (id) DO UPDATE SET owner = $2, title = $3, location = $4, property_value = $5,
			   total_tokens = $6, available_tokens = $7, monthly_rent = $8, verified = $9, active = $10, created_at = $11`,
			int64(r.ID), string(r.Owner), r.Title, r.Location, int64(r.Value), int64(r.TotalTokens),
			int64(r.AvailableTokens), int64(r.MonthlyRent), r.Verified, r.Active, int64(r.CreatedAt))
	case domain.PropertyStats:
		_, err = tx.Exec(ctx,
			`INSERT INTO property_stats (property_id, total_holders, total_distributed, last_distribution, appreciation_rate)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (property_id) DO UPDATE SET total_holders = $2, total_distributed = $3, last_distribution = $4, appreciation_rate = $5`,
			int64(r.PropertyID), int64(r.TotalHolders), int64(r.TotalDistributed), int64(r.LastDistribution), int64(r.AppreciationRate))
	case domain.Holding:
		_, err = tx.Exec(ctx,
			`INSERT INTO holdings (property_id, holder, tokens, purchase_price, acquired_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (property_id, holder) DO UPDATE SET tokens = $3, purchase_price = $4, acquired_at = $5`,
			int64(r.PropertyID), string(r.Holder), int64(r.Tokens), int64(r.PurchasePrice), int64(r.AcquiredAt))
	case domain.Distribution:
		_, err = tx.Exec(ctx,
			`INSERT INTO distributions (property_id, distribution_id, total_amount, per_token_amount, distribution_date, claimed_amount)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (property_id, distribution_id) DO UPDATE SET claimed_amount = $6`,
			int64(r.PropertyID), int64(r.ID), int64(r.TotalAmount), int64(r.PerTokenAmount), int64(r.Date), int64(r.ClaimedAmount))
	case domain.Claim:
		_, err = tx.Exec(ctx,
			`INSERT INTO claims (property_id, distribution_id, holder, amount, claimed_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (property_id, distribution_id, holder) DO NOTHING`,
			int64(r.PropertyID), int64(r.DistributionID), string(r.Holder), int64(r.Amount), int64(r.ClaimedAt))
	case domain.Listing:
		_, err = tx.Exec(ctx,
			`INSERT INTO listings (property_id, seller, tokens_for_sale, price_per_token, listed_at, active)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (property_id, seller) DO UPDATE SET tokens_for_sale = $3, price_per_token = $4, listed_at = $5, active = $6`,
			int64(r.PropertyID), string(r.Seller), int64(r.TokensForSale), int64(r.PricePerToken), int64(r.ListedAt), r.Active)
	case domain.Trade:
		_, err = tx.Exec(ctx,
			`INSERT INTO trades (property_id, trade_id, seller, buyer, tokens_traded, price_per_token, total_amount, traded_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (property_id, trade_id) DO NOTHING`,
			int64(r.PropertyID), int64(r.ID), string(r.Seller), string(r.Buyer), int64(r.Tokens),
			int64(r.PricePerToken), int64(r.TotalAmount), int64(r.TradedAt))
	default:
		return fmt.Errorf("unsupported record type %T", rec)
	}
	if err != nil {
		return fmt.Errorf("persist %T failed: %w", rec, err)
	}
	return nil
}
