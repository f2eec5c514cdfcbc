package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchamoorthee/propshare/internal/domain"
)

// LoadSnapshot reads the complete persisted state. Returns (nil, nil) when no
// platform_state row exists yet, i.e. a fresh database.
func (s *Store) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	var owner string
	var feeRate, fees, height int64
	err := s.Pool.QueryRow(ctx,
		`SELECT owner, paused, fee_rate_bps, accumulated_fees, height FROM platform_state WHERE id = 1`,
	).Scan(&owner, &snap.State.Paused, &feeRate, &fees, &height)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load platform state: %w", err)
	}
	snap.State.Owner = domain.Principal(owner)
	snap.State.FeeRateBps = uint64(feeRate)
	snap.State.AccumulatedFees = uint64(fees)
	snap.State.Height = uint64(height)

	rows, err := s.Pool.Query(ctx, `SELECT principal FROM verifiers ORDER BY principal`)
	if err != nil {
		return nil, fmt.Errorf("load verifiers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var principal string
		if err := rows.Scan(&principal); err != nil {
			return nil, err
		}
		snap.Verifiers = append(snap.Verifiers, domain.Principal(principal))
	}
	rows.Close()

	if err := s.loadProperties(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadHoldings(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadDistributions(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadMarket(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadProperties(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, owner, title, location, property_value, total_tokens, available_tokens,
		        monthly_rent, verified, active, created_at FROM properties ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load properties: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Property
		var id, value, total, avail, rent, created int64
		var owner string
		if err := rows.Scan(&id, &owner, &p.Title, &p.Location, &value, &total, &avail, &rent, &p.Verified, &p.Active, &created); err != nil {
			return err
		}
		p.ID, p.Owner = uint64(id), domain.Principal(owner)
		p.Value, p.TotalTokens, p.AvailableTokens = uint64(value), uint64(total), uint64(avail)
		p.MonthlyRent, p.CreatedAt = uint64(rent), uint64(created)
		snap.Properties = append(snap.Properties, p)
	}
	rows.Close()

	rows, err = s.Pool.Query(ctx,
		`SELECT property_id, total_holders, total_distributed, last_distribution, appreciation_rate
		 FROM property_stats ORDER BY property_id`)
	if err != nil {
		return fmt.Errorf("load property stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st domain.PropertyStats
		var id, holders, distributed, last, rate int64
		if err := rows.Scan(&id, &holders, &distributed, &last, &rate); err != nil {
			return err
		}
		st.PropertyID, st.TotalHolders = uint64(id), uint64(holders)
		st.TotalDistributed, st.LastDistribution, st.AppreciationRate = uint64(distributed), uint64(last), uint64(rate)
		snap.Stats = append(snap.Stats, st)
	}
	return rows.Err()
}

func (s *Store) loadHoldings(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.Pool.Query(ctx,
		`SELECT property_id, holder, tokens, purchase_price, acquired_at FROM holdings ORDER BY property_id, holder`)
	if err != nil {
		return fmt.Errorf("load holdings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h domain.Holding
		var id, tokens, price, acquired int64
		var holder string
		if err := rows.Scan(&id, &holder, &tokens, &price, &acquired); err != nil {
			return err
		}
		h.PropertyID, h.Holder = uint64(id), domain.Principal(holder)
		h.Tokens, h.PurchasePrice, h.AcquiredAt = uint64(tokens), uint64(price), uint64(acquired)
		snap.Holdings = append(snap.Holdings, h)
	}
	return rows.Err()
}

func (s *Store) loadDistributions(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.Pool.Query(ctx,
		`SELECT property_id, distribution_id, total_amount, per_token_amount, distribution_date, claimed_amount
		 FROM distributions ORDER BY property_id, distribution_id`)
	if err != nil {
		return fmt.Errorf("load distributions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.Distribution
		var pid, did, total, perToken, date, claimed int64
		if err := rows.Scan(&pid, &did, &total, &perToken, &date, &claimed); err != nil {
			return err
		}
		d.PropertyID, d.ID = uint64(pid), uint64(did)
		d.TotalAmount, d.PerTokenAmount, d.Date, d.ClaimedAmount = uint64(total), uint64(perToken), uint64(date), uint64(claimed)
		snap.Distributions = append(snap.Distributions, d)
	}
	rows.Close()

	rows, err = s.Pool.Query(ctx,
		`SELECT property_id, distribution_id, holder, amount, claimed_at FROM claims
		 ORDER BY property_id, distribution_id, holder`)
	if err != nil {
		return fmt.Errorf("load claims: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.Claim
		var pid, did, amount, at int64
		var holder string
		if err := rows.Scan(&pid, &did, &holder, &amount, &at); err != nil {
			return err
		}
		c.PropertyID, c.DistributionID, c.Holder = uint64(pid), uint64(did), domain.Principal(holder)
		c.Amount, c.ClaimedAt = uint64(amount), uint64(at)
		snap.Claims = append(snap.Claims, c)
	}
	return rows.Err()
}

func (s *Store) loadMarket(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.Pool.Query(ctx,
		`SELECT property_id, seller, tokens_for_sale, price_per_token, listed_at, active
		 FROM listings ORDER BY property_id, seller`)
	if err != nil {
		return fmt.Errorf("load listings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.Listing
		var pid, tokens, price, at int64
		var seller string
		if err := rows.Scan(&pid, &seller, &tokens, &price, &at, &l.Active); err != nil {
			return err
		}
		l.PropertyID, l.Seller = uint64(pid), domain.Principal(seller)
		l.TokensForSale, l.PricePerToken, l.ListedAt = uint64(tokens), uint64(price), uint64(at)
		snap.Listings = append(snap.Listings, l)
	}
	rows.Close()

	rows, err = s.Pool.Query(ctx,
		`SELECT property_id, trade_id, seller, buyer, tokens_traded, price_per_token, total_amount, traded_at
		 FROM trades ORDER BY property_id, trade_id`)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.Trade
		var pid, tid, tokens, price, total, at int64
		var seller, buyer string
		if err := rows.Scan(&pid, &tid, &seller, &buyer, &tokens, &price, &total, &at); err != nil {
			return err
		}
		t.PropertyID, t.ID = uint64(pid), uint64(tid)
		t.Seller, t.Buyer = domain.Principal(seller), domain.Principal(buyer)
		t.Tokens, t.PricePerToken, t.TotalAmount, t.TradedAt = uint64(tokens), uint64(price), uint64(total), uint64(at)
		snap.Trades = append(snap.Trades, t)
	}
	return rows.Err()
}
