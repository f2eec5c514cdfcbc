package domain

// Principal is an opaque caller identity supplied by the host environment.
type Principal string

// Property is the registry record for a tokenized property.
type Property struct {
	ID              uint64    `json:"id"`
	Owner           Principal `json:"owner"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Value           uint64    `json:"property_value"`
	TotalTokens     uint64    `json:"total_tokens"`
	AvailableTokens uint64    `json:"available_tokens"`
	MonthlyRent     uint64    `json:"monthly_rent"`
	Verified        bool      `json:"verified"`
	Active          bool      `json:"active"`
	CreatedAt       uint64    `json:"created_at"`
}

// PropertyStats tracks aggregate per-property figures. AppreciationRate is
// basis points and floors at 0 on depreciation.
type PropertyStats struct {
	PropertyID       uint64 `json:"property_id"`
	TotalHolders     uint64 `json:"total_holders"`
	TotalDistributed uint64 `json:"total_distributed"`
	LastDistribution uint64 `json:"last_distribution"`
	AppreciationRate uint64 `json:"appreciation_rate"`
}

// Holding is one holder's running balance for one property. PurchasePrice is
// a cumulative cost basis: it grows with every acquisition and is never
// reduced by sales.
type Holding struct {
	PropertyID    uint64    `json:"property_id"`
	Holder        Principal `json:"holder"`
	Tokens        uint64    `json:"tokens"`
	PurchasePrice uint64    `json:"purchase_price"`
	AcquiredAt    uint64    `json:"acquired_at"`
}

// Distribution is one rental-income payout pool, identified per property by a
// sequential id starting at 1.
type Distribution struct {
	PropertyID     uint64 `json:"property_id"`
	ID             uint64 `json:"distribution_id"`
	TotalAmount    uint64 `json:"total_amount"`
	PerTokenAmount uint64 `json:"per_token_amount"`
	Date           uint64 `json:"distribution_date"`
	ClaimedAmount  uint64 `json:"claimed_amount"`
}

// Claim records a holder pulling their share of a distribution. Existence of
// the record is the single-claim guard. The amount is computed from the
// holder's balance at claim time, not at distribution time.
type Claim struct {
	PropertyID     uint64    `json:"property_id"`
	DistributionID uint64    `json:"distribution_id"`
	Holder         Principal `json:"holder"`
	Amount         uint64    `json:"amount"`
	ClaimedAt      uint64    `json:"claimed_at"`
}

// Listing is a seller's open offer on the secondary market. At most one
// listing exists per (property, seller); deactivated listings are retained
// with Active=false as a historical record.
type Listing struct {
	PropertyID    uint64    `json:"property_id"`
	Seller        Principal `json:"seller"`
	TokensForSale uint64    `json:"tokens_for_sale"`
	PricePerToken uint64    `json:"price_per_token"`
	ListedAt      uint64    `json:"listed_at"`
	Active        bool      `json:"active"`
}

// Trade is an append-only record of a matched secondary-market buy.
type Trade struct {
	PropertyID    uint64    `json:"property_id"`
	ID            uint64    `json:"trade_id"`
	Seller        Principal `json:"seller"`
	Buyer         Principal `json:"buyer"`
	Tokens        uint64    `json:"tokens_traded"`
	PricePerToken uint64    `json:"price_per_token"`
	TotalAmount   uint64    `json:"total_amount"`
	TradedAt      uint64    `json:"traded_at"`
}

// PlatformState is the singleton administrative state. Height is the block
// counter, advanced once per mutating operation.
type PlatformState struct {
	Owner           Principal `json:"owner"`
	Paused          bool      `json:"paused"`
	FeeRateBps      uint64    `json:"fee_rate_bps"`
	AccumulatedFees uint64    `json:"accumulated_fees"`
	Height          uint64    `json:"height"`
}

// Snapshot is the full persisted platform state, as loaded at boot.
type Snapshot struct {
	State         PlatformState
	Verifiers     []Principal
	Properties    []Property
	Stats         []PropertyStats
	Holdings      []Holding
	Distributions []Distribution
	Claims        []Claim
	Listings      []Listing
	Trades        []Trade
}
