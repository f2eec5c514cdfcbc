package domain

// CreatePropertyRequest is the payload for registering a new property.
type CreatePropertyRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Value       uint64 `json:"property_value"`
	TotalTokens uint64 `json:"total_tokens"`
	MonthlyRent uint64 `json:"monthly_rent"`
}

// UpdateValueRequest carries a verifier's reassessment of a property.
type UpdateValueRequest struct {
	NewValue uint64 `json:"new_value"`
}

// PurchaseRequest buys tokens from the property's available pool.
type PurchaseRequest struct {
	Tokens uint64 `json:"tokens"`
}

// PurchaseReceipt is the canonical response for a primary purchase.
type PurchaseReceipt struct {
	PropertyID uint64    `json:"property_id"`
	Buyer      Principal `json:"buyer"`
	Tokens     uint64    `json:"tokens"`
	UnitPrice  uint64    `json:"unit_price"`
	BaseCost   uint64    `json:"base_cost"`
	Fee        uint64    `json:"fee"`
	TotalCost  uint64    `json:"total_cost"`
}

// DistributeRequest pushes a rental-income lump sum into a payout pool.
type DistributeRequest struct {
	Amount uint64 `json:"amount"`
}

// ListTokensRequest creates a secondary-market listing.
type ListTokensRequest struct {
	Tokens        uint64 `json:"tokens"`
	PricePerToken uint64 `json:"price_per_token"`
}

// BuyTokensRequest buys against an active listing.
type BuyTokensRequest struct {
	Tokens uint64 `json:"tokens"`
}

// VerifierRequest names a principal for the verifier allow-list.
type VerifierRequest struct {
	Principal Principal `json:"principal"`
}

// FeeRateRequest sets the platform fee rate in basis points.
type FeeRateRequest struct {
	FeeRateBps uint64 `json:"fee_rate_bps"`
}
