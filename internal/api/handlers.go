package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/punchamoorthee/propshare/internal/domain"
	"github.com/punchamoorthee/propshare/internal/service"
	"github.com/punchamoorthee/propshare/internal/store"
)

// Persister is the post-commit persistence seam. A nil Persister disables
// persistence entirely (used by tests).
type Persister interface {
	Persist(ctx context.Context, records ...any) error
}

type Handler struct {
	platform *service.Platform
	db       Persister
}

func NewHandler(p *service.Platform, db Persister) *Handler {
	return &Handler{platform: p, db: db}
}

// Register mounts all API routes on the given (sub)router.
func (h *Handler) Register(r *mux.Router) {
	// Literal segment before the {id} routes; mux matches in registration order.
	r.HandleFunc("/properties/count", h.GetPropertyCount).Methods("GET")
	r.HandleFunc("/properties", h.CreateProperty).Methods("POST")
	r.HandleFunc("/properties/{id}", h.GetProperty).Methods("GET")
	r.HandleFunc("/properties/{id}/stats", h.GetPropertyStats).Methods("GET")
	r.HandleFunc("/properties/{id}/verify", h.VerifyProperty).Methods("POST")
	r.HandleFunc("/properties/{id}/value", h.UpdatePropertyValue).Methods("POST")
	r.HandleFunc("/properties/{id}/purchase", h.PurchaseTokens).Methods("POST")

	r.HandleFunc("/properties/{id}/distributions", h.Distribute).Methods("POST")
	r.HandleFunc("/properties/{id}/distributions/{did}", h.GetDistribution).Methods("GET")
	r.HandleFunc("/properties/{id}/distributions/{did}/claims", h.ClaimIncome).Methods("POST")
	r.HandleFunc("/properties/{id}/distributions/{did}/claims/{holder}", h.GetClaim).Methods("GET")
	r.HandleFunc("/properties/{id}/distributions/{did}/claimable/{holder}", h.GetClaimable).Methods("GET")

	r.HandleFunc("/properties/{id}/listings", h.ListTokens).Methods("POST")
	r.HandleFunc("/properties/{id}/listings", h.CancelListing).Methods("DELETE")
	r.HandleFunc("/properties/{id}/listings/{seller}", h.GetListing).Methods("GET")
	r.HandleFunc("/properties/{id}/listings/{seller}/buy", h.BuyListedTokens).Methods("POST")
	r.HandleFunc("/properties/{id}/listings/{seller}/delist", h.EmergencyDelist).Methods("POST")

	r.HandleFunc("/properties/{id}/holdings/{holder}", h.GetHolding).Methods("GET")
	r.HandleFunc("/properties/{id}/ownership/{holder}", h.GetOwnership).Methods("GET")
	r.HandleFunc("/properties/{id}/trades/{tid}", h.GetTrade).Methods("GET")

	r.HandleFunc("/portfolio/{principal}/value", h.GetPortfolioValue).Methods("GET")
	r.HandleFunc("/verifiers/{principal}", h.GetVerifierStatus).Methods("GET")
	r.HandleFunc("/platform", h.GetPlatformState).Methods("GET")

	r.HandleFunc("/admin/verifiers", h.AddVerifier).Methods("POST")
	r.HandleFunc("/admin/verifiers/{principal}", h.RemoveVerifier).Methods("DELETE")
	r.HandleFunc("/admin/fee-rate", h.SetFeeRate).Methods("POST")
	r.HandleFunc("/admin/pause", h.TogglePause).Methods("POST")
	r.HandleFunc("/admin/withdraw-fees", h.WithdrawFees).Methods("POST")
}

// caller extracts the host-supplied principal from the X-Principal header.
func caller(r *http.Request) (domain.Principal, bool) {
	p := r.Header.Get("X-Principal")
	return domain.Principal(p), p != ""
}

func pathID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}

// persist records the given state after a committed operation. The in-memory
// engine is the runtime source of truth; a failed write is logged and the
// rows are rewritten by the next successful persist of the same keys.
func (h *Handler) persist(ctx context.Context, records ...any) {
	if h.db == nil {
		return
	}
	if err := h.db.Persist(ctx, records...); err != nil {
		log.Printf("WARN: state committed but persistence failed: %v", err)
	}
}

// --- Registry ---

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties")
		return
	}
	var req domain.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/properties")
		return
	}

	id, err := h.platform.CreateProperty(p, req)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/properties")
		return
	}

	prop, _ := h.platform.Property(id)
	stats, _ := h.platform.PropertyStats(id)
	h.persist(r.Context(), prop, stats, h.platform.State())

	w.Header().Set("Location", fmt.Sprintf("/properties/%d", id))
	h.respondJSON(w, http.StatusCreated, map[string]uint64{"property_id": id}, "POST", "/properties")
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "GET", "/properties/{id}")
		return
	}
	prop, err := h.platform.Property(id)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}")
		return
	}
	h.respondJSON(w, http.StatusOK, prop, "GET", "/properties/{id}")
}

func (h *Handler) GetPropertyStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "GET", "/properties/{id}/stats")
		return
	}
	stats, err := h.platform.PropertyStats(id)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/stats")
		return
	}
	h.respondJSON(w, http.StatusOK, stats, "GET", "/properties/{id}/stats")
}

func (h *Handler) GetPropertyCount(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]uint64{"total_properties": h.platform.TotalProperties()}, "GET", "/properties/count")
}

func (h *Handler) VerifyProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/verify")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/verify")
		return
	}
	if err := h.platform.VerifyProperty(p, id); err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/verify")
		return
	}
	prop, _ := h.platform.Property(id)
	h.persist(r.Context(), prop, h.platform.State())
	h.respondJSON(w, http.StatusOK, prop, "POST", "/properties/{id}/verify")
}

func (h *Handler) UpdatePropertyValue(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/value")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/value")
		return
	}
	var req domain.UpdateValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/properties/{id}/value")
		return
	}
	if err := h.platform.UpdatePropertyValue(p, id, req.NewValue); err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/value")
		return
	}
	prop, _ := h.platform.Property(id)
	stats, _ := h.platform.PropertyStats(id)
	h.persist(r.Context(), prop, stats, h.platform.State())
	h.respondJSON(w, http.StatusOK, prop, "POST", "/properties/{id}/value")
}

// --- Primary issuance ---

func (h *Handler) PurchaseTokens(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/properties/{id}/purchase"))
	defer timer.ObserveDuration()

	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/purchase")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/purchase")
		return
	}
	var req domain.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/properties/{id}/purchase")
		return
	}

	receipt, err := h.platform.PurchaseTokens(p, id, req.Tokens)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/purchase")
		return
	}
	tokensPurchasedTotal.Add(float64(receipt.Tokens))

	prop, _ := h.platform.Property(id)
	stats, _ := h.platform.PropertyStats(id)
	holding, _ := h.platform.Holding(id, p)
	h.persist(r.Context(), prop, stats, holding, h.platform.State())

	h.respondJSON(w, http.StatusCreated, receipt, "POST", "/properties/{id}/purchase")
}

// --- Distribution ---

func (h *Handler) Distribute(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/properties/{id}/distributions"))
	defer timer.ObserveDuration()

	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/distributions")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/distributions")
		return
	}
	var req domain.DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/properties/{id}/distributions")
		return
	}

	did, err := h.platform.Distribute(p, id, req.Amount)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/distributions")
		return
	}
	distributionsTotal.Inc()

	dist, _ := h.platform.Distribution(id, did)
	stats, _ := h.platform.PropertyStats(id)
	h.persist(r.Context(), dist, stats, h.platform.State())

	w.Header().Set("Location", fmt.Sprintf("/properties/%d/distributions/%d", id, did))
	h.respondJSON(w, http.StatusCreated, dist, "POST", "/properties/{id}/distributions")
}

func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	id, err1 := pathID(r, "id")
	did, err2 := pathID(r, "did")
	if err1 != nil || err2 != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid id", "GET", "/properties/{id}/distributions/{did}")
		return
	}
	dist, err := h.platform.Distribution(id, did)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/distributions/{did}")
		return
	}
	h.respondJSON(w, http.StatusOK, dist, "GET", "/properties/{id}/distributions/{did}")
}

func (h *Handler) ClaimIncome(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/properties/{id}/distributions/{did}/claims"))
	defer timer.ObserveDuration()

	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/distributions/{did}/claims")
		return
	}
	id, err1 := pathID(r, "id")
	did, err2 := pathID(r, "did")
	if err1 != nil || err2 != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid id", "POST", "/properties/{id}/distributions/{did}/claims")
		return
	}

	claim, err := h.platform.ClaimIncome(p, id, did)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/distributions/{did}/claims")
		return
	}
	claimsTotal.Inc()

	dist, _ := h.platform.Distribution(id, did)
	h.persist(r.Context(), claim, dist, h.platform.State())

	h.respondJSON(w, http.StatusCreated, claim, "POST", "/properties/{id}/distributions/{did}/claims")
}

func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	id, err1 := pathID(r, "id")
	did, err2 := pathID(r, "did")
	if err1 != nil || err2 != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid id", "GET", "/properties/{id}/distributions/{did}/claims/{holder}")
		return
	}
	holder := domain.Principal(mux.Vars(r)["holder"])
	claim, err := h.platform.ClaimRecord(id, did, holder)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/distributions/{did}/claims/{holder}")
		return
	}
	h.respondJSON(w, http.StatusOK, claim, "GET", "/properties/{id}/distributions/{did}/claims/{holder}")
}

func (h *Handler) GetClaimable(w http.ResponseWriter, r *http.Request) {
	id, err1 := pathID(r, "id")
	did, err2 := pathID(r, "did")
	if err1 != nil || err2 != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid id", "GET", "/properties/{id}/distributions/{did}/claimable/{holder}")
		return
	}
	holder := domain.Principal(mux.Vars(r)["holder"])
	amount, err := h.platform.Claimable(id, did, holder)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/distributions/{did}/claimable/{holder}")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]uint64{"claimable": amount}, "GET", "/properties/{id}/distributions/{did}/claimable/{holder}")
}

// --- Secondary market ---

func (h *Handler) ListTokens(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/listings")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/listings")
		return
	}
	var req domain.ListTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/properties/{id}/listings")
		return
	}
	if err := h.platform.ListTokens(p, id, req.Tokens, req.PricePerToken); err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/listings")
		return
	}
	listing, _ := h.platform.Listing(id, p)
	h.persist(r.Context(), listing, h.platform.State())
	h.respondJSON(w, http.StatusCreated, listing, "POST", "/properties/{id}/listings")
}

func (h *Handler) CancelListing(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "DELETE", "/properties/{id}/listings")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "DELETE", "/properties/{id}/listings")
		return
	}
	if err := h.platform.CancelListing(p, id); err != nil {
		h.respondServiceError(w, err, "DELETE", "/properties/{id}/listings")
		return
	}
	listing, _ := h.platform.Listing(id, p)
	h.persist(r.Context(), listing, h.platform.State())
	h.respondJSON(w, http.StatusOK, listing, "DELETE", "/properties/{id}/listings")
}

func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "GET", "/properties/{id}/listings/{seller}")
		return
	}
	seller := domain.Principal(mux.Vars(r)["seller"])
	listing, err := h.platform.Listing(id, seller)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/listings/{seller}")
		return
	}
	h.respondJSON(w, http.StatusOK, listing, "GET", "/properties/{id}/listings/{seller}")
}

func (h *Handler) BuyListedTokens(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/properties/{id}/listings/{seller}/buy"))
	defer timer.ObserveDuration()

	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/listings/{seller}/buy")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/listings/{seller}/buy")
		return
	}
	seller := domain.Principal(mux.Vars(r)["seller"])
	var req domain.BuyTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/properties/{id}/listings/{seller}/buy")
		return
	}

	trade, err := h.platform.BuyListedTokens(p, id, seller, req.Tokens)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/listings/{seller}/buy")
		return
	}
	tradesTotal.Inc()

	listing, _ := h.platform.Listing(id, seller)
	sellerHolding, _ := h.platform.Holding(id, seller)
	buyerHolding, _ := h.platform.Holding(id, p)
	stats, _ := h.platform.PropertyStats(id)
	h.persist(r.Context(), trade, listing, sellerHolding, buyerHolding, stats, h.platform.State())

	w.Header().Set("Location", fmt.Sprintf("/properties/%d/trades/%d", id, trade.ID))
	h.respondJSON(w, http.StatusCreated, trade, "POST", "/properties/{id}/listings/{seller}/buy")
}

func (h *Handler) EmergencyDelist(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/properties/{id}/listings/{seller}/delist")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "POST", "/properties/{id}/listings/{seller}/delist")
		return
	}
	seller := domain.Principal(mux.Vars(r)["seller"])
	if err := h.platform.EmergencyDelist(p, id, seller); err != nil {
		h.respondServiceError(w, err, "POST", "/properties/{id}/listings/{seller}/delist")
		return
	}
	listing, _ := h.platform.Listing(id, seller)
	h.persist(r.Context(), listing, h.platform.State())
	h.respondJSON(w, http.StatusOK, listing, "POST", "/properties/{id}/listings/{seller}/delist")
}

// --- Holdings and history ---

func (h *Handler) GetHolding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "GET", "/properties/{id}/holdings/{holder}")
		return
	}
	holder := domain.Principal(mux.Vars(r)["holder"])
	holding, err := h.platform.Holding(id, holder)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/holdings/{holder}")
		return
	}
	h.respondJSON(w, http.StatusOK, holding, "GET", "/properties/{id}/holdings/{holder}")
}

func (h *Handler) GetOwnership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid property id", "GET", "/properties/{id}/ownership/{holder}")
		return
	}
	holder := domain.Principal(mux.Vars(r)["holder"])
	bps, err := h.platform.OwnershipPercentage(id, holder)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/ownership/{holder}")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]uint64{"ownership_bps": bps}, "GET", "/properties/{id}/ownership/{holder}")
}

func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, err1 := pathID(r, "id")
	tid, err2 := pathID(r, "tid")
	if err1 != nil || err2 != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid id", "GET", "/properties/{id}/trades/{tid}")
		return
	}
	trade, err := h.platform.Trade(id, tid)
	if err != nil {
		h.respondServiceError(w, err, "GET", "/properties/{id}/trades/{tid}")
		return
	}
	h.respondJSON(w, http.StatusOK, trade, "GET", "/properties/{id}/trades/{tid}")
}

func (h *Handler) GetPortfolioValue(w http.ResponseWriter, r *http.Request) {
	holder := domain.Principal(mux.Vars(r)["principal"])
	h.respondJSON(w, http.StatusOK, map[string]uint64{"portfolio_value": h.platform.PortfolioValue(holder)}, "GET", "/portfolio/{principal}/value")
}

// --- Administration ---

func (h *Handler) GetVerifierStatus(w http.ResponseWriter, r *http.Request) {
	p := domain.Principal(mux.Vars(r)["principal"])
	h.respondJSON(w, http.StatusOK, map[string]bool{"authorized": h.platform.IsVerifier(p)}, "GET", "/verifiers/{principal}")
}

func (h *Handler) GetPlatformState(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.platform.State(), "GET", "/platform")
}

func (h *Handler) AddVerifier(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/admin/verifiers")
		return
	}
	var req domain.VerifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Principal == "" {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/admin/verifiers")
		return
	}
	if err := h.platform.AddVerifier(p, req.Principal); err != nil {
		h.respondServiceError(w, err, "POST", "/admin/verifiers")
		return
	}
	h.persist(r.Context(), store.AddVerifier(req.Principal), h.platform.State())
	h.respondJSON(w, http.StatusCreated, map[string]bool{"authorized": true}, "POST", "/admin/verifiers")
}

func (h *Handler) RemoveVerifier(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "DELETE", "/admin/verifiers/{principal}")
		return
	}
	verifier := domain.Principal(mux.Vars(r)["principal"])
	if err := h.platform.RemoveVerifier(p, verifier); err != nil {
		h.respondServiceError(w, err, "DELETE", "/admin/verifiers/{principal}")
		return
	}
	h.persist(r.Context(), store.RemoveVerifier(verifier), h.platform.State())
	h.respondJSON(w, http.StatusOK, map[string]bool{"authorized": false}, "DELETE", "/admin/verifiers/{principal}")
}

func (h *Handler) SetFeeRate(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/admin/fee-rate")
		return
	}
	var req domain.FeeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/admin/fee-rate")
		return
	}
	if err := h.platform.SetFeeRate(p, req.FeeRateBps); err != nil {
		h.respondServiceError(w, err, "POST", "/admin/fee-rate")
		return
	}
	h.persist(r.Context(), h.platform.State())
	h.respondJSON(w, http.StatusOK, h.platform.State(), "POST", "/admin/fee-rate")
}

func (h *Handler) TogglePause(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/admin/pause")
		return
	}
	paused, err := h.platform.TogglePause(p)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/admin/pause")
		return
	}
	h.persist(r.Context(), h.platform.State())
	h.respondJSON(w, http.StatusOK, map[string]bool{"paused": paused}, "POST", "/admin/pause")
}

func (h *Handler) WithdrawFees(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Missing X-Principal header", "POST", "/admin/withdraw-fees")
		return
	}
	amount, err := h.platform.WithdrawFees(p)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/admin/withdraw-fees")
		return
	}
	h.persist(r.Context(), h.platform.State())
	h.respondJSON(w, http.StatusOK, map[string]uint64{"withdrawn": amount}, "POST", "/admin/withdraw-fees")
}
