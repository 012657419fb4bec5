package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/koenbroumels/zelf-bar-dienst/internal/currency"
	"github.com/koenbroumels/zelf-bar-dienst/internal/ledger"
	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
	"github.com/koenbroumels/zelf-bar-dienst/internal/pricing"
	"github.com/koenbroumels/zelf-bar-dienst/internal/service"
)

type settingsPayload struct {
	BasePriceCents int64  `json:"base_price_cents"`
	CurrencyCode   string `json:"currency_code"`
}

type priceResponse struct {
	Type         models.ItemType `json:"type"`
	PriceCents   int64           `json:"price_cents"`
	DisplayPrice string          `json:"display_price"`
}

type createItemRequest struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

type itemResponse struct {
	ID             string          `json:"id"`
	Type           models.ItemType `json:"type"`
	CreatedAt      int64           `json:"created_at"`
	PriceCents     int64           `json:"price_cents"`
	DisplayPrice   string          `json:"display_price"`
	Label          string          `json:"label,omitempty"`
	PaidAt         int64           `json:"paid_at,omitempty"`
	PaymentBatchID string          `json:"payment_batch_id,omitempty"`
}

type settleRequest struct {
	ItemIDs []string `json:"item_ids"`
	Note    string   `json:"note"`
}

type batchResponse struct {
	ID           string `json:"id"`
	CreatedAt    int64  `json:"created_at"`
	Note         string `json:"note,omitempty"`
	ItemCount    int    `json:"item_count"`
	TotalCents   int64  `json:"total_cents"`
	DisplayTotal string `json:"display_total"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.settings.Load(r.Context())
	respondJSON(w, http.StatusOK, settingsPayload{
		BasePriceCents: settings.BasePriceCents,
		CurrencyCode:   settings.CurrencyCode,
	})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	validated, err := service.ValidateSettings(models.Settings{
		BasePriceCents: payload.BasePriceCents,
		CurrencyCode:   payload.CurrencyCode,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.settings.Save(r.Context(), validated); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	respondJSON(w, http.StatusOK, settingsPayload{
		BasePriceCents: validated.BasePriceCents,
		CurrencyCode:   validated.CurrencyCode,
	})
}

// handleGetPrices previews the price each item type would be created with
// under the current settings.
func (s *Server) handleGetPrices(w http.ResponseWriter, r *http.Request) {
	settings := s.settings.Load(r.Context())

	prices := make([]priceResponse, 0, len(models.ItemTypes))
	for _, itemType := range models.ItemTypes {
		cents := pricing.PriceFor(itemType, settings)
		prices = append(prices, priceResponse{
			Type:         itemType,
			PriceCents:   cents,
			DisplayPrice: currency.Format(cents, settings.CurrencyCode),
		})
	}
	respondJSON(w, http.StatusOK, prices)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itemType, err := models.ParseItemType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Create(r.Context(), itemType, req.Label)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record item")
		return
	}

	itemsCreated.WithLabelValues(string(itemType)).Inc()

	settings := s.settings.Load(r.Context())
	respondJSON(w, http.StatusCreated, toItemResponse(item, settings.CurrencyCode))
}

// handleListItems returns items filtered by the unpaid flag and search
// text, sorted newest first for display.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	opts := ledger.FilterOptions{
		OnlyUnpaid: r.URL.Query().Get("unpaid") == "1",
		SearchText: r.URL.Query().Get("q"),
	}

	items := ledger.Filter(s.items.List(r.Context()), opts)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	settings := s.settings.Load(r.Context())
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item, settings.CurrencyCode))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The payment ledger trusts its callers on this: only currently
	// unpaid items may be settled, so intersect the selection here.
	unpaid := ledger.Filter(s.items.List(r.Context()), ledger.FilterOptions{OnlyUnpaid: true})
	unpaidIDs := make(map[string]bool, len(unpaid))
	for _, item := range unpaid {
		unpaidIDs[item.ID] = true
	}
	selected := make([]string, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		if unpaidIDs[id] {
			selected = append(selected, id)
		}
	}

	batch, err := s.payments.Settle(r.Context(), selected, req.Note)
	if errors.Is(err, service.ErrNoItemsSelected) {
		respondError(w, http.StatusBadRequest, "no unpaid items selected")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to settle items")
		return
	}

	batchesSettled.Inc()

	items := s.items.List(r.Context())
	settings := s.settings.Load(r.Context())
	respondJSON(w, http.StatusCreated, toBatchResponse(batch, items, settings.CurrencyCode))
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	batches := s.payments.ListBatches(r.Context())
	items := s.items.List(r.Context())
	settings := s.settings.Load(r.Context())

	out := make([]batchResponse, 0, len(batches))
	for _, batch := range batches {
		out = append(out, toBatchResponse(batch, items, settings.CurrencyCode))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleReverse deletes a batch and restores its items to unpaid. It
// returns 204 even for unknown ids so retries stay idempotent.
func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	if err := s.payments.Reverse(r.Context(), batchID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reverse batch")
		return
	}

	batchesReversed.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	var batch models.PaymentBatch
	found := false
	for _, b := range s.payments.ListBatches(r.Context()) {
		if b.ID == batchID {
			batch = b
			found = true
			break
		}
	}
	if !found {
		respondError(w, http.StatusNotFound, "batch not found")
		return
	}

	out, err := service.ExportCSV(batch, s.items.List(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to export batch")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename(batch)))
	_, _ = w.Write([]byte(out))
}

func toItemResponse(item models.Item, currencyCode string) itemResponse {
	return itemResponse{
		ID:             item.ID,
		Type:           item.Type,
		CreatedAt:      item.CreatedAt,
		PriceCents:     item.PriceCents,
		DisplayPrice:   currency.Format(item.PriceCents, currencyCode),
		Label:          item.Label,
		PaidAt:         item.PaidAt,
		PaymentBatchID: item.PaymentBatchID,
	}
}

func toBatchResponse(batch models.PaymentBatch, items []models.Item, currencyCode string) batchResponse {
	inBatch := ledger.ItemsInBatch(items, batch.ID)
	total := ledger.TotalFor(batch, items)
	return batchResponse{
		ID:           batch.ID,
		CreatedAt:    batch.CreatedAt,
		Note:         batch.Note,
		ItemCount:    len(inBatch),
		TotalCents:   total,
		DisplayTotal: currency.Format(total, currencyCode),
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
