package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/remote"
	"trade-journal-go/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxBodyBytes = 10 << 20

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log      *zap.Logger
	journal  *journal.Service
	fetcher  remote.Fetcher
	validate *validator.Validate
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, svc *journal.Service, fetcher remote.Fetcher) *APIHandler {
	return &APIHandler{log: log, journal: svc, fetcher: fetcher, validate: validator.New()}
}

type errorResponse struct {
	Error string `json:"error"`
}

// tradeResponse is a table row: the stored record plus its derived metrics.
type tradeResponse struct {
	models.Trade
	PnL       analytics.NullFloat `json:"pnl"`
	Notional  analytics.NullFloat `json:"notional"`
	ResultPct analytics.NullFloat `json:"resultPct"`
}

// StatisticsResponse is the structure for the /api/statistics endpoint.
// JSON has no infinity, so an unbounded profit factor is null with
// profitFactorInfinite set.
type StatisticsResponse struct {
	TotalPnL             float64           `json:"totalPnl"`
	Winrate              float64           `json:"winrate"`
	GrossProfit          float64           `json:"grossProfit"`
	GrossLossAbs         float64           `json:"grossLossAbs"`
	ProfitFactor         *float64          `json:"profitFactor"`
	ProfitFactorInfinite bool              `json:"profitFactorInfinite"`
	AvgResultPct         float64           `json:"avgResultPct"`
	TotalResultPct       float64           `json:"totalResultPct"`
	TradesCount          int               `json:"tradesCount"`
	Display              map[string]string `json:"display"`
}

type dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// chartResponse mirrors the labels/datasets shape chart libraries consume.
type chartResponse struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

type remoteImportRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Health reports liveness and the collection size.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "ok",
		"trades": len(h.journal.Trades()),
	})
}

// ListTrades returns the filtered table view, newest first.
func (h *APIHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	f := journal.Filter{
		Query: r.URL.Query().Get("q"),
		Side:  r.URL.Query().Get("side"),
	}
	rows := h.journal.View(f)
	out := make([]tradeResponse, len(rows))
	for i, d := range rows {
		out[i] = tradeResponse{Trade: d.Trade, PnL: d.PnL, Notional: d.Notional, ResultPct: d.ResultPct}
	}
	render.JSON(w, r, out)
}

// AddTrade appends a trade from form input.
func (h *APIHandler) AddTrade(w http.ResponseWriter, r *http.Request) {
	var in journal.TradeInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	t, err := h.journal.Add(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, t)
}

// DeleteTrade removes one trade.
func (h *APIHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateTrade copies one trade under a new id.
func (h *APIHandler) DuplicateTrade(w http.ResponseWriter, r *http.Request) {
	t, err := h.journal.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, t)
}

// ClearTrades removes every trade.
func (h *APIHandler) ClearTrades(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.Clear(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatisticsHandler returns the summary statistics of the whole collection.
func (h *APIHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	s := h.journal.Stats()
	resp := StatisticsResponse{
		TotalPnL:             s.TotalPnL,
		Winrate:              s.WinRate,
		GrossProfit:          s.GrossProfit,
		GrossLossAbs:         s.GrossLossAbs,
		ProfitFactorInfinite: s.ProfitFactorInfinite(),
		AvgResultPct:         s.AvgResultPct,
		TotalResultPct:       s.TotalResultPct,
		TradesCount:          s.TradesCount,
		Display: map[string]string{
			"totalPnl":       report.Money(s.TotalPnL),
			"winrate":        report.WinRate(s.WinRate),
			"profitFactor":   report.ProfitFactor(s),
			"avgResultPct":   report.Pct(analytics.Some(s.AvgResultPct)),
			"totalResultPct": report.Pct(analytics.Some(s.TotalResultPct)),
		},
	}
	if !resp.ProfitFactorInfinite {
		pf := s.ProfitFactor
		resp.ProfitFactor = &pf
	}
	render.JSON(w, r, resp)
}

// EquityChart returns the cumulative or per-trade P&L series.
func (h *APIHandler) EquityChart(w http.ResponseWriter, r *http.Request) {
	mode, err := analytics.ParseEquityMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s := h.journal.Equity(mode)
	render.JSON(w, r, newChart(s.Labels, report.EquityLabel(mode), s.Data))
}

// PeriodChart returns the day or week series under the pnl or pct metric.
func (h *APIHandler) PeriodChart(w http.ResponseWriter, r *http.Request) {
	mode, err := analytics.ParseGroupMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	metric, err := analytics.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	p := h.journal.Period(mode, metric)
	render.JSON(w, r, newChart(p.Labels, report.PeriodLabel(mode, metric), p.Data))
}

// SidesChart returns the LONG/SHORT split.
func (h *APIHandler) SidesChart(w http.ResponseWriter, r *http.Request) {
	c := h.journal.Sides()
	render.JSON(w, r, newChart(report.SideLabels, "Sides", []float64{float64(c.Long), float64(c.Short)}))
}

// Export downloads the collection as a JSON document.
func (h *APIHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(journal.ExportFileName))
	if err := h.journal.Export().Encode(w); err != nil {
		h.log.Error("Failed to write export", zap.Error(err))
	}
}

// ExportXLSX downloads trades and statistics as a workbook.
func (h *APIHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(report.XLSXFileName))
	if err := report.WriteWorkbook(w, h.journal.Trades(), h.journal.Stats()); err != nil {
		h.log.Error("Failed to write workbook", zap.Error(err))
	}
}

// Import replaces the collection with the uploaded document.
func (h *APIHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("could not read document: %w", err))
		return
	}
	h.importData(w, r, data)
}

// ImportRemote fetches a document from a URL and imports it.
func (h *APIHandler) ImportRemote(w http.ResponseWriter, r *http.Request) {
	var req remoteImportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid url: %w", err))
		return
	}
	data, err := h.fetcher.FetchDocument(r.Context(), req.URL)
	if err != nil {
		h.log.Warn("Remote import failed", zap.String("url", req.URL), zap.Error(err))
		h.fail(w, r, http.StatusBadGateway, err)
		return
	}
	h.importData(w, r, data)
}

func (h *APIHandler) importData(w http.ResponseWriter, r *http.Request, data []byte) {
	n, err := h.journal.Import(r.Context(), data)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	render.JSON(w, r, importResponse{Imported: n})
}

func newChart(labels []string, label string, data []float64) chartResponse {
	if labels == nil {
		labels = []string{}
	}
	if data == nil {
		data = []float64{}
	}
	return chartResponse{Labels: labels, Datasets: []dataset{{Label: label, Data: data}}}
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}

// respondError maps journal errors onto status codes.
func (h *APIHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, journal.ErrTradeNotFound):
		h.fail(w, r, http.StatusNotFound, err)
	case errors.Is(err, journal.ErrInvalidTrade), errors.Is(err, journal.ErrInvalidDocument):
		h.fail(w, r, http.StatusBadRequest, err)
	default:
		h.log.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		h.fail(w, r, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}
