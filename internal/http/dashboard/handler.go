package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
	"github.com/MrJamesThe3rd/gigdash/internal/chart"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
	"github.com/MrJamesThe3rd/gigdash/internal/importer"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

const maxUploadSize = 10 << 20

// Defaults fill in query parameters the client leaves out.
type Defaults struct {
	ItemIDs    []string
	Lookback   time.Duration
	IncomeGoal decimal.Decimal
}

type Handler struct {
	svc      *dashboard.Service
	importer *importer.Service
	defaults Defaults
	now      func() time.Time
}

func NewHandler(svc *dashboard.Service, importer *importer.Service, defaults Defaults) *Handler {
	return &Handler{
		svc:      svc,
		importer: importer,
		defaults: defaults,
		now:      time.Now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.build)
	r.Get("/", h.load)
	r.Post("/upload", h.upload)
}

// build renders a dashboard from the records in the request body.
func (h *Handler) build(w http.ResponseWriter, r *http.Request) {
	opts, tf, ok := h.viewOptions(w, r)
	if !ok {
		return
	}

	records, err := h.importer.Import(importer.FormatJSON, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.render(w, r, records, tf, opts)
}

// upload renders a dashboard from an export file sent as multipart form
// field "file". The format comes from field "format" or the file name.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	opts, tf, ok := h.viewOptions(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatFromPath(header.Filename)
	}

	records, err := h.importer.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.render(w, r, records, tf, opts)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, records []transaction.Record, tf aggregate.Timeframe, opts viewOptions) {
	txs, dropped := transaction.NormalizeReport(records)
	if dropped > 0 {
		slog.WarnContext(r.Context(), "dropped malformed transactions", "dropped", dropped, "kept", len(txs))
	}

	txs = aggregate.FilterTimeframe(txs, tf, opts.now)

	h.respond(w, toResponse(h.svc.Build(r.Context(), txs), opts))
}

// load fetches a batch from the aggregator and renders its dashboard. A
// timeframe other than all narrows the fetch window unless explicit dates
// are given.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	opts, tf, ok := h.viewOptions(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	params := transaction.FetchParams{
		ItemIDs:   q["item_id"],
		StartDate: opts.now.Add(-h.defaults.Lookback),
		EndDate:   opts.now,
	}

	if tf != aggregate.TimeframeAll {
		params.StartDate, params.EndDate = tf.Range(opts.now)
	}

	if len(params.ItemIDs) == 0 {
		params.ItemIDs = h.defaults.ItemIDs
	}

	if len(params.ItemIDs) == 0 {
		http.Error(w, "item_id is required", http.StatusBadRequest)
		return
	}

	for _, p := range []struct {
		key string
		dst *time.Time
	}{
		{"start_date", &params.StartDate},
		{"end_date", &params.EndDate},
	} {
		s := q.Get(p.key)
		if s == "" {
			continue
		}

		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid "+p.key, http.StatusBadRequest)
			return
		}

		*p.dst = t
	}

	if params.EndDate.Before(params.StartDate) {
		http.Error(w, "end_date is before start_date", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Load(r.Context(), params)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load dashboard", "error", err)
		http.Error(w, "failed to fetch transactions", http.StatusBadGateway)

		return
	}

	h.respond(w, toResponse(d, opts))
}

func (h *Handler) viewOptions(w http.ResponseWriter, r *http.Request) (viewOptions, aggregate.Timeframe, bool) {
	q := r.URL.Query()
	now := h.now().UTC()

	opts := viewOptions{
		metric: chart.ParseMetric(q.Get("metric")),
		goal:   h.defaults.IncomeGoal,
		now:    now,
	}

	opts.trendStart, opts.trendEnd = chart.HeatmapWindow(now)

	tf := aggregate.TimeframeAll

	if s := q.Get("timeframe"); s != "" {
		switch parsed := aggregate.Timeframe(s); parsed {
		case aggregate.TimeframeWeek, aggregate.TimeframeMonth, aggregate.TimeframeAll:
			tf = parsed
		default:
			http.Error(w, "invalid timeframe", http.StatusBadRequest)
			return viewOptions{}, "", false
		}
	}

	if tf != aggregate.TimeframeAll {
		opts.trendStart, opts.trendEnd = tf.Range(now)
	}

	if s := q.Get("goal"); s != "" {
		goal, err := decimal.NewFromString(s)
		if err != nil {
			http.Error(w, "invalid goal", http.StatusBadRequest)
			return viewOptions{}, "", false
		}

		opts.goal = goal
	}

	return opts, tf, true
}

func (h *Handler) respond(w http.ResponseWriter, resp dashboardResponse) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
