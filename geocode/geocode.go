// Package geocode resolves free-text place queries against a Nominatim-style
// geocoding service. Lookups for a batch run with bounded concurrency and
// per-item failure isolation: a query that cannot be resolved comes back with
// found=false instead of failing the batch.
package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/julienschmidt/httprouter"

	"voyago/logger"
	"voyago/rdx"
	"voyago/utils"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "voyago-travel-planner"

	// keep well under the public endpoint's tolerance
	maxConcurrent = 4
	maxBatchSize  = 100

	cacheTTL = 24 * time.Hour
)

type Handlers struct {
	client  *resty.Client
	baseURL string
}

// NewHandlers builds the geocode handlers. baseURL overrides the public
// Nominatim endpoint; pass "" for the default.
func NewHandlers(baseURL string) *Handlers {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", userAgent)
	return &Handlers{client: client, baseURL: baseURL}
}

type batchRequest struct {
	Queries []string `json:"queries"`
}

type Result struct {
	Query   string  `json:"query"`
	Found   bool    `json:"found"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
	Address string  `json:"address,omitempty"`
}

// Batch handles POST /api/geocode/batch.
func (h *Handlers) Batch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Queries) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "queries is required")
		return
	}
	if len(req.Queries) > maxBatchSize {
		utils.RespondWithError(w, http.StatusBadRequest, "too many queries in one batch")
		return
	}

	results := h.Lookup(r.Context(), req.Queries)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "results": results})
}

// Lookup resolves all queries, at most maxConcurrent in flight at once.
// Results keep the order of the input queries.
func (h *Handlers) Lookup(ctx context.Context, queries []string) []Result {
	results := make([]Result, len(queries))
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = h.lookupOne(ctx, q)
		}(i, q)
	}
	wg.Wait()

	return results
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (h *Handlers) lookupOne(ctx context.Context, query string) Result {
	if cached, ok := cacheGet(ctx, query); ok {
		return cached
	}

	var hits []nominatimResult
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"q":      query,
			"limit":  "1",
		}).
		SetResult(&hits).
		Get(h.baseURL + "/search")
	if err != nil || resp.IsError() || len(hits) == 0 {
		logger.Log.Debugw("geocode miss", "query", query, "err", err)
		return Result{Query: query}
	}

	lat, errLat := strconv.ParseFloat(hits[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(hits[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return Result{Query: query}
	}

	result := Result{Query: query, Found: true, Lat: lat, Lng: lng, Address: hits[0].DisplayName}
	cacheSet(ctx, query, result)
	return result
}

func cacheGet(ctx context.Context, query string) (Result, bool) {
	if !rdx.Available() {
		return Result{}, false
	}
	raw, err := rdx.Conn.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return Result{}, false
	}
	var r Result
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Result{}, false
	}
	return r, true
}

func cacheSet(ctx context.Context, query string, r Result) {
	if !rdx.Available() {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := rdx.Conn.Set(ctx, cacheKey(query), data, cacheTTL).Err(); err != nil {
		logger.Log.Debugw("geocode cache write failed", "query", query, "err", err)
	}
}

func cacheKey(query string) string {
	return "geocode:" + query
}
