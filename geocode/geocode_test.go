package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNominatim answers /search like the public endpoint. Queries containing
// "nowhere" get an empty result set; queries containing "boom" get a 500.
func fakeNominatim(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query().Get("q")

		switch {
		case strings.Contains(q, "boom"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.Contains(q, "nowhere"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522","display_name":"Paris, France"}]`))
		}
	}))
}

func TestLookupBatchOrderAndIsolation(t *testing.T) {
	srv := fakeNominatim(t)
	defer srv.Close()
	h := NewHandlers(srv.URL)

	results := h.Lookup(context.Background(), []string{
		"Eiffel Tower, Paris",
		"nowhere at all",
		"boom",
		"Louvre, Paris",
	})

	require.Len(t, results, 4)
	assert.Equal(t, "Eiffel Tower, Paris", results[0].Query)
	assert.True(t, results[0].Found)
	assert.InDelta(t, 48.8566, results[0].Lat, 0.0001)
	assert.InDelta(t, 2.3522, results[0].Lng, 0.0001)
	assert.Equal(t, "Paris, France", results[0].Address)

	// failed lookups are isolated, not fatal
	assert.False(t, results[1].Found)
	assert.False(t, results[2].Found)
	assert.True(t, results[3].Found)
}

func TestBatchHandler(t *testing.T) {
	srv := fakeNominatim(t)
	defer srv.Close()
	h := NewHandlers(srv.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/geocode/batch",
		strings.NewReader(`{"queries":["Paris","nowhere"]}`))
	rec := httptest.NewRecorder()
	h.Batch(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool     `json:"success"`
		Results []Result `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Found)
	assert.False(t, resp.Results[1].Found)
}

func TestBatchHandlerRejectsEmptyAndOversized(t *testing.T) {
	h := NewHandlers("http://unused.invalid")

	for name, body := range map[string]string{
		"empty queries": `{"queries":[]}`,
		"no body":       ``,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/geocode/batch", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.Batch(rec, req, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("oversized batch", func(t *testing.T) {
		queries := make([]string, maxBatchSize+1)
		for i := range queries {
			queries[i] = "q"
		}
		body, err := json.Marshal(map[string][]string{"queries": queries})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/geocode/batch", strings.NewReader(string(body)))
		rec := httptest.NewRecorder()
		h.Batch(rec, req, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
