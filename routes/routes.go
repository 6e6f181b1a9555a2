package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voyago/geocode"
	"voyago/itinerary"
	"voyago/ratelim"
	"voyago/utils"
)

// AddItineraryRoutes mounts the itinerary lifecycle endpoints.
// httprouter rejects a static "user" segment next to the ":id" wildcard, so
// GET /api/itinerary/user/:userId is registered as a two-segment wildcard
// route and dispatched by hand.
func AddItineraryRoutes(router *httprouter.Router, h *itinerary.Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/itinerary/generate", rl.Limit(h.Create))
	router.GET("/api/itinerary/:id", h.Get)
	router.GET("/api/itinerary/:id/:userId", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") != "user" {
			utils.RespondWithError(w, http.StatusNotFound, "Not found")
			return
		}
		h.List(w, r, ps)
	})
	router.POST("/api/itinerary/export-pdf", rl.Limit(h.ExportPDF))
}

// AddGeocodeRoutes mounts the batch geocoding endpoint used by the map view.
func AddGeocodeRoutes(router *httprouter.Router, g *geocode.Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/geocode/batch", rl.Limit(g.Batch))
}

// AddHealthRoutes mounts the health check.
func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/api/health", Health)
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "OK", "message": "Server is running"})
}
