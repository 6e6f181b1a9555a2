package itinerary

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voyago/logger"
	"voyago/store"
	"voyago/utils"
)

type exportRequest struct {
	ItineraryID string `json:"itineraryId"`
}

// ExportPDF handles POST /api/itinerary/export-pdf. Unlike creation there is
// no fallback here: a missing itinerary or a failed render is surfaced.
func (h *Handlers) ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItineraryID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "itineraryId is required")
		return
	}

	it, err := h.Store.GetItinerary(r.Context(), req.ItineraryID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if err != nil {
		logger.Log.Errorw("fetch itinerary for export", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch itinerary")
		return
	}

	pdfBytes, err := RenderPDF(it, h.FrontendURL)
	if err != nil {
		logger.Log.Errorw("render itinerary PDF", "itineraryId", it.ItineraryID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="itinerary-%s-%s.pdf"`, it.Destination, it.ItineraryID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
