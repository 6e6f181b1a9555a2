// Package itinerary implements the itinerary lifecycle: generate, fetch,
// list, and PDF export. Handlers are methods on Handlers so tests can inject
// the in-memory store and a stub generator.
package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"

	"voyago/genai"
	"voyago/logger"
	"voyago/models"
	"voyago/mq"
	"voyago/store"
	"voyago/utils"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

type Handlers struct {
	Store       store.Store
	Gen         genai.Generator
	Emitter     mq.Emitter
	FrontendURL string
}

func NewHandlers(s store.Store, g genai.Generator, e mq.Emitter, frontendURL string) *Handlers {
	return &Handlers{Store: s, Gen: g, Emitter: e, FrontendURL: frontendURL}
}

type generateRequest struct {
	Destination string             `json:"destination" validate:"required"`
	StartDate   string             `json:"startDate" validate:"required"`
	EndDate     string             `json:"endDate" validate:"required"`
	Preferences models.Preferences `json:"preferences"`
	UserID      string             `json:"userId"`
}

// Create handles POST /api/itinerary/generate.
//
// Store failures here are absorbed: the response still carries a full
// itinerary, just with a temp_ identifier and no persistence. Availability
// over durability when the store is down.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields: destination, startDate, endDate")
		return
	}

	start, errStart := time.Parse(dateLayout, req.StartDate)
	end, errEnd := time.Parse(dateLayout, req.EndDate)
	if errStart != nil || errEnd != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD format.")
		return
	}
	if end.Before(start) {
		utils.RespondWithError(w, http.StatusBadRequest, "End date must be after start date.")
		return
	}

	user := h.resolveUser(r.Context(), req.UserID)

	data, usedFallback := h.Gen.Generate(r.Context(), req.Destination, req.StartDate, req.EndDate, req.Preferences)
	if usedFallback {
		logger.Log.Infow("itinerary generated from template", "destination", req.Destination)
	}

	it := models.Itinerary{
		ItineraryID:   utils.GenerateRandomString(13),
		UserID:        user.UserID,
		Destination:   req.Destination,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Preferences:   req.Preferences,
		ItineraryData: data,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.Store.InsertItinerary(r.Context(), it); err != nil {
		logger.Log.Warnw("store unreachable, returning itinerary without saving", "err", err)
		it.ItineraryID = "temp_" + it.ItineraryID
		h.emit(r.Context(), mq.EventPersistDegraded, map[string]string{
			"itineraryId": it.ItineraryID,
			"err":         err.Error(),
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":   true,
		"itinerary": it,
		"userId":    user.UserID,
	})
}

// resolveUser finds or creates the User for this request. When the store is
// down it falls back to an unpersisted guest identity so creation can still
// answer.
func (h *Handlers) resolveUser(ctx context.Context, userID string) models.User {
	if userID == "" {
		userID = utils.GenerateGuestID()
	}

	user, err := h.Store.UpsertUser(ctx, userID)
	if err != nil {
		logger.Log.Warnw("store unreachable, using temporary user", "userId", userID, "err", err)
		h.emit(ctx, mq.EventPersistDegraded, map[string]string{"userId": userID, "err": err.Error()})
		return models.User{UserID: userID, Name: "Guest User", CreatedAt: time.Now().UTC()}
	}
	return user
}

// Get handles GET /api/itinerary/:id.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := h.Store.GetItinerary(r.Context(), ps.ByName("id"))
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if err != nil {
		logger.Log.Errorw("fetch itinerary", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "itinerary": it})
}

// List handles GET /api/itinerary/user/:userId. Activity locations are
// stripped by the store, newest itinerary first.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraries, err := h.Store.ListByUser(r.Context(), ps.ByName("userId"))
	if err != nil {
		logger.Log.Errorw("list itineraries", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch itineraries")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "itineraries": itineraries})
}

func (h *Handlers) emit(ctx context.Context, name string, fields map[string]string) {
	if h.Emitter != nil {
		h.Emitter.Emit(ctx, name, fields)
	}
}
