// Package genai produces the day-by-day itinerary. The real generator talks
// to Groq's OpenAI-compatible chat-completions API; every failure on that
// path (missing credential, network error, non-JSON completion) is absorbed
// into the deterministic template fallback so generation never hard-fails.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"voyago/logger"
	"voyago/models"
	"voyago/mq"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Generator returns a structurally valid plan for the given trip. The bool
// reports whether the template fallback was used.
type Generator interface {
	Generate(ctx context.Context, destination, startDate, endDate string, prefs models.Preferences) (models.ItineraryData, bool)
}

// completionClient is the slice of the go-openai client the generator needs.
// Tests substitute a stub here.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Groq generates itineraries via the llama models hosted on Groq.
type Groq struct {
	client  completionClient
	model   string
	emitter mq.Emitter
}

// NewGroq builds a generator. An empty apiKey leaves the client nil, which
// routes every call straight to the fallback.
func NewGroq(apiKey, model string, emitter mq.Emitter) *Groq {
	g := &Groq{model: model, emitter: emitter}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = groqBaseURL
		g.client = openai.NewClientWithConfig(cfg)
	}
	return g
}

func (g *Groq) Generate(ctx context.Context, destination, startDate, endDate string, prefs models.Preferences) (models.ItineraryData, bool) {
	if g.client == nil {
		g.emit(ctx, "no credential", destination)
		return Fallback(destination, startDate, endDate), true
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(destination, startDate, endDate, prefs)},
		},
		Temperature: 0.6,
	})
	if err != nil {
		logger.Log.Warnw("generation call failed, using template", "destination", destination, "err", err)
		g.emit(ctx, err.Error(), destination)
		return Fallback(destination, startDate, endDate), true
	}
	if len(resp.Choices) == 0 {
		g.emit(ctx, "empty completion", destination)
		return Fallback(destination, startDate, endDate), true
	}

	var data models.ItineraryData
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		logger.Log.Warnw("completion was not valid itinerary JSON, using template", "destination", destination, "err", err)
		g.emit(ctx, "parse: "+err.Error(), destination)
		return Fallback(destination, startDate, endDate), true
	}
	if len(data.Days) == 0 {
		g.emit(ctx, "completion had no days", destination)
		return Fallback(destination, startDate, endDate), true
	}

	if want := TripDays(startDate, endDate); want > 0 && len(data.Days) != want {
		// the structure is kept as returned; the mismatch is only reported
		logger.Log.Warnw("generated day count differs from requested range",
			"destination", destination, "want", want, "got", len(data.Days))
		if g.emitter != nil {
			g.emitter.Emit(ctx, mq.EventDayCountMismatch, map[string]string{
				"destination": destination,
				"want":        fmt.Sprint(want),
				"got":         fmt.Sprint(len(data.Days)),
			})
		}
	}

	return data, false
}

func (g *Groq) emit(ctx context.Context, reason, destination string) {
	if g.emitter == nil {
		return
	}
	g.emitter.Emit(ctx, mq.EventGenerationFallback, map[string]string{
		"destination": destination,
		"reason":      reason,
	})
}

func buildPrompt(destination, startDate, endDate string, prefs models.Preferences) string {
	days := TripDays(startDate, endDate)

	budget := prefs.Budget
	if budget == "" {
		budget = "Not specified"
	}
	interests := strings.Join(prefs.Interests, ", ")
	if interests == "" {
		interests = "General"
	}

	return fmt.Sprintf(`Generate a travel itinerary.
Return ONLY valid JSON. No markdown.

Destination: %s
Dates: %s to %s (%d days)
Budget: %s
Interests: %s

JSON FORMAT:
{
  "destination": "%s",
  "days": [
    {
      "day": 1,
      "title": "Day 1 title",
      "activities": [
        {
          "name": "Activity name",
          "time": "09:00 AM",
          "description": "Details"
        }
      ]
    }
  ]
}
`, destination, startDate, endDate, days, budget, interests, destination)
}

// TripDays returns the whole-day length of the trip, end inclusive, or 0 when
// either date fails to parse as YYYY-MM-DD.
func TripDays(startDate, endDate string) int {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
