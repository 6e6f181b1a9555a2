package genai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
	"voyago/mq"
)

type stubCompleter struct {
	content string
	err     error
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

type recordingEmitter struct {
	events []string
}

func (r *recordingEmitter) Emit(_ context.Context, name string, _ map[string]string) {
	r.events = append(r.events, name)
}

func TestTripDays(t *testing.T) {
	assert.Equal(t, 3, TripDays("2025-06-01", "2025-06-03"))
	assert.Equal(t, 1, TripDays("2025-06-01", "2025-06-01"))
	assert.Equal(t, 0, TripDays("2025-06-03", "2025-06-01"))
	assert.Equal(t, 0, TripDays("not-a-date", "2025-06-01"))
}

func TestFallbackDayCountAndTemplate(t *testing.T) {
	data := Fallback("Paris", "2025-06-01", "2025-06-03")

	require.Len(t, data.Days, 3)
	assert.Equal(t, "Paris", data.Destination)

	wantOrder := []string{"City Tour", "Local Lunch", "Cultural Visit", "Dinner"}
	for i, day := range data.Days {
		assert.Equal(t, i+1, day.Day)
		assert.Contains(t, day.Title, "Paris")
		require.Len(t, day.Activities, 4)
		for j, activity := range day.Activities {
			assert.Equal(t, wantOrder[j], activity.Name)
		}
	}
}

func TestFallbackSingleDayTrip(t *testing.T) {
	data := Fallback("Tokyo", "2025-07-10", "2025-07-10")
	require.Len(t, data.Days, 1)
	assert.Equal(t, "Day 1 in Tokyo", data.Days[0].Title)
}

func TestGenerateWithoutCredentialUsesFallback(t *testing.T) {
	emitter := &recordingEmitter{}
	g := NewGroq("", "llama-3.1-8b-instant", emitter)

	data, usedFallback := g.Generate(context.Background(), "Paris", "2025-06-01", "2025-06-03", models.Preferences{})

	assert.True(t, usedFallback)
	assert.Len(t, data.Days, 3)
	assert.Equal(t, []string{mq.EventGenerationFallback}, emitter.events)
}

func TestGenerateRemoteErrorUsesFallback(t *testing.T) {
	emitter := &recordingEmitter{}
	g := &Groq{client: &stubCompleter{err: errors.New("connection refused")}, model: "m", emitter: emitter}

	data, usedFallback := g.Generate(context.Background(), "Rome", "2025-06-01", "2025-06-02", models.Preferences{})

	assert.True(t, usedFallback)
	assert.Len(t, data.Days, 2)
	assert.Equal(t, []string{mq.EventGenerationFallback}, emitter.events)
}

func TestGenerateParseFailureUsesFallback(t *testing.T) {
	emitter := &recordingEmitter{}
	g := &Groq{client: &stubCompleter{content: "Sure! Here is your itinerary:"}, model: "m", emitter: emitter}

	data, usedFallback := g.Generate(context.Background(), "Rome", "2025-06-01", "2025-06-02", models.Preferences{})

	assert.True(t, usedFallback)
	assert.Len(t, data.Days, 2)
	assert.Equal(t, []string{mq.EventGenerationFallback}, emitter.events)
}

func TestGenerateValidJSONPassesThrough(t *testing.T) {
	payload := `{"destination":"Rome","days":[{"day":1,"title":"Ancient Rome","activities":[{"name":"Colosseum","time":"09:00 AM","description":"Guided tour"}]},{"day":2,"title":"Vatican","activities":[{"name":"Museums","time":"10:00 AM","description":"Art"}]}]}`
	emitter := &recordingEmitter{}
	g := &Groq{client: &stubCompleter{content: payload}, model: "m", emitter: emitter}

	data, usedFallback := g.Generate(context.Background(), "Rome", "2025-06-01", "2025-06-02", models.Preferences{})

	assert.False(t, usedFallback)
	require.Len(t, data.Days, 2)
	assert.Equal(t, "Ancient Rome", data.Days[0].Title)
	assert.Empty(t, emitter.events)
}

func TestGenerateDayCountMismatchIsReportedNotFixed(t *testing.T) {
	// 2 requested days, model returns 1; structure is kept as returned
	payload := `{"destination":"Rome","days":[{"day":1,"title":"Only day","activities":[{"name":"Walk","time":"09:00 AM","description":"Stroll"}]}]}`
	emitter := &recordingEmitter{}
	g := &Groq{client: &stubCompleter{content: payload}, model: "m", emitter: emitter}

	data, usedFallback := g.Generate(context.Background(), "Rome", "2025-06-01", "2025-06-02", models.Preferences{})

	assert.False(t, usedFallback)
	assert.Len(t, data.Days, 1)
	assert.Equal(t, []string{mq.EventDayCountMismatch}, emitter.events)
}
