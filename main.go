package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"voyago/config"
	"voyago/db"
	"voyago/genai"
	"voyago/geocode"
	"voyago/itinerary"
	"voyago/logger"
	"voyago/mq"
	"voyago/ratelim"
	"voyago/rdx"
	"voyago/routes"
	"voyago/store"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// requestLogging logs each request with a generated request id and duration.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
		logger.Log.Infow("request",
			"id", reqID,
			"method", r.Method,
			"path", r.RequestURI,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

func setupRouter(h *itinerary.Handlers, g *geocode.Handlers, rl *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	routes.AddHealthRoutes(router)
	routes.AddItineraryRoutes(router, h, rl)
	routes.AddGeocodeRoutes(router, g, rl)
	return router
}

func main() {
	// config first: a missing MONGODB_URI is a startup error, not a
	// silently degraded run
	if err := config.Init(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if err := logger.Init(config.Values.LogLevel); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	if err := db.Init(ctx, config.Values.MongoURI); err != nil {
		logger.Log.Fatalw("failed to connect to MongoDB", "err", err)
	}

	// Redis is optional; diagnostics and the geocode cache degrade to no-ops
	rdx.Init(config.Values.RedisAddr)
	defer rdx.Close()

	emitter := mq.NewRedis()
	if config.Values.GroqAPIKey == "" {
		logger.Log.Warnw("GROQ_API_KEY not set, itineraries will use the template fallback")
	}
	generator := genai.NewGroq(config.Values.GroqAPIKey, config.Values.GroqModel, emitter)

	h := itinerary.NewHandlers(store.NewMongo(), generator, emitter, config.Values.FrontendURL)
	g := geocode.NewHandlers("")
	rateLimiter := ratelim.NewRateLimiter()

	router := setupRouter(h, g, rateLimiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{config.Values.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := requestLogging(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              config.Values.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second, // generation blocks on the remote model
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		logger.Log.Infow("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalw("listen failed", "err", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Log.Infow("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatalw("graceful shutdown failed", "err", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Log.Warnw("mongo disconnect failed", "err", err)
	}

	logger.Log.Infow("server stopped")
}
