package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/lcosta/movienight/internal/config"
	"github.com/lcosta/movienight/internal/database"
	"github.com/lcosta/movienight/internal/random"
	"github.com/lcosta/movienight/internal/stats"
)

type MovieNightApp struct {
	log   *log.Logger
	db    database.MovieNightRepository
	rand  random.Generator
	stats stats.StatsProvider
	mux   *http.Server
}

func NewMovieNightApp(mux *http.ServeMux, logger *log.Logger, db database.MovieNightRepository, rand random.Generator, statsProvider stats.StatsProvider, cfg *config.Config) *MovieNightApp {
	s := &MovieNightApp{
		log:   logger,
		db:    db,
		rand:  rand,
		stats: statsProvider,
	}

	mux.HandleFunc("POST /rooms", s.createRoom)
	mux.HandleFunc("POST /rooms/join", s.joinRoom)
	mux.HandleFunc("POST /rooms/finish", s.finishRoom)
	mux.HandleFunc("POST /movies", s.addMovie)
	mux.HandleFunc("GET /rooms", s.getRoomState)
	mux.HandleFunc("GET /healthz", s.healthCheck)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *MovieNightApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *MovieNightApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
