package bankd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mks/bankboard/internal/api"
	"github.com/mks/bankboard/internal/transfer"
)

// Config holds server configuration.
type Config struct {
	Log  zerolog.Logger
	Bank *Bank
	Port int
}

// Server exposes the bank over HTTP.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	bank   *Bank
}

// New wires the routes. CORS is wide open: the server also backs the web
// dashboard during development.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		bank:   cfg.Bank,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	s.router.Get("/user", s.handleUser)
	s.router.Get("/users", s.handleUsers)
	s.router.Get("/news", s.handleNews)
	s.router.Get("/stocks", s.handleStocks)
	s.router.Post("/transfer", s.handleTransfer)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}
	return s
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler { return s.router }

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("bank server listening")
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handlers

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	bal, ok := s.bank.Balance(username)
	if !ok {
		s.writeJSON(w, api.UserState{OK: false})
		return
	}
	s.writeJSON(w, api.UserState{
		OK:         true,
		Balance:    json.Number(strconv.Itoa(bal)),
		TimeString: s.bank.TimeString(),
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, api.Roster{OK: true, Users: s.bank.Players()})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	items := make([]api.NewsItem, 0, limit)
	for _, h := range s.bank.Headlines(limit) {
		items = append(items, api.NewsItem{Headline: h})
	}
	s.writeJSON(w, api.News{OK: true, Items: items})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, api.StockList{OK: true, Stocks: s.bank.market.Quotes()})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transfer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, api.TransferResult{OK: false, Error: "Malformed request."})
		return
	}

	txnID := uuid.NewString()
	newBalance, rejection := s.bank.Transfer(req.From, req.To, req.Amount)
	if rejection != "" {
		s.log.Warn().
			Str("txn_id", txnID).
			Str("from", req.From).
			Str("to", req.To).
			Int("amount", req.Amount).
			Str("reason", rejection).
			Msg("transfer rejected")
		s.writeJSON(w, api.TransferResult{OK: false, Error: rejection})
		return
	}

	s.log.Info().
		Str("txn_id", txnID).
		Str("from", req.From).
		Str("to", req.To).
		Int("amount", req.Amount).
		Int("from_balance", newBalance).
		Msg("transfer complete")
	s.writeJSON(w, api.TransferResult{
		OK:          true,
		FromBalance: json.Number(strconv.Itoa(newBalance)),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}
