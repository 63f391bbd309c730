// Package http exposes the JSON API: account management, expense CRUD,
// wallet and category maintenance, dashboard aggregations, CSV export and a
// websocket change feed.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/auth"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/export"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/middleware/ratelimit"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/middleware/trace"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/services"
)

type Server struct {
	http.Server

	authenticator *auth.PasswordAuthenticator
	tokens        *auth.JWTManager
	expenses      *services.ExpenseService
	wallets       *services.WalletService
	categories    *services.CategoryService
	hub           *events.Hub
	sheets        *export.SheetsClient
	limiter       *ratelimit.Limiter
	ws            *wsBridge

	// Cached dashboard aggregations, invalidated on every expense write.
	statsCache *lruCache[core.MonthStats]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// Deps bundles everything the server routes to.
type Deps struct {
	Authenticator *auth.PasswordAuthenticator
	Tokens        *auth.JWTManager
	Expenses      *services.ExpenseService
	Wallets       *services.WalletService
	Categories    *services.CategoryService
	Hub           *events.Hub
	Sheets        *export.SheetsClient // optional
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		authenticator:    deps.Authenticator,
		tokens:           deps.Tokens,
		expenses:         deps.Expenses,
		wallets:          deps.Wallets,
		categories:       deps.Categories,
		hub:              deps.Hub,
		sheets:           deps.Sheets,
		limiter:          ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		statsCache:       newLRUCache[core.MonthStats](200, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}
	s.ws = newWSBridge(deps.Hub)

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("PUT /api/password", s.requireAuth(s.handleChangePassword))

	mux.HandleFunc("GET /api/expenses", s.requireAuth(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.requireAuth(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/export", s.requireAuth(s.handleExportExpenses))
	mux.HandleFunc("GET /api/expenses/{id}", s.requireAuth(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.requireAuth(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.requireAuth(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))
	mux.HandleFunc("GET /api/chart", s.requireAuth(s.handleChart))

	mux.HandleFunc("GET /api/wallet", s.requireAuth(s.handleGetWallet))
	mux.HandleFunc("PUT /api/wallet/balance", s.requireAuth(s.handleSetBalance))
	mux.HandleFunc("POST /api/wallet/sync", s.requireAuth(s.handleSyncBalance))
	mux.HandleFunc("POST /api/wallet/denominations", s.requireAuth(s.handleAddDenomination))
	mux.HandleFunc("PUT /api/wallet/denominations/{id}", s.requireAuth(s.handleEditDenomination))
	mux.HandleFunc("DELETE /api/wallet/denominations/{id}", s.requireAuth(s.handleRemoveDenomination))

	mux.HandleFunc("GET /api/incomes", s.requireAuth(s.handleListIncomes))
	mux.HandleFunc("POST /api/incomes", s.requireAuth(s.handleAddIncome))

	mux.HandleFunc("GET /api/categories", s.requireAuth(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.requireAuth(s.handleAddCategory))
	mux.HandleFunc("PUT /api/categories/{name}", s.requireAuth(s.handleRenameCategory))
	mux.HandleFunc("DELETE /api/categories/{name}", s.requireAuth(s.handleRemoveCategory))

	mux.HandleFunc("GET /api/ws", s.requireAuth(s.handleWS))

	s.Server.Handler = trace.Middleware(clientIP)(
		s.limiter.Middleware(clientIP)(
			withMetrics(mux)))

	return s
}

// clientIP extracts the caller address, honoring common proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.statsCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops background goroutines, closes websocket sessions and then
// drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		s.ws.Close()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func statsCacheKey(ownerID, monthKey string) string {
	return ownerID + "|" + monthKey
}

// invalidateStats drops every cached month for the owner. Writes are rare
// relative to dashboard reads, so the broad invalidation keeps things simple.
func (s *Server) invalidateStats(ownerID string) {
	s.statsCache.DeletePrefix(ownerID + "|")
}
