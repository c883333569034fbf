// Package api exposes the analytics engines over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"smart-money-lab/internal/cache"
	"smart-money-lab/internal/logger"
	"smart-money-lab/internal/observability"
	"smart-money-lab/internal/storage"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	walletStore storage.WalletStore
	tradeStore  storage.TradeStore
	holderStore storage.TokenHolderStore
	scoreStore  storage.ScoreStore
	poolStore   storage.PoolStore

	distSnapshots storage.DistributionSnapshotStore // optional archive

	cache     cache.Cache
	ttlPolicy *cache.TTLPolicy // optional
	baseTTL   time.Duration

	metrics *observability.Metrics // optional
	log     zerolog.Logger
}

// Options for creating a Server.
type Options struct {
	WalletStore storage.WalletStore
	TradeStore  storage.TradeStore
	HolderStore storage.TokenHolderStore
	ScoreStore  storage.ScoreStore
	PoolStore   storage.PoolStore

	DistributionSnapshots storage.DistributionSnapshotStore // optional, archives computed distributions

	Cache     cache.Cache      // optional, nil disables caching
	TTLPolicy *cache.TTLPolicy // optional
	BaseTTL   time.Duration    // cache TTL baseline, default 2 minutes

	Metrics *observability.Metrics // optional
}

// New creates a new Server.
func New(opts Options) *Server {
	c := opts.Cache
	if c == nil {
		c = cache.NoOp{}
	}
	baseTTL := opts.BaseTTL
	if baseTTL <= 0 {
		baseTTL = 2 * time.Minute
	}

	return &Server{
		walletStore: opts.WalletStore,
		tradeStore:  opts.TradeStore,
		holderStore: opts.HolderStore,
		scoreStore:  opts.ScoreStore,
		poolStore:   opts.PoolStore,

		distSnapshots: opts.DistributionSnapshots,

		cache:     c,
		ttlPolicy: opts.TTLPolicy,
		baseTTL:   baseTTL,
		metrics:   opts.Metrics,
		log:       logger.GetForComponent("api"),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/v1/wallets/{address}/score", s.instrument("wallet_score", s.handleWalletScore))
	mux.HandleFunc("GET /api/v1/wallets/{address}/patterns", s.instrument("wallet_patterns", s.handleWalletPatterns))
	mux.HandleFunc("GET /api/v1/wallets/{address}/behavior", s.instrument("wallet_behavior", s.handleWalletBehavior))
	mux.HandleFunc("GET /api/v1/tokens/{chain}/{address}/distribution", s.instrument("token_distribution", s.handleTokenDistribution))
	mux.HandleFunc("GET /api/v1/pools/{id}/impact", s.instrument("pool_impact", s.handlePoolImpact))
	mux.HandleFunc("POST /api/v1/positions/il", s.instrument("position_il", s.handlePositionIL))

	return mux
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		if s.metrics != nil {
			s.metrics.RecordAPIRequest(route, strconv.Itoa(rec.status), time.Since(start).Seconds())
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
