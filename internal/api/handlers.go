package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"smart-money-lab/internal/addr"
	"smart-money-lab/internal/behavior"
	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/holders"
	"smart-money-lab/internal/liquidity"
	"smart-money-lab/internal/patterns"
	"smart-money-lab/internal/refresh"
	"smart-money-lab/internal/scoring"
	"smart-money-lab/internal/storage"
)

// handleWalletScore serves the current smart-money score for a wallet.
// Reads through the cache; on a store miss, computes the score from the
// wallet snapshot and persists it.
func (s *Server) handleWalletScore(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if err := addr.ValidateWallet(address); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	key := refresh.ScoreCacheKey(address)
	if blob, err := s.cache.Get(r.Context(), key); err == nil {
		s.recordCacheLookup("score", true)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(blob)
		return
	}
	s.recordCacheLookup("score", false)

	score, err := s.scoreStore.GetByWallet(r.Context(), address)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error().Err(err).Str("wallet", address).Msg("load score")
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		score, err = s.computeScore(r, address)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				s.writeError(w, http.StatusNotFound, "wallet not found")
				return
			}
			s.log.Error().Err(err).Str("wallet", address).Msg("compute score")
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	s.cacheAndWrite(w, r, key, score)
}

// computeScore scores a wallet on demand from its stored snapshot.
func (s *Server) computeScore(r *http.Request, address string) (*domain.SmartMoneyScore, error) {
	wallet, err := s.walletStore.GetByAddress(r.Context(), address)
	if err != nil {
		return nil, err
	}

	score := scoring.CalculateScore(*wallet)
	score.ComputedAt = time.Now().UnixMilli()

	if err := s.scoreStore.Upsert(r.Context(), &score); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordScore(score.Confidence)
	}
	return &score, nil
}

// handleWalletPatterns detects trade patterns over the wallet's history.
func (s *Server) handleWalletPatterns(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if err := addr.ValidateWallet(address); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	trades, err := s.tradeStore.GetByWallet(r.Context(), address)
	if err != nil {
		s.log.Error().Err(err).Str("wallet", address).Msg("load trades")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	deref := make([]domain.Trade, len(trades))
	for i, t := range trades {
		deref[i] = *t
	}

	detected := patterns.DetectAll(deref)
	if s.metrics != nil {
		for _, p := range detected {
			s.metrics.RecordPattern(p.Type)
		}
	}

	s.writeJSON(w, http.StatusOK, struct {
		WalletAddress string            `json:"walletAddress"`
		Patterns      []*domain.Pattern `json:"patterns"`
	}{address, detected})
}

// handleWalletBehavior computes the behavioral profile for a wallet.
func (s *Server) handleWalletBehavior(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if err := addr.ValidateWallet(address); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	trades, err := s.tradeStore.GetByWallet(r.Context(), address)
	if err != nil {
		s.log.Error().Err(err).Str("wallet", address).Msg("load trades")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	deref := make([]domain.Trade, len(trades))
	for i, t := range trades {
		deref[i] = *t
	}

	profile := behavior.Analyze(deref)
	profile.WalletAddress = address

	s.writeJSON(w, http.StatusOK, profile)
}

// handleTokenDistribution computes holder distribution for a token.
func (s *Server) handleTokenDistribution(w http.ResponseWriter, r *http.Request) {
	chain := r.PathValue("chain")
	token := r.PathValue("address")

	if err := addr.Validate(chain, token); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid token address")
		return
	}

	key := refresh.DistributionCacheKey(chain, token)
	if blob, err := s.cache.Get(r.Context(), key); err == nil {
		s.recordCacheLookup("distribution", true)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(blob)
		return
	}
	s.recordCacheLookup("distribution", false)

	holderRows, err := s.holderStore.GetByToken(r.Context(), token, chain)
	if err != nil {
		s.log.Error().Err(err).Str("token", token).Msg("load holders")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	deref := make([]domain.TokenHolder, len(holderRows))
	for i, h := range holderRows {
		deref[i] = *h
	}

	dist, err := holders.Distribution(deref)
	if err != nil {
		if errors.Is(err, holders.ErrNoHolders) {
			s.writeError(w, http.StatusBadRequest, "no holders for token")
			return
		}
		s.log.Error().Err(err).Str("token", token).Msg("compute distribution")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	dist.TokenAddress = token
	dist.Chain = chain
	dist.ComputedAt = time.Now().UnixMilli()

	if s.distSnapshots != nil {
		if err := s.distSnapshots.Insert(r.Context(), dist); err != nil {
			s.log.Warn().Err(err).Str("token", token).Msg("archive distribution snapshot")
		}
	}

	s.cacheAndWrite(w, r, key, dist)
}

// handlePoolImpact computes price impact and slippage for a trade size.
func (s *Server) handlePoolImpact(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("id")

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		s.writeError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}

	pool, err := s.poolStore.GetByID(r.Context(), poolID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "pool not found")
			return
		}
		s.log.Error().Err(err).Str("pool", poolID).Msg("load pool")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	depth, err := liquidity.Depth(*pool, amount)
	if err != nil {
		if errors.Is(err, liquidity.ErrInvalidPool) || errors.Is(err, liquidity.ErrUnknownPoolType) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Str("pool", poolID).Msg("compute depth")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, depth)
}

// positionILRequest is the POST /positions/il payload.
type positionILRequest struct {
	PositionID     string  `json:"positionId"`
	PoolID         string  `json:"poolId"`
	PoolType       string  `json:"poolType"`
	Token0Amount   float64 `json:"token0Amount"`
	Token1Amount   float64 `json:"token1Amount"`
	EntryPrice0USD float64 `json:"entryPrice0Usd"`
	EntryPrice1USD float64 `json:"entryPrice1Usd"`

	CurrentPrice0USD float64 `json:"currentPrice0Usd"`
	CurrentPrice1USD float64 `json:"currentPrice1Usd"`

	// Optional hypothetical price changes, in percent.
	ProjectionsPct []float64 `json:"projectionsPct"`
}

type positionILResponse struct {
	Result      *domain.ILResult      `json:"result"`
	Projections []domain.ILProjection `json:"projections,omitempty"`
}

// handlePositionIL computes impermanent loss for an LP position.
func (s *Server) handlePositionIL(w http.ResponseWriter, r *http.Request) {
	var req positionILRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	position := domain.LPPosition{
		PositionID:     req.PositionID,
		PoolID:         req.PoolID,
		PoolType:       req.PoolType,
		Token0Amount:   req.Token0Amount,
		Token1Amount:   req.Token1Amount,
		EntryPrice0USD: req.EntryPrice0USD,
		EntryPrice1USD: req.EntryPrice1USD,
		EntryValueUSD:  req.Token0Amount*req.EntryPrice0USD + req.Token1Amount*req.EntryPrice1USD,
	}

	result, err := liquidity.PositionIL(position, req.CurrentPrice0USD, req.CurrentPrice1USD)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := positionILResponse{Result: result}
	if len(req.ProjectionsPct) > 0 {
		projections, err := liquidity.ProjectIL(position, req.ProjectionsPct)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Projections = projections
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// cacheAndWrite stores the marshaled response under key and writes it.
func (s *Server) cacheAndWrite(w http.ResponseWriter, r *http.Request, key string, v any) {
	blob, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal response")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ttl := s.baseTTL
	if s.ttlPolicy != nil {
		ttl = s.ttlPolicy.RecommendTTL(key, s.baseTTL)
	}
	if err := s.cache.Set(r.Context(), key, blob, ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

func (s *Server) recordCacheLookup(keyClass string, hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(keyClass, hit)
	}
}
