package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"contentagent/modules/keywordresearch/application"
	"contentagent/modules/keywordresearch/domain/entities"
	domainerrors "contentagent/modules/keywordresearch/domain/errors"
	httptransport "contentagent/modules/keywordresearch/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// Register mounts the module's REST routes.
func (h Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/keywords/research", h.handleResearch)
	mux.HandleFunc("GET /api/keywords/suggestions/{keyword}", h.handleSuggestions)
	mux.HandleFunc("GET /api/keywords/trending", h.handleTrending)
	mux.HandleFunc("GET /api/keywords/history", h.handleHistory)
}

// handleResearch godoc
// @Summary Research a keyword
// @Description Runs the full research pipeline across all providers and returns the merged analysis.
// @Tags keyword-research
// @Accept json
// @Produce json
// @Param request body httptransport.ResearchRequest true "Keyword to research"
// @Success 200 {object} httptransport.ResearchResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 429 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /api/keywords/research [post]
func (h Handler) handleResearch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeKeywordError(w, http.StatusBadRequest, "invalid_request", "unable to read request body")
		return
	}
	var req httptransport.ResearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeKeywordError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	research, err := h.Service.Research(r.Context(), application.ResearchRequest{Keyword: req.Keyword})
	if err != nil {
		writeKeywordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, httptransport.ResearchResponse{
		Status: "success",
		Data:   researchData(research),
	})
}

// handleSuggestions godoc
// @Summary Keyword suggestions
// @Description Returns auto-complete candidates for a keyword.
// @Tags keyword-research
// @Produce json
// @Param keyword path string true "Seed keyword"
// @Param limit query int false "Maximum suggestions (default 10)"
// @Success 200 {object} httptransport.SuggestionsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/keywords/suggestions/{keyword} [get]
func (h Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	suggestions, err := h.Service.Suggestions(r.Context(), keyword, queryInt(r, "limit"))
	if err != nil {
		writeKeywordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, httptransport.SuggestionsResponse{
		Status: "success",
		Data: httptransport.SuggestionsData{
			Keyword:     keyword,
			Suggestions: suggestions,
		},
	})
}

// handleTrending godoc
// @Summary Trending keywords
// @Description Returns trending keywords, optionally filtered by category.
// @Tags keyword-research
// @Produce json
// @Param category query string false "Category filter"
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {object} httptransport.TrendingResponse
// @Router /api/keywords/trending [get]
func (h Handler) handleTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := h.Service.TrendingKeywords(r.Context(), r.URL.Query().Get("category"), queryInt(r, "limit"))
	if err != nil {
		writeKeywordDomainError(w, err)
		return
	}

	items := make([]httptransport.TrendingItem, 0, len(trending))
	for _, item := range trending {
		items = append(items, httptransport.TrendingItem{
			Keyword:    item.Keyword,
			TrendScore: item.TrendScore,
		})
	}
	writeJSON(w, http.StatusOK, httptransport.TrendingResponse{
		Status: "success",
		Data:   httptransport.TrendingData{TrendingKeywords: items},
	})
}

// handleHistory godoc
// @Summary Research history
// @Description Returns persisted research runs, newest first.
// @Tags keyword-research
// @Produce json
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} httptransport.HistoryResponse
// @Router /api/keywords/history [get]
func (h Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.History(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeKeywordDomainError(w, err)
		return
	}

	items := make([]httptransport.HistoryItem, 0, len(history))
	for _, item := range history {
		items = append(items, httptransport.HistoryItem{
			ID:               item.ID,
			Keyword:          item.Keyword,
			SearchVolume:     item.SearchVolume,
			CompetitionLevel: item.CompetitionLevel,
			OpportunityScore: item.OpportunityScore,
			CreatedAt:        item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, httptransport.HistoryResponse{
		Status: "success",
		Data: httptransport.HistoryData{
			History: items,
			Total:   len(items),
		},
	})
}

func researchData(research entities.Research) httptransport.ResearchData {
	competitors := make([]httptransport.CompetitorItem, 0, len(research.TopCompetitors))
	for _, competitor := range research.TopCompetitors {
		competitors = append(competitors, httptransport.CompetitorItem{
			Position:        competitor.Position,
			Title:           competitor.Title,
			URL:             competitor.URL,
			Domain:          competitor.Domain,
			DomainAuthority: competitor.DomainAuthority,
		})
	}
	return httptransport.ResearchData{
		Keyword:             research.Keyword,
		ResearchDate:        research.ResearchedAt.UTC().Format(time.RFC3339),
		SearchVolume:        research.SearchVolume,
		TrendingScore:       research.TrendingScore,
		CompetitionLevel:    research.CompetitionLevel,
		DifficultyScore:     research.DifficultyScore,
		OpportunityScore:    research.OpportunityScore,
		RecommendedStrategy: research.RecommendedStrategy,
		RelatedKeywords:     research.RelatedKeywords,
		LongTailKeywords:    research.LongTailKeywords,
		CompetitorKeywords:  research.CompetitorKeywords,
		ContentGaps:         research.ContentGaps,
		SerpFeatures:        research.SERPFeatures,
		TopCompetitors:      competitors,
	}
}

func writeKeywordError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, httptransport.ErrorResponse{Code: code, Message: message})
}

func writeKeywordDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidKeyword):
		writeKeywordError(w, http.StatusBadRequest, "invalid_keyword", err.Error())
	case errors.Is(err, domainerrors.ErrNotFound):
		writeKeywordError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrRateLimited):
		writeKeywordError(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.Is(err, domainerrors.ErrAllProvidersFailed):
		writeKeywordError(w, http.StatusBadGateway, "providers_unavailable", err.Error())
	default:
		writeKeywordError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}
