package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"contentagent/modules/contentdiscovery/application"
	"contentagent/modules/contentdiscovery/domain/entities"
	domainerrors "contentagent/modules/contentdiscovery/domain/errors"
	httptransport "contentagent/modules/contentdiscovery/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// Register mounts the module's REST routes.
func (h Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/discovery/analyze", h.handleAnalyze)
	mux.HandleFunc("GET /api/discovery/trending", h.handleTrending)
}

// handleAnalyze godoc
// @Summary Analyze a site's published content
// @Description Locates the site's feed or sitemap and profiles its topics, content gaps, and recent items.
// @Tags content-discovery
// @Accept json
// @Produce json
// @Param request body httptransport.AnalyzeRequest true "Site or feed URL"
// @Success 200 {object} httptransport.AnalysisResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 504 {object} httptransport.ErrorResponse
// @Router /api/discovery/analyze [post]
func (h Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeDiscoveryError(w, http.StatusBadRequest, "invalid_request", "unable to read request body")
		return
	}
	var req httptransport.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeDiscoveryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	analysis, err := h.Service.AnalyzeSite(r.Context(), req.Target)
	if err != nil {
		writeDiscoveryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, httptransport.AnalysisResponse{
		Status: "success",
		Data:   analysisData(analysis),
	})
}

// handleTrending godoc
// @Summary Trending topics
// @Description Returns topics ranked by how often they were observed across analyses and keyword events.
// @Tags content-discovery
// @Produce json
// @Param limit query int false "Maximum topics (default 10)"
// @Success 200 {object} httptransport.TrendingResponse
// @Router /api/discovery/trending [get]
func (h Handler) handleTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := h.Service.TrendingTopics(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeDiscoveryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, httptransport.TrendingResponse{
		Status: "success",
		Data:   httptransport.TrendingData{Topics: topicItems(trending)},
	})
}

func analysisData(analysis entities.Analysis) httptransport.AnalysisData {
	items := make([]httptransport.FeedItem, 0, len(analysis.RecentItems))
	for _, item := range analysis.RecentItems {
		entry := httptransport.FeedItem{Title: item.Title, Link: item.Link}
		if !item.Published.IsZero() {
			entry.Published = item.Published.UTC().Format(time.RFC3339)
		}
		items = append(items, entry)
	}
	return httptransport.AnalysisData{
		Site:        analysis.Site,
		FeedURL:     analysis.FeedURL,
		FeedKind:    analysis.FeedKind,
		ItemCount:   analysis.ItemCount,
		Topics:      topicItems(analysis.Topics),
		ContentGaps: analysis.ContentGaps,
		RecentItems: items,
		AnalyzedAt:  analysis.AnalyzedAt.UTC().Format(time.RFC3339),
	}
}

func topicItems(topics []entities.TopicCount) []httptransport.TopicItem {
	items := make([]httptransport.TopicItem, 0, len(topics))
	for _, topic := range topics {
		items = append(items, httptransport.TopicItem{Topic: topic.Topic, Count: topic.Count})
	}
	return items
}

func writeDiscoveryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, httptransport.ErrorResponse{Code: code, Message: message})
}

func writeDiscoveryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidTarget):
		writeDiscoveryError(w, http.StatusBadRequest, "invalid_target", err.Error())
	case errors.Is(err, domainerrors.ErrNoFeed):
		writeDiscoveryError(w, http.StatusNotFound, "feed_not_found", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeDiscoveryError(w, http.StatusGatewayTimeout, "site_timeout", "site took too long to respond")
	default:
		writeDiscoveryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
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
