package contentgeneration

import (
	"encoding/json"
	"net/http"
)

// TierStatus is one routing table row as reported by the status endpoint.
type TierStatus struct {
	Tier        string  `json:"tier"`
	Model       string  `json:"model"`
	Fallback    string  `json:"fallback_model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Provider    string  `json:"resolved_provider,omitempty"`
	Resolved    string  `json:"resolved_model,omitempty"`
	Available   bool    `json:"available"`
}

type StatusData struct {
	Module      string          `json:"module"`
	DefaultTier string          `json:"default_tier"`
	Providers   map[string]bool `json:"providers"`
	Tiers       []TierStatus    `json:"tiers"`
}

type StatusResponse struct {
	Status string     `json:"status"`
	Data   StatusData `json:"data"`
}

// handleStatus godoc
// @Summary Content generation status
// @Description Reports configured providers and how each generation tier resolves to a model.
// @Tags content-generation
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/content/status [get]
func (m *Module) handleStatus(w http.ResponseWriter, r *http.Request) {
	tiers := make([]TierStatus, 0, len(tierOrder))
	for _, tier := range tierOrder {
		choice := tierRouting[tier]
		row := TierStatus{
			Tier:        tier,
			Model:       choice.Model,
			Fallback:    choice.Fallback,
			MaxTokens:   choice.MaxTokens,
			Temperature: choice.Temperature,
		}
		if provider, model, err := m.ResolveModel(tier); err == nil {
			row.Provider = provider
			row.Resolved = model
			row.Available = true
		}
		tiers = append(tiers, row)
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status: "success",
		Data: StatusData{
			Module:      moduleName,
			DefaultTier: m.defaultTier,
			Providers:   m.providers,
			Tiers:       tiers,
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
