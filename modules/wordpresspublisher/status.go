package wordpresspublisher

import (
	"encoding/json"
	"net/http"
)

type StatusData struct {
	Module          string `json:"module"`
	Site            string `json:"site"`
	APIBase         string `json:"api_base"`
	Username        string `json:"username"`
	PublishRequests int64  `json:"publish_requests_received"`
}

type StatusResponse struct {
	Status string     `json:"status"`
	Data   StatusData `json:"data"`
}

// handleStatus godoc
// @Summary WordPress publisher status
// @Description Reports the connected site and publish demand received from the scheduler.
// @Tags wordpress
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/wordpress/status [get]
func (m *Module) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status: "success",
		Data: StatusData{
			Module:          moduleName,
			Site:            m.site.Host,
			APIBase:         m.site.JoinPath("wp-json", "wp", "v2").String(),
			Username:        m.deps.Username,
			PublishRequests: m.publishRequests.Load(),
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
