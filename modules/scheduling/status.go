package scheduling

import (
	"encoding/json"
	"net/http"
	"time"
)

// JobStatus is one maintenance catalog row.
type JobStatus struct {
	Name     string `json:"name"`
	Interval string `json:"interval"`
}

type StatusData struct {
	Module      string      `json:"module"`
	Timezone    string      `json:"timezone"`
	LocalTime   string      `json:"local_time"`
	MaxPosts    int         `json:"max_scheduled_posts"`
	Maintenance []JobStatus `json:"maintenance_jobs"`
}

type StatusResponse struct {
	Status string     `json:"status"`
	Data   StatusData `json:"data"`
}

// handleStatus godoc
// @Summary Scheduling status
// @Description Reports the scheduling timezone, post limits and the periodic maintenance catalog.
// @Tags scheduling
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/scheduling/status [get]
func (m *Module) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobs := make([]JobStatus, 0, len(maintenanceJobs))
	for _, job := range maintenanceJobs {
		jobs = append(jobs, JobStatus{Name: job.Name, Interval: job.Interval.String()})
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status: "success",
		Data: StatusData{
			Module:      moduleName,
			Timezone:    m.location.String(),
			LocalTime:   time.Now().In(m.location).Format(time.RFC3339),
			MaxPosts:    m.deps.MaxPosts,
			Maintenance: jobs,
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
