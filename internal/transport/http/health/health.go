package health

import (
	"net/http"
	"time"

	"github.com/corray333/backend-labs/notify/pkg/http/response"
)

// Version is reported by the health endpoint.
var Version = "1.0.0"

// healthResponse represents the health check response
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles health check requests
func Health(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}
