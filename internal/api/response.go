package api

import (
	"github.com/goccy/go-json"
	"github.com/maxaizer/job-market-api/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const genericErrorDetail = "Something went wrong"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Path    string          `json:"path,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Debugf("failed to write response: %v", err)
	}
}

func respondData(w http.ResponseWriter, message string, data []byte) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// respondFailure hides the error detail in production.
func respondFailure(w http.ResponseWriter, status int, message string, err error, production bool) {
	body := envelope{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
		if production {
			body.Error = genericErrorDetail
		}
	}
	respondJSON(w, status, body)
}
