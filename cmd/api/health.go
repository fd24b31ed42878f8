package main

import (
	"errors"
	"net/http"

	"github.com/farxc/folha-assistente/internal/payroll/tabular"
)

type healthResponse struct {
	Status       string          `json:"status"`
	Version      string          `json:"version"`
	Dataset      datasetHealth   `json:"dataset"`
	Dependencies map[string]bool `json:"dependencies"`
}

type datasetHealth struct {
	Ready        bool   `json:"ready"`
	Records      int    `json:"records"`
	Employees    int    `json:"employees"`
	Competencies int    `json:"competencies"`
	Error        string `json:"error,omitempty"`
}

// @Summary		Health check
// @Description	returns the status of the service and whether the payroll dataset is loaded
// @Tags			Health
// @Produce		json
// @Success		200	{object}	healthResponse
// @Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := healthResponse{
		Status:  "available",
		Version: version,
		Dependencies: map[string]bool{
			"openai":            app.config.router.OpenAIKey != "",
			"google_search":     app.config.router.GoogleAPIKey != "" && app.config.router.GoogleEngineID != "",
			"interaction_store": app.store != nil,
		},
	}

	s, err := app.holder.Store()
	switch {
	case err == nil:
		data.Dataset = datasetHealth{
			Ready:        true,
			Records:      s.Len(),
			Employees:    len(s.Employees()),
			Competencies: len(s.Competencies()),
		}
	case errors.As(err, &tabular.NotReadyError{}):
		data.Status = "loading"
	default:
		data.Status = "degraded"
		data.Dataset.Error = err.Error()
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
