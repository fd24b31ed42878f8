package main

import (
	"net/http"

	"github.com/farxc/folha-assistente/internal/intent"
	"github.com/farxc/folha-assistente/internal/response"
)

type GetExamplesResponse = response.APIResponse[map[intent.Tool][]string]

// @Summary		Sample questions
// @Tags			Chat
// @Produce		json
// @Success		200	{object}	GetExamplesResponse
// @Router			/examples [get]
func (app *application) handleGetExamples(w http.ResponseWriter, r *http.Request) {
	response := &GetExamplesResponse{
		Success: true,
		Data:    intent.Examples(),
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
