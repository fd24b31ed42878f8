package main

import (
	"net/http"

	"github.com/farxc/folha-assistente/internal/response"
	"github.com/farxc/folha-assistente/internal/store"
)

type GetInteractionHistoryResponse = response.APIResponse[[]store.Interaction]

// @Summary		Get interaction history
// @Description	Latest answered questions with their tool and reason.
// @Tags			Interactions
// @Produce		json
// @Param			limit	query		int								false	"Limit the number of results"	default(20)
// @Success		200		{object}	GetInteractionHistoryResponse
// @Failure		500		{object}	response.ErrorResponse			"Failed to get interaction history"
// @Failure		503		{object}	response.ErrorResponse			"Interaction history disabled"
// @Router			/interactions/history [get]
func (app *application) handleGetInteractionHistory(w http.ResponseWriter, r *http.Request) {
	if app.store == nil {
		writeJSONErrorReason(w, http.StatusServiceUnavailable, "interaction history is not configured", "db_disabled")
		return
	}

	limit := parseLimit(r, 20)
	data, err := app.store.Interactions.GetLatest(r.Context(), limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get interaction history: "+err.Error())
		return
	}

	response := &GetInteractionHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest interactions",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
