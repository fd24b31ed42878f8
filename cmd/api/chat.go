package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farxc/folha-assistente/internal/chat"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/go-chi/chi/v5"
)

type chatRequest struct {
	Message string `json:"message"`
}

// @Summary		Ask a question
// @Description	Routes the message to the payroll data, external sources or small talk. The session id in the path is optional.
// @Tags			Chat
// @Accept			json
// @Produce		json
// @Param			session_id	path		string					false	"Session id"
// @Param			request		body		chatRequest				true	"Question"
// @Success		200			{object}	chat.Reply				"Answer with evidence, tool_used and reason"
// @Failure		400			{object}	response.ErrorResponse	"Invalid request payload"
// @Failure		503			{object}	chat.Reply				"Payroll dataset still loading"
// @Router			/chat/{session_id} [post]
func (app *application) handleChat(w http.ResponseWriter, r *http.Request) {
	const component = "ChatHandler"

	var input chatRequest
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := app.chat.Ask(r.Context(), chi.URLParam(r, "session_id"), input.Message)
	if err != nil {
		if errors.As(err, &tabular.NotReadyError{}) {
			w.Header().Set("Retry-After", retryAfter)
			writeJSON(w, http.StatusServiceUnavailable, reply)
			return
		}
		if errors.Is(err, chat.ErrEmptyMessage) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		app.logger.Error(component, "Chat failed: error=%v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to answer the question")
		return
	}

	if err := writeJSON(w, http.StatusOK, reply); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
