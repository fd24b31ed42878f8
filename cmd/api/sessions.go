package main

import (
	"errors"
	"net/http"

	"github.com/farxc/folha-assistente/internal/response"
	"github.com/farxc/folha-assistente/internal/session"
	"github.com/go-chi/chi/v5"
)

type GetSessionStatsResponse = response.APIResponse[session.Stats]
type GetSessionContextResponse = response.APIResponse[session.Summary]

// @Summary		Session statistics
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	GetSessionStatsResponse
// @Router			/sessions/stats [get]
func (app *application) handleGetSessionStats(w http.ResponseWriter, r *http.Request) {
	response := &GetSessionStatsResponse{
		Success: true,
		Data:    app.chat.Sessions().Stats(),
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Session context
// @Description	Tools used, topics, employees and competencies discussed in a session.
// @Tags			Sessions
// @Produce		json
// @Param			session_id	path		string					true	"Session id"
// @Success		200			{object}	GetSessionContextResponse
// @Failure		404			{object}	response.ErrorResponse	"Session not found"
// @Router			/sessions/{session_id}/context [get]
func (app *application) handleGetSessionContext(w http.ResponseWriter, r *http.Request) {
	var names map[string]string
	if s, err := app.holder.Store(); err == nil {
		names = s.Employees()
	}

	summary, err := app.chat.Sessions().Summary(chi.URLParam(r, "session_id"), names)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := &GetSessionContextResponse{
		Success: true,
		Data:    summary,
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Delete a session
// @Tags			Sessions
// @Produce		json
// @Param			session_id	path		string	true	"Session id"
// @Success		200			{object}	response.APIResponse[any]
// @Failure		404			{object}	response.ErrorResponse	"Session not found"
// @Router			/sessions/{session_id} [delete]
func (app *application) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if !app.chat.Sessions().Delete(id) {
		writeJSONError(w, http.StatusNotFound, session.ErrNotFound.Error())
		return
	}

	response := &response.APIResponse[any]{
		Success: true,
		Message: "Session " + id + " deleted",
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
