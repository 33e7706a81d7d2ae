package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"userdesk/internal/server/models"
	"userdesk/internal/server/repository"
	"userdesk/internal/server/service"
)

func (r *Router) handleListUsers(w http.ResponseWriter, req *http.Request) {
	users, err := r.services.Users.List(req.Context())
	if err != nil {
		r.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (r *Router) handleGetUser(w http.ResponseWriter, req *http.Request) {
	id, ok := userID(w, req)
	if !ok {
		return
	}
	u, err := r.services.Users.Get(req.Context(), id)
	if err != nil {
		r.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (r *Router) handleCreateUser(w http.ResponseWriter, req *http.Request) {
	in, ok := r.decodeInput(w, req)
	if !ok {
		return
	}
	u, err := r.services.Users.Create(req.Context(), in)
	if err != nil {
		r.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (r *Router) handleUpdateUser(w http.ResponseWriter, req *http.Request) {
	id, ok := userID(w, req)
	if !ok {
		return
	}
	in, ok := r.decodeInput(w, req)
	if !ok {
		return
	}
	u, err := r.services.Users.Update(req.Context(), id, in)
	if err != nil {
		r.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (r *Router) handleDeleteUser(w http.ResponseWriter, req *http.Request) {
	id, ok := userID(w, req)
	if !ok {
		return
	}
	if err := r.services.Users.Delete(req.Context(), id); err != nil {
		r.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return 0, false
	}
	return id, true
}

func (r *Router) decodeInput(w http.ResponseWriter, req *http.Request) (models.UserInput, bool) {
	if r.maxRequestBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, r.maxRequestBytes)
	}
	var in models.UserInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "request entity too large"})
		case errors.Is(err, io.EOF):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "empty body"})
		default:
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid json"})
		}
		return models.UserInput{}, false
	}
	return in, true
}

func (r *Router) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	default:
		r.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}
