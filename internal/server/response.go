package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"

	mm "github.com/agora-forum/agora/internal/middleware"
	"github.com/agora-forum/agora/internal/service"
)

var validate = validator.New()

var (
	errInvalidRequest   = errors.New("invalid request")
	errMissingRequester = errors.New("missing " + mm.UserIDHeader)
)

func writeOK(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	write(w, status, Response{
		Message: message,
	})
}

func writeInternalErrorf(r *http.Request, w http.ResponseWriter, format string, args ...interface{}) {
	log.WithField("request_id", middleware.GetReqID(r.Context())).Errorf(format, args...)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

// writeServiceError maps service errors to http statuses.
func writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrReplyNotFound),
		errors.Is(err, service.ErrSubReplyNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrAuthorNotActive):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrNotLiked):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidPost):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		log.WithError(err).Warn("users directory is unavailable")
		writeError(w, http.StatusServiceUnavailable, service.ErrUpstreamUnavailable.Error())
	default:
		writeInternalErrorf(r, w, "failed to %s %s: %s", r.Method, r.URL.Path, err.Error())
	}
}

// decode reads and validates json request body into v.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode body: %s", errInvalidRequest, err.Error())
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	return nil
}

// requester returns user id of the request. It writes an error when the request is anonymous.
func requester(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := mm.GetRequester(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errMissingRequester.Error())
	}
	return id, ok
}

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id", errInvalidRequest)
	}
	return id, nil
}
