package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"scorecast/auth"
	"scorecast/domain"
	apperrors "scorecast/errors"
	"scorecast/services"
)

func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	var in services.MatchInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	snapshot, err := s.service.ScheduleMatch(in, auth.ClaimsFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.service.Match(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) getCommentary(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		nanos, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "since must be a unix nanosecond timestamp")
			return
		}
		t := time.Unix(0, nanos).UTC()
		since = &t
	}

	feed, err := s.service.Commentary(chi.URLParam(r, "id"), since)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) getLiveMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LiveMatches())
}

func (s *Server) submitDelivery(w http.ResponseWriter, r *http.Request) {
	var in services.DeliveryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	snapshot, err := s.service.SubmitDelivery(chi.URLParam(r, "id"), in, auth.ClaimsFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type statusChangeRequest struct {
	Status string `json:"status"`
}

func (s *Server) submitStatusChange(w http.ResponseWriter, r *http.Request) {
	var req statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	newStatus, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snapshot, err := s.service.SubmitStatusChange(chi.URLParam(r, "id"), newStatus, auth.ClaimsFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a 500 and gets logged; taxonomy errors are the client's
// problem and only echo their message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, apperrors.ErrMatchNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidTransition):
		errorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrMatchExists):
		errorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		errorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrMissingWicketType),
		errors.Is(err, apperrors.ErrUnknownWicketType),
		errors.Is(err, apperrors.ErrUnknownStatus),
		errors.As(err, &validationErrs):
		errorJSON(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("Unhandled gateway error", "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
