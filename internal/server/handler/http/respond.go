package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/middleware"
)

// Generic failure bodies. Callers never see the underlying error.
const (
	msgServerError = "Error del servidor"
	msgLoginError  = "Server error"
)

// messageResponse is the {"message": "..."} body used by delete, login and
// zone resolution.
type messageResponse struct {
	Message string `json:"message"`
}

// decodeJSON fills v from a JSON request body. A body that is empty or not
// declared as application/json leaves v untouched, so missing fields
// behave as absent.
func decodeJSON(r *http.Request, v any) error {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/json" {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeEmpty answers 200 with no body, which is what a lookup of a missing
// row has always returned.
func writeEmpty(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

// serverError logs err and answers 500 with the plain-text body msg.
func serverError(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	if log != nil {
		log.Error("request failed", errorFields(r, err)...)
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func errorFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		fields = append(fields,
			zap.String("pg_code", string(pqErr.Code)),
			zap.String("pg_code_name", pqErr.Code.Name()),
		)
		if pqErr.Constraint != "" {
			fields = append(fields, zap.String("pg_constraint", pqErr.Constraint))
		}
	}
	return fields
}
