// Package v1handler implements the v1 HTTP API: lease and inspection intake,
// end-of-lease closures, synchronous previews and identity verification.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"moveout/internal/closure"
	"moveout/internal/identity"
	"moveout/internal/lease"
	"moveout/pkg/logger"
	"moveout/pkg/serrors"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DefaultLimit is the page size used when the client does not pass one.
const DefaultLimit = 20

// Deps groups the services the handlers delegate to.
type Deps struct {
	Leases   lease.Service
	Closures closure.Service
	Identity identity.Service
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the v1 routes on the given subrouter. The auth middleware
// applies to every route registered here.
func (h *Handler) Register(r *mux.Router, auth mux.MiddlewareFunc) {
	r.Use(auth)

	r.HandleFunc("/leases", h.CreateLease).Methods(http.MethodPost)
	r.HandleFunc("/leases/{id}", h.GetLease).Methods(http.MethodGet)
	r.HandleFunc("/leases/{id}/inspections", h.CreateInspection).Methods(http.MethodPost)

	r.HandleFunc("/closures", h.CreateClosure).Methods(http.MethodPost)
	r.HandleFunc("/closures", h.ListClosures).Methods(http.MethodGet)
	r.HandleFunc("/closures/{id}", h.GetClosure).Methods(http.MethodGet)
	r.HandleFunc("/closures/{id}", h.DeleteClosure).Methods(http.MethodDelete)

	r.HandleFunc("/settlements/preview", h.SettlementPreview).Methods(http.MethodPost)
	r.HandleFunc("/notice/preview", h.NoticePreview).Methods(http.MethodPost)

	r.HandleFunc("/identity/mrz", h.VerifyMRZ).Methods(http.MethodPost)
}

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps semantic error kinds to HTTP status codes. Unknown errors are
// treated as internal.
func statusOf(err error) int {
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, serrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON. Internal errors are logged and their
// details are not leaked to the client.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = "internal server error"
	}

	respond(ctx, w, status, errorResponse{Error: msg})
}

func respond(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}

// pathID extracts and parses the {id} path variable.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid id")
	}

	return id, nil
}
