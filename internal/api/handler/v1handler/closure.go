package v1handler

import (
	"net/http"
	"strconv"
	"time"

	"moveout/internal/closure"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"

	"github.com/google/uuid"
)

type createClosureRequest struct {
	LeaseID              uuid.UUID    `json:"leaseId"`
	Reason               string       `json:"reason"`
	DepartureDate        time.Time    `json:"departureDate"`
	InspectionConformant bool         `json:"inspectionConformant"`
	UnpaidRent           domain.Money `json:"unpaidRent"`
	CleaningCosts        domain.Money `json:"cleaningCosts"`
	OtherDeductions      domain.Money `json:"otherDeductions"`
}

// CreateClosure starts an end-of-lease process for a lease.
func (h Handler) CreateClosure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createClosureRequest
	if err := decode(r, &req); err != nil {
		respondError(ctx, w, err)

		return
	}

	c, err := h.deps.Closures.Start(ctx,
		GetUserIDFromContext(ctx), domain.LeaseID(req.LeaseID), closure.StartInput{
			Reason:               req.Reason,
			DepartureDate:        req.DepartureDate,
			InspectionConformant: req.InspectionConformant,
			UnpaidRent:           req.UnpaidRent,
			CleaningCosts:        req.CleaningCosts,
			OtherDeductions:      req.OtherDeductions,
		})
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusCreated, c)
}

type closureListResponse struct {
	Items      []domain.Closure `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// ListClosures returns a paginated list of the user's closures.
func (h Handler) ListClosures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit := uint(DefaultLimit)
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			respondError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	closures, nextCursor, err := h.deps.Closures.UserClosures(ctx,
		GetUserIDFromContext(ctx),
		domain.ClosureStatus(q.Get("status")),
		q.Get("cursor"),
		limit)
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusOK, closureListResponse{
		Items:      closures,
		NextCursor: nextCursor,
	})
}

// GetClosure returns a closure with its result by ID.
func (h Handler) GetClosure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	c, err := h.deps.Closures.Result(ctx, GetUserIDFromContext(ctx), domain.ClosureID(id))
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusOK, c)
}

// DeleteClosure removes a closure by ID.
func (h Handler) DeleteClosure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	if err := h.deps.Closures.Delete(ctx, GetUserIDFromContext(ctx), domain.ClosureID(id)); err != nil {
		respondError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
