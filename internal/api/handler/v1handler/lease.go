package v1handler

import (
	"net/http"
	"time"

	"moveout/internal/lease"
	"moveout/pkg/domain"
)

type createLeaseRequest struct {
	TenantName      string       `json:"tenantName"`
	Deposit         domain.Money `json:"deposit"`
	MonthlyRent     domain.Money `json:"monthlyRent"`
	StartDate       time.Time    `json:"startDate"`
	TightMarketZone bool         `json:"tightMarketZone"`
}

// CreateLease registers a new lease for the authenticated landlord.
func (h Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createLeaseRequest
	if err := decode(r, &req); err != nil {
		respondError(ctx, w, err)

		return
	}

	l, err := h.deps.Leases.Create(ctx, GetUserIDFromContext(ctx), lease.CreateInput{
		TenantName:      req.TenantName,
		Deposit:         req.Deposit,
		MonthlyRent:     req.MonthlyRent,
		StartDate:       req.StartDate,
		TightMarketZone: req.TightMarketZone,
	})
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusCreated, l)
}

// GetLease returns a lease by ID.
func (h Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	l, err := h.deps.Leases.Lease(ctx, GetUserIDFromContext(ctx), domain.LeaseID(id))
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusOK, l)
}

type createInspectionRequest struct {
	Phase       string                  `json:"phase"`
	PerformedAt time.Time               `json:"performedAt"`
	Items       []domain.InspectionItem `json:"items"`
}

// CreateInspection records a state-of-premises report against a lease.
func (h Handler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	var req createInspectionRequest
	if err := decode(r, &req); err != nil {
		respondError(ctx, w, err)

		return
	}

	insp, err := h.deps.Leases.AddInspection(ctx,
		GetUserIDFromContext(ctx), domain.LeaseID(id), lease.InspectionInput{
			Phase:       req.Phase,
			PerformedAt: req.PerformedAt,
			Items:       req.Items,
		})
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusCreated, insp)
}
