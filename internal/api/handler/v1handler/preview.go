package v1handler

import (
	"net/http"
	"time"

	"moveout/internal/notice"
	"moveout/internal/settlement"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
)

type settlementPreviewRequest struct {
	Deposit         domain.Money `json:"deposit"`
	UnpaidRent      domain.Money `json:"unpaidRent"`
	RepairCosts     domain.Money `json:"repairCosts"`
	CleaningCosts   domain.Money `json:"cleaningCosts"`
	OtherDeductions domain.Money `json:"otherDeductions"`
}

// SettlementPreview computes a deposit settlement from the submitted figures
// without persisting anything.
func (h Handler) SettlementPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req settlementPreviewRequest
	if err := decode(r, &req); err != nil {
		respondError(ctx, w, err)

		return
	}

	in := settlement.Input{
		Deposit:         req.Deposit,
		UnpaidRent:      req.UnpaidRent,
		RepairCosts:     req.RepairCosts,
		CleaningCosts:   req.CleaningCosts,
		OtherDeductions: req.OtherDeductions,
	}
	if err := in.Validate(); err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusOK, settlement.Compute(in))
}

type noticePreviewRequest struct {
	Reason               string    `json:"reason"`
	TightMarketZone      bool      `json:"tightMarketZone"`
	DepartureDate        time.Time `json:"departureDate"`
	InspectionConformant bool      `json:"inspectionConformant"`
}

type noticePreviewResponse struct {
	NoticeMonths  int       `json:"noticeMonths"`
	LegalDeadline time.Time `json:"legalDeadline"`
}

// NoticePreview resolves the notice period and deposit refund deadline for
// the submitted termination terms.
func (h Handler) NoticePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req noticePreviewRequest
	if err := decode(r, &req); err != nil {
		respondError(ctx, w, err)

		return
	}

	reason, err := notice.ParseReason(req.Reason)
	if err != nil {
		respondError(ctx, w, err)

		return
	}
	if req.DepartureDate.IsZero() {
		respondError(ctx, w, serrors.With(serrors.ErrBadRequest, "departure date is required"))

		return
	}

	respond(ctx, w, http.StatusOK, noticePreviewResponse{
		NoticeMonths:  notice.Period(reason, req.TightMarketZone),
		LegalDeadline: notice.LegalDeadline(req.DepartureDate, req.InspectionConformant),
	})
}
