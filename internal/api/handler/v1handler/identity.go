package v1handler

import (
	"net/http"
)

type verifyMRZRequest struct {
	// OCRText is the raw text extracted from a scanned identity document.
	OCRText string `json:"ocrText"`
}

// VerifyMRZ locates and parses the machine-readable zone in the submitted
// OCR text and returns the stored verification outcome.
func (h Handler) VerifyMRZ(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyMRZRequest
	if err := decode(r, &req); err != nil {
		respondError(ctx, w, err)

		return
	}

	check, err := h.deps.Identity.Verify(ctx, GetUserIDFromContext(ctx), req.OCRText)
	if err != nil {
		respondError(ctx, w, err)

		return
	}

	respond(ctx, w, http.StatusOK, check)
}
