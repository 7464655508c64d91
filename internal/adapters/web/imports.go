package web

import (
	"net/http"

	"syncolow/internal/app"
)

// importFile handles POST /api/imports. Multipart form with the spreadsheet
// under "file", plus "company_code" and an optional "dry_run" flag. Row-level
// problems are report data, so the only non-200 outcomes are bad requests and
// infrastructure failures.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, "invalid multipart upload: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	companyCode := r.FormValue("company_code")
	if companyCode == "" {
		writeError(w, r, "company_code is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "file is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dryRun := r.FormValue("dry_run") == "1" || r.FormValue("dry_run") == "true" ||
		r.URL.Query().Get("dry_run") == "1"

	report, err := h.svc.ImportFile(r.Context(), app.ImportFileRequest{
		CompanyCode: companyCode,
		Filename:    header.Filename,
		Data:        file,
		DryRun:      dryRun,
	})
	if err != nil {
		writeError(w, r, err.Error(), "IMPORT_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// listFields handles GET /api/imports/fields: the canonical schema contract,
// for clients that want to preview a mapping before uploading.
func (h *Handler) listFields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"fields": h.svc.ListFields()})
}
