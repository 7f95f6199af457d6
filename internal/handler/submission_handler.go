package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/service"
	"github.com/bamdigital/site-backend/internal/validation"
	"github.com/bamdigital/site-backend/pkg/auth"
)

const maxMessageLength = 5000

// SubmissionHandler handles the public contact form and the admin workflow
// over stored submissions.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a SubmissionHandler with the given service.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// validationErrorCode maps a validation failure onto a response code the
// frontend shows as a field-specific message.
func validationErrorCode(vErr *validation.Error) string {
	if vErr.Kind == validation.InvalidEmail {
		return "invalid_email"
	}
	return vErr.Field + "_required"
}

// writeStoreError maps the repository taxonomy onto status codes. Permission
// rejections surface as a connectivity problem and an uninitialized store as
// a system error, matching what the site shows the visitor.
func writeStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrPermissionDenied):
		writeError(w, http.StatusServiceUnavailable, "store_rejected")
	case errors.Is(err, repository.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// Submit handles POST /api/contact.
// name, email and message are required; message max 5000 chars.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if len([]rune(in.Message)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}
	// The form offers a fixed set of services; empty means no selection.
	if in.Service != "" && !model.KnownService(in.Service) {
		writeError(w, http.StatusBadRequest, "invalid_service")
		return
	}

	sub, err := h.submissionService.Submit(r.Context(), in)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, validationErrorCode(vErr))
			return
		}
		writeStoreError(w, err, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": sub.ID})
}

// requireAdmin enforces the authenticated + allow-listed gate on admin
// endpoints. Returns false after writing the response when the gate fails.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

// adminListResponse is the JSON response for GET /api/admin/submissions.
type adminListResponse struct {
	Submissions []*model.ContactSubmission `json:"submissions"`
	Stats       model.SubmissionStats      `json:"stats"`
}

// AdminList handles GET /api/admin/submissions (admin-only).
// Returns the full set, newest first, with derived counts.
func (h *SubmissionHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	subs, err := h.submissionService.ListAll(r.Context())
	if err != nil {
		slog.Error("list submissions failed", "error", err)
		writeStoreError(w, err, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{
		Submissions: subs,
		Stats:       model.CountStats(subs),
	})
}

// AdminMarkRead handles PATCH /api/admin/submissions/{id}/read (admin-only).
// Idempotent: re-marking an already-read submission succeeds.
func (h *SubmissionHandler) AdminMarkRead(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if err := h.submissionService.MarkRead(r.Context(), id); err != nil {
		slog.Error("mark read failed", "error", err, "id", id)
		writeStoreError(w, err, "mark_read_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// AdminDelete handles DELETE /api/admin/submissions/{id} (admin-only).
// Deletion is permanent; there is no soft delete.
func (h *SubmissionHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if err := h.submissionService.Delete(r.Context(), id); err != nil {
		slog.Error("delete submission failed", "error", err, "id", id)
		writeStoreError(w, err, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// AdminStats handles GET /api/admin/stats (admin-only).
func (h *SubmissionHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	stats, err := h.submissionService.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", "error", err)
		writeStoreError(w, err, "stats_failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
