// internal/api/file_handlers.go
package api

import (
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"tenant-portal/internal/idgen"
	"tenant-portal/internal/model"
	"tenant-portal/internal/storage"
)

const maxUploadMemory = 32 << 20 // 32 MiB

// @Summary Upload a file for a tenant
// @Tags Files
// @Param id path string true "Tenant ID"
// @Accept mpfd
// @Produce json
// @Success 200 {object} model.File
// @Router /tenants/{id}/files [post]
func (a *API) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(w, err, "Failed to read file")
		return
	}

	// Best-effort text: binary payloads are flagged, never stored raw.
	content := string(data)
	if !utf8.Valid(data) {
		content = model.BinaryContentPlaceholder
	}

	tenantID := chi.URLParam(r, "id")
	exists, err := a.Store.TenantExists(tenantID)
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "Tenant not found")
		return
	}

	f := &model.File{
		ID:         idgen.New("file"),
		TenantID:   tenantID,
		Name:       header.Filename,
		Size:       int64(len(data)),
		Content:    content,
		UploadedAt: time.Now(),
		URL:        "#",
	}

	if err := a.Store.InsertFile(f); err != nil {
		serverError(w, err, "Failed to store file")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// @Summary List tenant files, newest first
// @Tags Files
// @Param id path string true "Tenant ID"
// @Produce json
// @Success 200 {array} model.File
// @Router /tenants/{id}/files [get]
func (a *API) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := a.Store.ListFiles(chi.URLParam(r, "id"))
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// @Summary Delete a file
// @Tags Files
// @Param id path string true "Tenant ID"
// @Param fileId path string true "File ID"
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /tenants/{id}/files/{fileId} [delete]
func (a *API) DeleteFile(w http.ResponseWriter, r *http.Request) {
	err := a.Store.DeleteFile(chi.URLParam(r, "id"), chi.URLParam(r, "fileId"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		serverError(w, err, "Failed to delete file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
