// internal/api/member_handlers.go
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tenant-portal/internal/idgen"
	"tenant-portal/internal/model"
	"tenant-portal/internal/storage"
)

type AddMemberRequest struct {
	Email string `json:"email"`
}

// @Summary Add team member
// @Tags Members
// @Param id path string true "Tenant ID"
// @Param teamId path string true "Team ID"
// @Accept json
// @Produce json
// @Success 200 {object} model.TeamMember
// @Router /tenants/{id}/teams/{teamId}/members [post]
func (a *API) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email required")
		return
	}

	member := &model.TeamMember{
		ID:        idgen.New("mem"),
		TeamID:    chi.URLParam(r, "teamId"),
		Email:     req.Email,
		CreatedAt: time.Now(),
	}

	err := a.Store.AddMember(member)
	if errors.Is(err, storage.ErrDuplicate) {
		writeError(w, http.StatusConflict, "Member already exists")
		return
	}
	if err != nil {
		serverError(w, err, "Failed to add member")
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// @Summary List team members, newest first
// @Tags Members
// @Param id path string true "Tenant ID"
// @Param teamId path string true "Team ID"
// @Produce json
// @Success 200 {array} model.TeamMember
// @Router /tenants/{id}/teams/{teamId}/members [get]
func (a *API) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.Store.ListMembers(chi.URLParam(r, "teamId"))
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, members)
}
