package api

import (
	"net/http"

	"agora/backend/internal/common"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"

	"github.com/go-chi/chi/v5"
)

// ListMembers handles GET /api/members
func (h *Handlers) ListMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := h.deps.Services.Members.GetExtended(r.Context())
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(members))
	}
}

// GetMemberByID handles GET /api/members/{id}
func (h *Handlers) GetMemberByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		member, err := h.deps.Services.Members.GetExtendedByID(r.Context(), memberID)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.FoundResponse[entities.MemberExtended]{Found: true, Payload: member})
	}
}

// GetMemberByUsername handles GET /api/members/{username} as seen by the session member
func (h *Handlers) GetMemberByUsername() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		pov, err := h.deps.Services.Members.GetFromMemberPovByUsername(r.Context(), session.MemberID, chi.URLParam(r, "username"))
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.FoundResponse[entities.MemberFromMemberPov]{Found: true, Payload: pov})
	}
}

// EditMember handles PATCH /api/members/{id}/edit
func (h *Handlers) EditMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		memberID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var req dtos.MemberDescriptionReq
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := h.deps.Services.Members.UpdateMemberDescription(r.Context(), session, memberID, req); err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[struct{}]{Done: true})
	}
}

// DeleteMember handles DELETE /api/members/{id}/delete
func (h *Handlers) DeleteMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		memberID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.deps.Services.Members.DeleteMember(r.Context(), session, memberID); err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[struct{}]{Done: true})
	}
}
