package api

import (
	"net/http"
	"strings"

	"agora/backend/internal/common"
	"agora/backend/internal/constants"
	"agora/backend/internal/models/dtos"
)

// Login handles POST /api/auth/login
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.MemberLoginReq
		if !decodeJSON(w, r, &req) {
			return
		}
		// Format rules apply at registration; here any mismatch is just a failed login
		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			common.RespondMessage(w, http.StatusBadRequest, constants.MsgEmptyFields)
			return
		}

		payload, err := h.deps.Services.Members.Login(r.Context(), req)
		if err != nil {
			respondError(w, r, err, flagAuthenticated)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.AuthenticatedResponse[dtos.SessionPayload]{
			Authenticated: true,
			Payload:       payload,
		})
	}
}

// RegisterMinimal handles POST /api/auth/register/min
func (h *Handlers) RegisterMinimal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.MemberLoginReq
		if !decodeAndValidate(w, r, &req) {
			return
		}

		payload, err := h.deps.Services.Members.CreateMinimalMember(r.Context(), req)
		if err != nil {
			respondError(w, r, err, flagCreated)
			return
		}
		common.RespondJSON(w, http.StatusCreated, dtos.CreatedResponse[dtos.RegisteredPayload]{Created: true, Payload: payload})
	}
}

// RegisterFull handles POST /api/auth/register
func (h *Handlers) RegisterFull() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RegisterFullReq
		if !decodeAndValidate(w, r, &req) {
			return
		}

		payload, err := h.deps.Services.Members.CreateFullMember(r.Context(), req)
		if err != nil {
			respondError(w, r, err, flagCreated)
			return
		}
		common.RespondJSON(w, http.StatusCreated, dtos.CreatedResponse[dtos.RegisteredPayload]{Created: true, Payload: payload})
	}
}

// RegisterDescription handles POST /api/auth/register/desc for the session member
func (h *Handlers) RegisterDescription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		var req dtos.MemberDescriptionReq
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := h.deps.Services.Members.CreateMemberDescription(r.Context(), session.MemberID, req); err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusCreated, dtos.DoneResponse[struct{}]{Done: true})
	}
}

// Reauth handles GET /api/auth/reauth and hands back a renewed token
func (h *Handlers) Reauth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		payload, err := h.deps.Services.Members.Reauth(r.Context(), session)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.FoundResponse[dtos.SessionPayload]{Found: true, Payload: payload})
	}
}

// Logout handles POST /api/auth/logout by revoking the presented token
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		if err := h.deps.Services.Members.Logout(r.Context(), session); err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[struct{}]{Done: true})
	}
}
