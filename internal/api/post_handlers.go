package api

import (
	"net/http"

	"agora/backend/internal/common"
	"agora/backend/internal/models/dtos"
)

// CreatePost handles POST /api/posts; affiliate_id optionally targets a board
func (h *Handlers) CreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		var req dtos.CreatePostReq
		if !decodeAndValidate(w, r, &req) {
			return
		}

		created, err := h.deps.Services.Posts.CreatePost(r.Context(), session, req)
		if err != nil {
			respondError(w, r, err, flagCreated)
			return
		}
		common.RespondJSON(w, http.StatusCreated, dtos.CreatedResponse[dtos.PostCreated]{Created: true, Payload: created})
	}
}

// SwitchSaved handles POST /api/posts/{id}/switch-save
func (h *Handlers) SwitchSaved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		postID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		state, err := h.deps.Services.Posts.SwitchSaved(r.Context(), session.AffiliateID, postID)
		if err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[dtos.SavedState]{Done: true, Payload: state})
	}
}

// DeletePost handles DELETE /api/posts/{id}/delete
func (h *Handlers) DeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		postID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.deps.Services.Posts.DeletePost(r.Context(), session.AffiliateID, postID); err != nil {
			respondError(w, r, err, flagDeleted)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DeletedResponse{Deleted: true})
	}
}
