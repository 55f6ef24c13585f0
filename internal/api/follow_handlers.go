package api

import (
	"net/http"

	"agora/backend/internal/common"
	"agora/backend/internal/models/dtos"
)

// Follow handles POST /api/affiliates/{id}/follow
func (h *Handlers) Follow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		affiliateID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		result, err := h.deps.Services.Follows.Follow(r.Context(), session.MemberID, affiliateID)
		if err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[dtos.FollowResult]{Done: true, Payload: result})
	}
}

// Unfollow handles DELETE /api/affiliates/{id}/unfollow
func (h *Handlers) Unfollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		affiliateID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.deps.Services.Follows.Unfollow(r.Context(), session.MemberID, affiliateID); err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[struct{}]{Done: true})
	}
}

// GetFollowers handles GET /api/followers/affiliate/{id}
func (h *Handlers) GetFollowers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		affiliateID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		list, err := h.deps.Services.Follows.GetFollowers(r.Context(), affiliateID)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(list))
	}
}

// GetFollowees handles GET /api/followees/affiliate/{id}
func (h *Handlers) GetFollowees() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		affiliateID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		list, err := h.deps.Services.Follows.GetFollowees(r.Context(), affiliateID)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(list))
	}
}

// GetFollowRequests handles GET /api/followers/requests
func (h *Handlers) GetFollowRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		list, err := h.deps.Services.Follows.GetRequests(r.Context(), session)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(list))
	}
}

// AcceptFollow handles PATCH /api/followers/requests/{id}/accept
func (h *Handlers) AcceptFollow() http.HandlerFunc {
	return h.answerFollow(true)
}

// DeclineFollow handles DELETE /api/followers/requests/{id}/decline
func (h *Handlers) DeclineFollow() http.HandlerFunc {
	return h.answerFollow(false)
}

func (h *Handlers) answerFollow(accept bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		requestID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		answer := h.deps.Services.Follows.Decline
		if accept {
			answer = h.deps.Services.Follows.Accept
		}
		if err := answer(r.Context(), session, requestID); err != nil {
			respondError(w, r, err, flagDone)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.DoneResponse[struct{}]{Done: true})
	}
}
