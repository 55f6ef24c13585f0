package api

import (
	"net/http"

	"agora/backend/internal/common"
)

// GetFeed handles GET /api/feed?limit=&offset=
func (h *Handlers) GetFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		page, ok := pageFromQuery(w, r)
		if !ok {
			return
		}

		posts, err := h.deps.Services.Feed.Get(r.Context(), session, page)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(posts))
	}
}

// GetAffiliateFeed handles GET /api/feed/affiliate/{id}
func (h *Handlers) GetAffiliateFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		affiliateID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		page, ok := pageFromQuery(w, r)
		if !ok {
			return
		}

		posts, err := h.deps.Services.Feed.GetFromAffiliateID(r.Context(), session, affiliateID, page)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(posts))
	}
}

// GetSavedFeed handles GET /api/feed/saved
func (h *Handlers) GetSavedFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		page, ok := pageFromQuery(w, r)
		if !ok {
			return
		}

		posts, err := h.deps.Services.Feed.GetSaved(r.Context(), session, page)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, foundList(posts))
	}
}
