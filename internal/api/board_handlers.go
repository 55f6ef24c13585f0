package api

import (
	"net/http"

	"agora/backend/internal/common"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
)

// CreateBoard handles POST /api/boards; the session member becomes the owner
func (h *Handlers) CreateBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		var req dtos.CreateBoardReq
		if !decodeAndValidate(w, r, &req) {
			return
		}

		created, err := h.deps.Services.Boards.CreateBoard(r.Context(), session, req)
		if err != nil {
			respondError(w, r, err, flagCreated)
			return
		}
		common.RespondJSON(w, http.StatusCreated, dtos.CreatedResponse[dtos.BoardCreated]{Created: true, Payload: created})
	}
}

// GetBoard handles GET /api/boards/{id}
func (h *Handlers) GetBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		board, err := h.deps.Services.Boards.GetBoard(r.Context(), boardID)
		if err != nil {
			respondError(w, r, err, flagFound)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.FoundResponse[entities.BoardExtended]{Found: true, Payload: board})
	}
}
