package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"agora/backend/internal/auth"
	"agora/backend/internal/common"
	"agora/backend/internal/constants"
	"agora/backend/internal/logging"
	"agora/backend/internal/middleware"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// Response discriminators: every JSON body carries one boolean flag
const (
	flagCreated       = "created"
	flagFound         = "found"
	flagDone          = "done"
	flagDeleted       = "deleted"
	flagAuthenticated = "authenticated"
)

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalid:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError maps service errors to {flag: false, message}; anything else is a logged 500
func respondError(w http.ResponseWriter, r *http.Request, err error, flag string) {
	se, ok := services.AsServiceError(err)
	if !ok {
		logging.Error("Request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		common.RespondServerError(w)
		return
	}

	common.RespondJSON(w, statusForKind(se.Kind), map[string]any{
		flag:      false,
		"message": se.Message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		msg := constants.MsgInvalidRequestBody
		if errors.Is(err, io.EOF) {
			msg = constants.MsgEmptyFields
		}
		common.RespondMessage(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// decodeAndValidate reads a JSON body into dest and runs the struct validators
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if !decodeJSON(w, r, dest) {
		return false
	}
	if err := validate.Struct(dest); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// requireSession returns the claims set by AuthMiddleware, answering 400 when absent
func requireSession(w http.ResponseWriter, r *http.Request) (*auth.SessionClaims, bool) {
	session := auth.GetSessionClaims(r.Context())
	if session == nil || session.MemberID == 0 {
		common.RespondMessage(w, http.StatusBadRequest, constants.MsgEmptyFields)
		return nil, false
	}
	return session, true
}

// foundList never serializes a nil slice as null
func foundList[T any](items []T) dtos.FoundResponse[[]T] {
	if items == nil {
		items = []T{}
	}
	return dtos.FoundResponse[[]T]{Found: true, Payload: &items}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		common.RespondMessage(w, http.StatusBadRequest, constants.MsgEmptyFields)
		return 0, false
	}
	return id, true
}

// pageFromQuery reads ?limit=&offset=; the services clamp the values
func pageFromQuery(w http.ResponseWriter, r *http.Request) (dtos.Page, bool) {
	var page dtos.Page
	q := r.URL.Query()

	for name, dest := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			common.RespondMessage(w, http.StatusBadRequest, constants.MsgInvalidPagination)
			return page, false
		}
		*dest = v
	}
	return page, true
}
