package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agora/backend/internal/auth"
	"agora/backend/internal/constants"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
	"agora/backend/internal/services"

	"github.com/go-chi/chi/v5"
)

var testSession = &auth.SessionClaims{EntityID: 10, AffiliateID: 20, MemberID: 30, Username: "ana"}

type call struct {
	method  string
	pattern string
	path    string
	body    string
	session *auth.SessionClaims
}

// serve mounts handler under pattern so chi fills the URL params
func serve(t *testing.T, handler http.HandlerFunc, c call) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Method(c.method, c.pattern, handler)

	var body *bytes.Reader
	if c.body != "" {
		body = bytes.NewReader([]byte(c.body))
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req = req.WithContext(auth.SetSessionClaims(req.Context(), c.session))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func newTestHandlers(s *Services) *Handlers {
	return NewHandlers(&Dependencies{Services: s})
}

func svcErr(kind services.ErrorKind, msg string) error {
	return &services.ServiceError{Kind: kind, Message: msg}
}

func TestLogin(t *testing.T) {
	members := &mockMembers{
		loginFunc: func(ctx context.Context, req dtos.MemberLoginReq) (*dtos.SessionPayload, error) {
			if req.Password != "secret1" {
				return nil, svcErr(services.KindUnauthorized, constants.MsgBadCredentials)
			}
			return &dtos.SessionPayload{
				SessionData:   dtos.SessionData{Username: req.Username, IsActive: true},
				SessionAccess: dtos.SessionAccess{Token: "tok", ExpiresIn: "24h0m0s"},
			}, nil
		},
	}
	h := newTestHandlers(&Services{Members: members})

	t.Run("success", func(t *testing.T) {
		rr := serve(t, h.Login(), call{method: "POST", pattern: "/auth/login", path: "/auth/login",
			body: `{"username":"ana","password":"secret1"}`})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		body := decodeBody(t, rr)
		if body["authenticated"] != true {
			t.Errorf("Expected authenticated=true, got %v", body)
		}
		payload := body["payload"].(map[string]any)
		if payload["token"] != "tok" || payload["expiresIn"] != "24h0m0s" || payload["username"] != "ana" {
			t.Errorf("Unexpected payload %v", payload)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := serve(t, h.Login(), call{method: "POST", pattern: "/auth/login", path: "/auth/login",
			body: `{"username":"ana","password":"nope"}`})
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("Expected status 401, got %d", rr.Code)
		}
		body := decodeBody(t, rr)
		if body["authenticated"] != false || body["message"] != constants.MsgBadCredentials {
			t.Errorf("Unexpected body %v", body)
		}
	})

	t.Run("empty fields", func(t *testing.T) {
		rr := serve(t, h.Login(), call{method: "POST", pattern: "/auth/login", path: "/auth/login",
			body: `{"username":"ana"}`})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", rr.Code)
		}
		if body := decodeBody(t, rr); body["message"] != constants.MsgEmptyFields {
			t.Errorf("Unexpected body %v", body)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		rr := serve(t, h.Login(), call{method: "POST", pattern: "/auth/login", path: "/auth/login", body: "invalid json"})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", rr.Code)
		}
	})
}

func TestRegisterMinimal(t *testing.T) {
	called := false
	members := &mockMembers{
		createMinimalFunc: func(ctx context.Context, req dtos.MemberLoginReq) (*dtos.RegisteredPayload, error) {
			called = true
			if req.Username == "taken" {
				return nil, svcErr(services.KindInvalid, constants.MsgUsernameTaken)
			}
			return &dtos.RegisteredPayload{
				MemberIdentity: dtos.MemberIdentity{EntityID: 1, AffiliateID: 2, MemberID: 3},
				SessionAccess:  dtos.SessionAccess{Token: "tok"},
			}, nil
		},
	}
	h := newTestHandlers(&Services{Members: members})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCall   bool
		wantMsg    string
	}{
		{"created", `{"username":"ana_b","password":"secret1"}`, http.StatusCreated, true, ""},
		{"taken", `{"username":"taken","password":"secret1"}`, http.StatusBadRequest, true, constants.MsgUsernameTaken},
		{"numeric username", `{"username":"12345","password":"secret1"}`, http.StatusBadRequest, false, constants.MsgInvalidFields + ": username"},
		{"short password", `{"username":"ana","password":"123"}`, http.StatusBadRequest, false, constants.MsgInvalidFields + ": password"},
		{"missing password", `{"username":"ana"}`, http.StatusBadRequest, false, constants.MsgEmptyFields},
		{"empty body", ``, http.StatusBadRequest, false, constants.MsgEmptyFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			rr := serve(t, h.RegisterMinimal(), call{method: "POST", pattern: "/auth/register/min", path: "/auth/register/min", body: tt.body})
			if rr.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d (%s)", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if called != tt.wantCall {
				t.Errorf("service called = %v, want %v", called, tt.wantCall)
			}
			body := decodeBody(t, rr)
			if tt.wantMsg != "" && body["message"] != tt.wantMsg {
				t.Errorf("Expected message %q, got %v", tt.wantMsg, body["message"])
			}
			if tt.wantStatus == http.StatusCreated {
				if body["created"] != true {
					t.Errorf("Expected created=true, got %v", body)
				}
				payload := body["payload"].(map[string]any)
				if payload["member_id"] != float64(3) || payload["token"] != "tok" {
					t.Errorf("Unexpected payload %v", payload)
				}
			}
		})
	}
}

func TestRegisterFull_ValidatesDescription(t *testing.T) {
	var got dtos.RegisterFullReq
	members := &mockMembers{
		createFullFunc: func(ctx context.Context, req dtos.RegisterFullReq) (*dtos.RegisteredPayload, error) {
			got = req
			return &dtos.RegisteredPayload{}, nil
		},
	}
	h := newTestHandlers(&Services{Members: members})

	rr := serve(t, h.RegisterFull(), call{method: "POST", pattern: "/auth/register", path: "/auth/register",
		body: `{"username":"ana","password":"secret1","email":"not-an-email"}`})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 for bad email, got %d", rr.Code)
	}

	rr = serve(t, h.RegisterFull(), call{method: "POST", pattern: "/auth/register", path: "/auth/register",
		body: `{"username":"ana","password":"secret1","email":"ana@example.com","birthdate":"1990-04-02","is_private":true}`})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	if got.Email == nil || *got.Email != "ana@example.com" || got.IsPrivate == nil || !*got.IsPrivate {
		t.Errorf("Description fields not forwarded: %+v", got.MemberDescriptionReq)
	}
}

func TestRegisterDescription(t *testing.T) {
	var gotMember uint64
	members := &mockMembers{
		createDescFunc: func(ctx context.Context, memberID uint64, req dtos.MemberDescriptionReq) error {
			gotMember = memberID
			return svcErr(services.KindConflict, constants.MsgDescriptionExists)
		},
	}
	h := newTestHandlers(&Services{Members: members})

	rr := serve(t, h.RegisterDescription(), call{method: "POST", pattern: "/auth/register/desc", path: "/auth/register/desc",
		body: `{"fullname":"Ana"}`})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without a session, got %d", rr.Code)
	}

	rr = serve(t, h.RegisterDescription(), call{method: "POST", pattern: "/auth/register/desc", path: "/auth/register/desc",
		body: `{"fullname":"Ana"}`, session: testSession})
	if rr.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rr.Code)
	}
	if gotMember != testSession.MemberID {
		t.Errorf("Expected member %d, got %d", testSession.MemberID, gotMember)
	}
	if body := decodeBody(t, rr); body["done"] != false {
		t.Errorf("Expected done=false, got %v", body)
	}
}

func TestMembers(t *testing.T) {
	members := &mockMembers{
		getExtendedFunc: func(ctx context.Context) ([]entities.MemberExtended, error) {
			return nil, nil
		},
		getByIDFunc: func(ctx context.Context, memberID uint64) (*entities.MemberExtended, error) {
			if memberID == 7 {
				return &entities.MemberExtended{MemberID: 7, Username: "bo"}, nil
			}
			return nil, svcErr(services.KindNotFound, constants.MsgMemberNotFound)
		},
		getByUsernameFunc: func(ctx context.Context, consultant uint64, username string) (*entities.MemberFromMemberPov, error) {
			return &entities.MemberFromMemberPov{ConsultantMemberID: consultant, Username: username}, nil
		},
		updateDescFunc: func(ctx context.Context, session *auth.SessionClaims, memberID uint64, req dtos.MemberDescriptionReq) error {
			if session.MemberID != memberID {
				return svcErr(services.KindUnauthorized, constants.MsgSessionIDMismatch)
			}
			return nil
		},
		deleteMemberFunc: func(ctx context.Context, session *auth.SessionClaims, memberID uint64) error {
			return errors.New("connection reset")
		},
	}
	h := newTestHandlers(&Services{Members: members})

	rr := serve(t, h.ListMembers(), call{method: "GET", pattern: "/members", path: "/members", session: testSession})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"payload":[]`) {
		t.Errorf("Expected empty payload array, got %d %s", rr.Code, rr.Body.String())
	}

	rr = serve(t, h.GetMemberByID(), call{method: "GET", pattern: "/members/{id}", path: "/members/7", session: testSession})
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	rr = serve(t, h.GetMemberByID(), call{method: "GET", pattern: "/members/{id}", path: "/members/8", session: testSession})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["found"] != false || body["message"] != constants.MsgMemberNotFound {
		t.Errorf("Unexpected body %v", body)
	}

	rr = serve(t, h.GetMemberByUsername(), call{method: "GET", pattern: "/members/{username}", path: "/members/bo", session: testSession})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)["payload"].(map[string]any)
	if payload["username"] != "bo" || payload["consultant_member_id"] != float64(testSession.MemberID) {
		t.Errorf("Unexpected payload %v", payload)
	}

	rr = serve(t, h.EditMember(), call{method: "PATCH", pattern: "/members/{id}/edit", path: "/members/99/edit",
		body: `{"bio":"hi"}`, session: testSession})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 on id mismatch, got %d", rr.Code)
	}
	rr = serve(t, h.EditMember(), call{method: "PATCH", pattern: "/members/{id}/edit", path: "/members/30/edit",
		body: `{"bio":"hi"}`, session: testSession})
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}

	rr = serve(t, h.DeleteMember(), call{method: "DELETE", pattern: "/members/{id}/delete", path: "/members/30/delete", session: testSession})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 for unexpected errors, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != constants.MsgServerError {
		t.Errorf("Internal errors must not leak, got %v", body)
	}
}

func TestFollowHandlers(t *testing.T) {
	var answered []string
	username := "bo"
	follows := &mockFollows{
		followFunc: func(ctx context.Context, from, to uint64) (*dtos.FollowResult, error) {
			if to == 5 {
				return nil, svcErr(services.KindConflict, constants.MsgAlreadyFollowing)
			}
			return &dtos.FollowResult{FollowRequestID: 9, IsAccepted: true}, nil
		},
		acceptFunc: func(ctx context.Context, session *auth.SessionClaims, id uint64) error {
			answered = append(answered, "accept")
			return svcErr(services.KindForbidden, constants.MsgFollowNotYours)
		},
		declineFunc: func(ctx context.Context, session *auth.SessionClaims, id uint64) error {
			answered = append(answered, "decline")
			return nil
		},
		followers: func(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error) {
			return []entities.FollowListing{{FollowRequestID: 1, AffiliateID: 2, Username: &username}}, nil
		},
	}
	h := newTestHandlers(&Services{Follows: follows})

	rr := serve(t, h.Follow(), call{method: "POST", pattern: "/affiliates/{id}/follow", path: "/affiliates/4/follow", session: testSession})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	payload := body["payload"].(map[string]any)
	if body["done"] != true || payload["follow_request_id"] != float64(9) || payload["is_accepted"] != true {
		t.Errorf("Unexpected body %v", body)
	}

	rr = serve(t, h.Follow(), call{method: "POST", pattern: "/affiliates/{id}/follow", path: "/affiliates/5/follow", session: testSession})
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rr.Code)
	}

	rr = serve(t, h.Follow(), call{method: "POST", pattern: "/affiliates/{id}/follow", path: "/affiliates/abc/follow", session: testSession})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a non-numeric id, got %d", rr.Code)
	}

	rr = serve(t, h.AcceptFollow(), call{method: "PATCH", pattern: "/followers/requests/{id}/accept", path: "/followers/requests/3/accept", session: testSession})
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
	rr = serve(t, h.DeclineFollow(), call{method: "DELETE", pattern: "/followers/requests/{id}/decline", path: "/followers/requests/3/decline", session: testSession})
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	if strings.Join(answered, ",") != "accept,decline" {
		t.Errorf("Expected accept then decline, got %v", answered)
	}

	rr = serve(t, h.GetFollowers(), call{method: "GET", pattern: "/followers/affiliate/{id}", path: "/followers/affiliate/2", session: testSession})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	list := decodeBody(t, rr)["payload"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["username"] != "bo" {
		t.Errorf("Unexpected followers %v", list)
	}
}

func TestPostHandlers(t *testing.T) {
	var gotReq dtos.CreatePostReq
	posts := &mockPosts{
		createFunc: func(ctx context.Context, session *auth.SessionClaims, req dtos.CreatePostReq) (*dtos.PostCreated, error) {
			gotReq = req
			return &dtos.PostCreated{PostID: 4, EntityID: 8, Affiliates: []dtos.AffiliateRef{{AffiliateID: session.AffiliateID}}}, nil
		},
		deleteFunc: func(ctx context.Context, affiliateID, postID uint64) error {
			return svcErr(services.KindNotFound, constants.MsgPostNotDeleted)
		},
		switchFunc: func(ctx context.Context, affiliateID, postID uint64) (*dtos.SavedState, error) {
			if affiliateID != testSession.AffiliateID {
				t.Errorf("Expected session affiliate, got %d", affiliateID)
			}
			return &dtos.SavedState{Saved: true}, nil
		},
	}
	h := newTestHandlers(&Services{Posts: posts})

	rr := serve(t, h.CreatePost(), call{method: "POST", pattern: "/posts", path: "/posts",
		body: `{"body":"` + strings.Repeat("x", 1001) + `"}`, session: testSession})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an oversized body, got %d", rr.Code)
	}

	rr = serve(t, h.CreatePost(), call{method: "POST", pattern: "/posts", path: "/posts",
		body: `{"body":"hello","affiliate_id":12}`, session: testSession})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	if gotReq.AffiliateID == nil || *gotReq.AffiliateID != 12 {
		t.Errorf("Board target not forwarded: %+v", gotReq)
	}

	rr = serve(t, h.SwitchSaved(), call{method: "POST", pattern: "/posts/{id}/switch-save", path: "/posts/4/switch-save", session: testSession})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"saved":true`) {
		t.Errorf("Unexpected switch-save response %d %s", rr.Code, rr.Body.String())
	}

	rr = serve(t, h.DeletePost(), call{method: "DELETE", pattern: "/posts/{id}/delete", path: "/posts/4/delete", session: testSession})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["deleted"] != false {
		t.Errorf("Expected deleted=false, got %v", body)
	}
}

func TestGetFeed_Pagination(t *testing.T) {
	var gotPage dtos.Page
	feed := &mockFeed{
		getFunc: func(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error) {
			gotPage = page
			return []entities.FeedPost{{PostID: 1, Body: "hi"}}, nil
		},
	}
	h := newTestHandlers(&Services{Feed: feed})

	rr := serve(t, h.GetFeed(), call{method: "GET", pattern: "/feed", path: "/feed?limit=5&offset=10", session: testSession})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if gotPage.Limit != 5 || gotPage.Offset != 10 {
		t.Errorf("Expected page 5/10, got %+v", gotPage)
	}

	for _, q := range []string{"limit=abc", "offset=-1"} {
		rr = serve(t, h.GetFeed(), call{method: "GET", pattern: "/feed", path: "/feed?" + q, session: testSession})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rr.Code)
		}
	}
}

func TestGetBoard(t *testing.T) {
	boards := &mockBoards{
		getFunc: func(ctx context.Context, boardID uint64) (*entities.BoardExtended, error) {
			if boardID != 1 {
				return nil, svcErr(services.KindNotFound, constants.MsgBoardNotFound)
			}
			return &entities.BoardExtended{BoardID: 1, Title: "Go"}, nil
		},
	}
	h := newTestHandlers(&Services{Boards: boards})

	rr := serve(t, h.GetBoard(), call{method: "GET", pattern: "/boards/{id}", path: "/boards/1", session: testSession})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"title":"Go"`) {
		t.Errorf("Unexpected response %d %s", rr.Code, rr.Body.String())
	}
	rr = serve(t, h.GetBoard(), call{method: "GET", pattern: "/boards/{id}", path: "/boards/2", session: testSession})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestHealthAndPong(t *testing.T) {
	rr := httptest.NewRecorder()
	Pong(rr, httptest.NewRequest("GET", "/api/ping", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "pong" {
		t.Errorf("Unexpected pong %d %q", rr.Code, rr.Body.String())
	}

	ok := HealthCheck{Name: "database", Details: "connected", Ping: func(context.Context) error { return nil }}
	down := HealthCheck{Name: "cache", Ping: func(context.Context) error { return errors.New("refused") }}

	rr = httptest.NewRecorder()
	HealthCheckHandler(time.Now().Add(-time.Minute), ok)(rr, httptest.NewRequest("GET", "/healthCheck", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	HealthCheckHandler(time.Now(), ok, down)(rr, httptest.NewRequest("GET", "/healthCheck", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", rr.Code)
	}
	var resp entities.HealthCheckResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "down" || resp.Services["cache"].Details != "refused" || resp.Services["database"].Status != "ok" {
		t.Errorf("Unexpected health %+v", resp)
	}
}
