package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"agora/backend/internal/auth"
	"agora/backend/internal/common"
	"agora/backend/internal/constants"
	"agora/backend/internal/db"
	"agora/backend/internal/metrics"
	"agora/backend/internal/models/dtos"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []constants.EventType
}

func (p *recordingPublisher) Publish(_ context.Context, eventType constants.EventType, _ string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count(eventType constants.EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type testEnv struct {
	store     Store
	tokens    *auth.TokenManager
	sessions  *common.SessionService
	publisher *recordingPublisher
	members   *MemberService
	follows   *FollowService
	boards    *BoardService
	posts     *PostService
	feed      *FeedService
}

// Setup test database
func setupTestDB(t *testing.T) Store {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(context.Background(), gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return Store{DB: gdb, SQL: sqlx.NewDb(sqlDB, "sqlite3")}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := setupTestDB(t)
	cache := common.NewCacheService(time.Minute, time.Minute)
	loader := common.NewCacheLoader(cache, time.Minute)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sessions := common.NewSessionService(cache)
	publisher := &recordingPublisher{}
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	return &testEnv{
		store:     store,
		tokens:    tokens,
		sessions:  sessions,
		publisher: publisher,
		members:   NewMemberService(store, tokens, sessions, loader, publisher, m),
		follows:   NewFollowService(store, loader, publisher, m),
		boards:    NewBoardService(store),
		posts:     NewPostService(store, publisher, m),
		feed:      NewFeedService(store),
	}
}

// register creates a member and returns the claims of its token
func (e *testEnv) register(t *testing.T, username string, desc *dtos.MemberDescriptionReq) *auth.SessionClaims {
	t.Helper()

	login := dtos.MemberLoginReq{Username: username, Password: "password1"}
	var (
		payload *dtos.RegisteredPayload
		err     error
	)
	if desc == nil {
		payload, err = e.members.CreateMinimalMember(context.Background(), login)
	} else {
		payload, err = e.members.CreateFullMember(context.Background(), dtos.RegisterFullReq{
			MemberLoginReq:       login,
			MemberDescriptionReq: *desc,
		})
	}
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}

	claims, err := e.tokens.Verify(payload.Token)
	if err != nil {
		t.Fatalf("verify token of %s: %v", username, err)
	}
	return claims
}

func (e *testEnv) registerPrivate(t *testing.T, username string) *auth.SessionClaims {
	t.Helper()
	return e.register(t, username, &dtos.MemberDescriptionReq{IsPrivate: ptr(true), Bio: ptr("secret bio")})
}

func ptr[T any](v T) *T { return &v }

func expectKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	se, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("expected ServiceError of kind %s, got %v", kind, err)
	}
	if se.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, se.Kind, se.Message)
	}
}
