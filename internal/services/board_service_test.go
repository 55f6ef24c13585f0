package services

import (
	"context"
	"testing"

	"agora/backend/internal/models/dtos"
)

func TestBoardService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner_o", nil)
	ana := env.register(t, "ana_k", nil)

	created, err := env.boards.CreateBoard(ctx, owner, dtos.CreateBoardReq{Title: "  Gophers  ", About: ptr("all things Go")})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if created.BoardID == 0 || created.AffiliateID == 0 || created.EntityID == 0 {
		t.Fatalf("Expected ids, got %+v", created)
	}

	if _, err := env.follows.Follow(ctx, ana.MemberID, created.AffiliateID); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	board, err := env.boards.GetBoard(ctx, created.BoardID)
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if board.Title != "Gophers" || board.OwnerMemberID != owner.MemberID || board.IsPrivate {
		t.Errorf("Unexpected board: %+v", board)
	}
	if board.Followers != 1 {
		t.Errorf("Expected 1 follower, got %d", board.Followers)
	}

	_, err = env.boards.GetBoard(ctx, 999)
	expectKind(t, err, KindNotFound)

	_, err = env.boards.CreateBoard(ctx, owner, dtos.CreateBoardReq{Title: " "})
	expectKind(t, err, KindInvalid)
}

func TestValidUsername(t *testing.T) {
	cases := map[string]bool{
		"ana_k":  true,
		"A1":     false,
		"123":    false,
		"abc123": true,
		"a b c":  false,
		"_____":  true,
	}
	for name, want := range cases {
		if got := ValidUsername(name); got != want {
			t.Errorf("ValidUsername(%q) = %v, want %v", name, got, want)
		}
	}
}
