package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"agora/backend/internal/auth"
	"agora/backend/internal/config"
	"agora/backend/internal/db"
	"agora/backend/internal/db/repositories"

	"github.com/spf13/pflag"
)

// token_gen mints a bearer token for an existing member, for local testing
func main() {
	username := pflag.StringP("username", "u", "", "member to mint the token for")
	pflag.Parse()

	if *username == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	sqlDB, err := db.InitSQLX(cfg.Database)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer sqlDB.Close()

	member, err := repositories.NewMemberQueryRepository(sqlDB).GetExtendedByUsername(context.Background(), *username)
	if err != nil {
		log.Fatalf("lookup %q: %v", *username, err)
	}

	token, claims, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL).Issue(auth.Identity{
		EntityID:    member.EntityID,
		AffiliateID: member.AffiliateID,
		MemberID:    member.MemberID,
		Username:    member.Username,
	})
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Printf("Bearer %s\n", token)
	fmt.Fprintf(os.Stderr, "member_id=%d expires_at=%s\n", member.MemberID, claims.ExpiresAt.Time.Format("2006-01-02T15:04:05Z07:00"))
}
