// Package main provides a tool to create the initial admin account.
//
// It is idempotent: when a user with the given email already exists the tool
// reports it and exits without changes.
//
// Usage:
//
//	ADMIN_EMAIL=me@example.com ADMIN_PASSWORD=changeme go run ./cmd/seed
//	DB_PATH=~/Daylog/daylog.db ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/daylogapp/daylog-server/internal/service"
	"github.com/daylogapp/daylog-server/internal/store"
	"github.com/daylogapp/daylog-server/internal/store/sqlite"
)

func main() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}

	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Daylog", "daylog.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if existing, err := s.GetUserByEmail(ctx, email); err == nil {
		fmt.Printf("User %s already exists (%s), nothing to do\n", existing.Email, existing.ID)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Fatalf("Failed to look up user: %v", err)
	}

	users := service.NewUserService(s, logger)
	user, err := users.Create(ctx, service.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     "ADMIN",
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
}
