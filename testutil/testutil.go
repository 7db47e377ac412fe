// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/livetally/cliparse"
	"github.com/danielhkuo/livetally/db"
	"github.com/danielhkuo/livetally/models"
	"github.com/danielhkuo/livetally/store"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full
// schema. Each call gets its own database, so tests are isolated.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", hex.EncodeToString(b))

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps the shared in-memory database alive
	// and sidesteps SQLite write-lock contention under concurrency.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a config suitable for tests
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5000,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		VoterHashSalt: "test-voter-salt",
		AllowedOrigin: "*",
	}
}

// CreateTestPoll creates a single-choice poll and returns it
func CreateTestPoll(t *testing.T, s *store.Store, question string, options ...string) *models.Poll {
	t.Helper()

	poll, err := s.Create(context.Background(), question, options, models.PollSettings{})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CreateMultiPoll creates a poll that allows multi-select
func CreateMultiPoll(t *testing.T, s *store.Store, question string, options ...string) *models.Poll {
	t.Helper()

	poll, err := s.Create(context.Background(), question, options, models.PollSettings{AllowMulti: true})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}
