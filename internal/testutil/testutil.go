// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"lawdesk/internal/db"
	"lawdesk/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Uses TEST_DATABASE_URL and skips the test when it is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	if _, err := database.Pool.Exec(ctx, "DELETE FROM query_log"); err != nil {
		database.Close()
		t.Fatalf("failed to clear query_log: %v", err)
	}

	cleanup := func() {
		if _, err := database.Pool.Exec(ctx, "DELETE FROM query_log"); err != nil {
			t.Errorf("failed to clean up query_log: %v", err)
		}
		database.Close()
	}

	return database, cleanup
}

// SeedQueryLog inserts count entries with the given outcome and topic.
func SeedQueryLog(t *testing.T, database *db.DB, outcome, topic string, count int) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < count; i++ {
		entry := &models.QueryLog{Query: "seeded " + topic, Outcome: outcome, Topic: topic}
		if err := database.InsertQueryLog(ctx, entry); err != nil {
			t.Fatalf("failed to seed query log: %v", err)
		}
	}
}
