// Package pgtest starts throwaway Postgres containers for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the Postgres image used by integration tests
const Image = "postgres:15-alpine"

// StartContainer launches a container for use from TestMain.
// terminate is never nil.
func StartContainer(ctx context.Context) (connStr string, terminate func(), err error) {
	terminate = func() {}

	// testcontainers panics when Docker is missing
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic starting postgres container: %v", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		Image,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", terminate, fmt.Errorf("failed to start postgres container: %w", err)
	}

	terminate = func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", func() {}, fmt.Errorf("failed to get connection string: %w", err)
	}
	return connStr, terminate, nil
}

// Start launches a container scoped to t and returns its connection string.
// The test is skipped in -short mode or when Docker is not available.
func Start(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	connStr, terminate, err := StartContainer(context.Background())
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}
	t.Cleanup(terminate)
	return connStr
}
