//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "users-api"
	ConsumerName = "users-portal"

	StateUsersBaseline = "no users exist"
	StateUserExists    = "user 3f1c2a9e-8d4b-4c7e-9a61-2b5d7e0f4a10 exists"
	StateUserMissing   = "no user with id 9b2e6c1d-5a7f-4e3b-8c90-1d2f3a4b5c6d"
)

const (
	ExistingUserID = "3f1c2a9e-8d4b-4c7e-9a61-2b5d7e0f4a10"
	MissingUserID  = "9b2e6c1d-5a7f-4e3b-8c90-1d2f3a4b5c6d"

	UUIDPattern = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	DatePattern = `^\d{4}-\d{2}-\d{2}$`
	ExampleDate = "2024-06-12"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the users portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload provides stable create/update data for user interactions.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"fullName": "Pact User",
		"phone":    "+1234567890",
		"email":    "pact.user@example.com",
		"password": "pact-pass",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
