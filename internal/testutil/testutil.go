package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"
	"gorm.io/gorm"

	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/db"
	"multiUserBlog/models"
)

// TestSecret signs session tokens in tests.
const TestSecret = "test-secret"

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// OpenInMemoryDB opens an in-memory SQLite database named after the test and
// applies migrations. The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Shared cache keeps the database alive across pooled connections.
	d, err := db.Open(db.DriverSQLite, "file:"+nameCleaner.Replace(t.Name())+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(d) })
	return d
}

// SeedUser inserts a user with the given role and a bcrypt hash of password.
func SeedUser(t *testing.T, d *gorm.DB, name, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := d.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

// NewSessions returns a session manager signing with TestSecret.
func NewSessions() *auth.SessionManager {
	return auth.NewSessionManager(TestSecret, time.Hour)
}

// IssueToken returns a signed session token for userID.
func IssueToken(t *testing.T, userID int64) string {
	t.Helper()
	tok, _, err := NewSessions().Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}

// CtxWithBearerOutgoing attaches the token to outgoing gRPC metadata, for client-side calls.
func CtxWithBearerOutgoing(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
