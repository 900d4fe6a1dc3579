package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, _ = VerifyPassword(hash, "wrong")
	if ok {
		t.Error("wrong password accepted")
	}

	ok, _ = VerifyPassword("not-a-hash", "anything")
	if ok {
		t.Error("malformed hash accepted")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(key1) != keyHexLength {
		t.Fatalf("key length: got %d, want %d", len(key1), keyHexLength)
	}

	// Second load must return the persisted key.
	key2, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if key1 != key2 {
		t.Error("key not stable across loads")
	}

	// Corrupt key fails loudly.
	if err := os.WriteFile(filepath.Join(dir, "auth.key"), []byte("short"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrGenerateKey(dir); err == nil {
		t.Error("expected error for corrupt key")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	keyHex, err := LoadOrGenerateKey(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	svc, err := NewTokenService(keyHex, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	user := &domain.User{ID: "user-1", Email: "op@example.com"}
	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "op@example.com" {
		t.Errorf("claims: %+v", claims)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject: %q", claims.Subject)
	}

	if _, err := svc.VerifyAccessToken(token + "tampered"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	keyHex, err := LoadOrGenerateKey(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewTokenService(keyHex, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user-1", Email: "op@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.VerifyAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}
