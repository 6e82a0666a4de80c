package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/requestdata"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testLogger(t), "test-secret")
	userID := uuid.New()

	token, err := svc.IssueToken(userID, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatal("expected request data in context")
	}
	if rd.UserID != userID {
		t.Errorf("user id = %s, want %s", rd.UserID, userID)
	}
	if rd.TokenString != token {
		t.Errorf("token string not carried into context")
	}
}

func TestAuthService_RejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(testLogger(t), "secret-a")
	verifier := NewAuthService(testLogger(t), "secret-b")

	token, err := issuer.IssueToken(uuid.New(), time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := verifier.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(testLogger(t), "test-secret")

	token, err := svc.IssueToken(uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := svc.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAuthService_RejectsGarbage(t *testing.T) {
	svc := NewAuthService(testLogger(t), "test-secret")
	if _, err := svc.SetContextFromToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
