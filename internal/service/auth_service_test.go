package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/testutil"
)

func TestLogin(t *testing.T) {
	t.Run("issues a verifiable token for valid credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, issuer := testutil.NewTestAuthService(t, db)

		agent := testutil.NewAgent().
			WithEmail("ada@example.com").
			WithPassword("hunter2").
			Build(t, db)

		token, err := svc.Login(context.Background(), "ada@example.com", "hunter2")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("Issued token failed verification: %v", err)
		}
		if claims.AgentID != agent.ID {
			t.Errorf("Token AgentID = %q, want %q", claims.AgentID, agent.ID)
		}
		if claims.Email != "ada@example.com" {
			t.Errorf("Token Email = %q, want ada@example.com", claims.Email)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _ := testutil.NewTestAuthService(t, db)

		testutil.NewAgent().WithEmail("ada@example.com").WithPassword("hunter2").Build(t, db)

		_, err := svc.Login(context.Background(), "ada@example.com", "wrong")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _ := testutil.NewTestAuthService(t, db)

		_, err := svc.Login(context.Background(), "nobody@example.com", "hunter2")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects an agent without a password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _ := testutil.NewTestAuthService(t, db)

		testutil.NewAgent().WithEmail("nopass@example.com").Build(t, db)

		_, err := svc.Login(context.Background(), "nopass@example.com", "anything")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}
