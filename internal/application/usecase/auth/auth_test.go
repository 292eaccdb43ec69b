package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and seeds default accounts", func(t *testing.T) {
		users := newFakeUserRepo()
		accounts := &fakeAccountRepo{}
		uc := NewRegisterUserUseCase(users, accounts, fakePasswordService{}, newFakeTokenService())

		out, err := uc.Execute(ctx, RegisterUserInput{Email: "  Ana@Example.com ", Name: "Ana", Password: "password1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Email != "ana@example.com" {
			t.Errorf("expected normalized email, got %q", out.User.Email)
		}
		if out.Session == nil || out.Session.UserID != out.User.ID {
			t.Fatal("expected a session for the new user")
		}
		if len(accounts.created) != 2 {
			t.Fatalf("expected 2 seeded accounts, got %d", len(accounts.created))
		}
		total := decimal.Zero
		for _, a := range accounts.created {
			if a.UserID != out.User.ID {
				t.Errorf("seeded account belongs to %s", a.UserID)
			}
			total = total.Add(a.Balance)
		}
		if !total.Equal(decimal.NewFromInt(170000)) {
			t.Errorf("expected seeded balance 170000, got %s", total)
		}
	})

	t.Run("seeding failure does not fail registration", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakeAccountRepo{err: errors.New("db down")}, fakePasswordService{}, newFakeTokenService())
		if _, err := uc.Execute(ctx, RegisterUserInput{Email: "b@example.com", Name: "B", Password: "password1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name     string
		input    RegisterUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{"missing fields", RegisterUserInput{Email: "a@example.com"}, domainerror.ErrCodeMissingFields},
		{"invalid email", RegisterUserInput{Email: "not-an-email", Name: "A", Password: "password1"}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Email: "a@example.com", Name: "A", Password: "short"}, domainerror.ErrCodeWeakPassword},
		{"duplicate email", RegisterUserInput{Email: "taken@example.com", Name: "A", Password: "password1"}, domainerror.ErrCodeEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo()
			_ = users.Create(ctx, entity.NewUser("taken@example.com", "T", "hashed:x"))
			uc := NewRegisterUserUseCase(users, &fakeAccountRepo{}, fakePasswordService{}, newFakeTokenService())

			_, err := uc.Execute(ctx, tt.input)
			var authErr *domainerror.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if authErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, authErr.Code)
			}
		})
	}
}

func TestLoginUserUseCase(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	user := entity.NewUser("ana@example.com", "Ana", "hashed:password1")
	_ = users.Create(ctx, user)
	uc := NewLoginUserUseCase(users, fakePasswordService{}, newFakeTokenService())

	t.Run("valid credentials", func(t *testing.T) {
		out, err := uc.Execute(ctx, LoginUserInput{Email: "ANA@example.com", Password: "password1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, out.User.ID)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Error("expected tokens")
		}
	})

	for _, input := range []LoginUserInput{
		{Email: "ana@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "password1"},
	} {
		t.Run("rejects "+input.Email, func(t *testing.T) {
			_, err := uc.Execute(ctx, input)
			if !errors.Is(err, domainerror.ErrInvalidCredentials) {
				t.Errorf("expected invalid credentials, got %v", err)
			}
		})
	}
}

func TestRefreshTokenUseCase(t *testing.T) {
	ctx := context.Background()
	tokens := newFakeTokenService()
	user := entity.NewUser("ana@example.com", "Ana", "")
	pair, _ := tokens.GenerateTokenPair(ctx, user.ID, user.Email, false)
	uc := NewRefreshTokenUseCase(tokens)

	out, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RefreshToken == pair.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// The consumed token cannot be used twice.
	if _, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken}); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected invalid token on reuse, got %v", err)
	}
}

func TestLogoutUserUseCase(t *testing.T) {
	ctx := context.Background()
	tokens := newFakeTokenService()
	user := entity.NewUser("ana@example.com", "Ana", "")
	pair, _ := tokens.GenerateTokenPair(ctx, user.ID, user.Email, false)

	err := NewLogoutUserUseCase(tokens).Execute(ctx, LogoutUserInput{Session: &entity.Session{UserID: user.ID}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tokens.ValidateRefreshToken(ctx, pair.RefreshToken); err == nil {
		t.Error("expected refresh token to be revoked")
	}
}

func TestEnsureDemoUserUseCase(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	accounts := &fakeAccountRepo{}
	uc := NewEnsureDemoUserUseCase(users, accounts, fakePasswordService{})
	input := EnsureDemoUserInput{Email: "demo@example.com", Name: "Demo", Password: "test123456"}

	first, created, err := uc.Execute(ctx, input)
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	second, created, err := uc.Execute(ctx, input)
	if err != nil || created {
		t.Fatalf("expected existing user, got created=%v err=%v", created, err)
	}
	if first.ID != second.ID {
		t.Error("expected the same demo user")
	}
	if len(accounts.created) != 2 {
		t.Errorf("expected accounts seeded once, got %d", len(accounts.created))
	}

	me, err := NewGetCurrentUserUseCase(users).Execute(ctx, &entity.Session{UserID: first.ID})
	if err != nil || me.Email != "demo@example.com" {
		t.Errorf("expected demo user from session, got %v, %v", me, err)
	}
}
