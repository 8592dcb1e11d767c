package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"store-rating/internal/data/entity"
	"store-rating/internal/dto/request"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 168},
	}
}

func validSignup() *request.SignupRequest {
	return &request.SignupRequest{
		Name:     "Anderson Marcus Whitfield",
		Email:    "anderson@example.com",
		Password: "Secret#99",
	}
}

func TestSignupAndLogin(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())
	ctx := context.Background()

	summary, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if summary.Role != entity.RoleUser {
		t.Errorf("role = %s, want USER default", summary.Role)
	}
	if summary.Email != "anderson@example.com" {
		t.Errorf("email = %q", summary.Email)
	}

	// stored hash is not the plain password
	stored, _ := f.users.FindByEmail(ctx, "anderson@example.com")
	if stored == nil || stored.PasswordHash == "Secret#99" {
		t.Fatal("password stored in plain text")
	}

	auth, err := svc.Login(ctx, &request.LoginRequest{
		Email:    "anderson@example.com",
		Password: "Secret#99",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("empty token")
	}
	if auth.User.ID != summary.ID {
		t.Errorf("login user id = %s, want %s", auth.User.ID, summary.ID)
	}

	// the token carries the user id and role
	claims, err := utils.ParseToken(testConfig().JWT, auth.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != summary.ID {
		t.Errorf("token subject = %q, want %q", claims.Subject, summary.ID)
	}
	if claims.Role != "USER" {
		t.Errorf("token role = %q, want USER", claims.Role)
	}
}

func TestSignupValidation(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*request.SignupRequest)
	}{
		{"nineteen char name", func(r *request.SignupRequest) { r.Name = strings.Repeat("a", 19) }},
		{"sixty one char name", func(r *request.SignupRequest) { r.Name = strings.Repeat("a", 61) }},
		{"bad email", func(r *request.SignupRequest) { r.Email = "nope" }},
		{"short password", func(r *request.SignupRequest) { r.Password = "Ab#1" }},
		{"no uppercase", func(r *request.SignupRequest) { r.Password = "secret#99" }},
		{"no special", func(r *request.SignupRequest) { r.Password = "Secret999" }},
		{"unknown role", func(r *request.SignupRequest) { r.Role = "MANAGER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(req)
			_, err := svc.Signup(ctx, req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}

	// mixed-case role is accepted and normalized
	req := validSignup()
	req.Role = "owner"
	summary, err := svc.Signup(ctx, req)
	if err != nil {
		t.Fatalf("Signup with mixed-case role: %v", err)
	}
	if summary.Role != entity.RoleOwner {
		t.Errorf("role = %s, want OWNER", summary.Role)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("first Signup: %v", err)
	}

	_, err := svc.Signup(ctx, validSignup())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err.Error() != "Email already in use" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestLoginFailures(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "Secret#99"},
		{"wrong password", "anderson@example.com", "Wrong#999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &request.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("err = %v, want ErrUnauthorized", err)
			}
			// unknown email and wrong password are indistinguishable
			if err.Error() != "Invalid credentials" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())
	ctx := context.Background()

	summary, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	userID := uuid.MustParse(summary.ID)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, userID, &request.UpdatePasswordRequest{
			CurrentPassword: "Wrong#999",
			NewPassword:     "Updated#1",
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, userID, &request.UpdatePasswordRequest{
			CurrentPassword: "Secret#99",
			NewPassword:     "weak",
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, uuid.New(), &request.UpdatePasswordRequest{
			CurrentPassword: "Secret#99",
			NewPassword:     "Updated#1",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("success rotates the credential", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, userID, &request.UpdatePasswordRequest{
			CurrentPassword: "Secret#99",
			NewPassword:     "Updated#1",
		})
		if err != nil {
			t.Fatalf("UpdatePassword: %v", err)
		}

		if _, err := svc.Login(ctx, &request.LoginRequest{Email: "anderson@example.com", Password: "Secret#99"}); !errors.Is(err, ErrUnauthorized) {
			t.Error("old password should no longer work")
		}
		if _, err := svc.Login(ctx, &request.LoginRequest{Email: "anderson@example.com", Password: "Updated#1"}); err != nil {
			t.Errorf("new password should work, got %v", err)
		}
	})
}
