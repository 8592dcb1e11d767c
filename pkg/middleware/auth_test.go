package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testJWT = utils.JWTConfig{Secret: "test-secret", ExpiryHours: 168}

func issueToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, _, err := utils.GenerateToken(testJWT, userID, role)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func contextEcho(t *testing.T) (http.Handler, *uuid.UUID, *string) {
	t.Helper()
	var gotID uuid.UUID
	var gotRole string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
			gotID = id
		}
		if role, ok := utils.GetRoleFromContext(r.Context()); ok {
			gotRole = role
		}
		w.WriteHeader(http.StatusOK)
	})
	return handler, &gotID, &gotRole
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestRequireAuth(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()

	t.Run("valid token passes context through", func(t *testing.T) {
		next, gotID, gotRole := contextEcho(t)
		handler := RequireAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, userID, "admin"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if *gotID != userID {
			t.Errorf("context user id = %s, want %s", *gotID, userID)
		}
		if *gotRole != "ADMIN" {
			t.Errorf("context role = %q, want ADMIN", *gotRole)
		}
	})

	t.Run("missing header is 401", func(t *testing.T) {
		next, _, _ := contextEcho(t)
		handler := RequireAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if msg := errorBody(t, rec); msg != "Missing token" {
			t.Errorf("error = %q, want Missing token", msg)
		}
	})

	t.Run("tampered token is 401", func(t *testing.T) {
		next, _, _ := contextEcho(t)
		handler := RequireAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, userID, "USER")+"x")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if msg := errorBody(t, rec); msg != "Invalid token" {
			t.Errorf("error = %q, want Invalid token", msg)
		}
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		next, _, _ := contextEcho(t)
		handler := RequireAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRoles(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()

	serve := func(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
		t.Helper()
		next, _, _ := contextEcho(t)
		handler := RequireAuth(testJWT, logger)(RequireRoles(logger, allowed...)(next))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, userID, role))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed role passes", func(t *testing.T) {
		if rec := serve(t, "ADMIN", "ADMIN"); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("role match is case insensitive", func(t *testing.T) {
		if rec := serve(t, "owner", "OWNER"); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		rec := serve(t, "USER", "ADMIN")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if msg := errorBody(t, rec); msg != "Forbidden" {
			t.Errorf("error = %q, want Forbidden", msg)
		}
	})

	t.Run("without auth context is 401", func(t *testing.T) {
		next, _, _ := contextEcho(t)
		handler := RequireRoles(logger, "ADMIN")(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()

	t.Run("no token proceeds unauthenticated", func(t *testing.T) {
		next, gotID, _ := contextEcho(t)
		handler := OptionalAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if *gotID != uuid.Nil {
			t.Errorf("expected no user context, got %s", *gotID)
		}
	})

	t.Run("valid token attaches context", func(t *testing.T) {
		next, gotID, gotRole := contextEcho(t)
		handler := OptionalAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, userID, "USER"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if *gotID != userID {
			t.Errorf("context user id = %s, want %s", *gotID, userID)
		}
		if *gotRole != "USER" {
			t.Errorf("context role = %q, want USER", *gotRole)
		}
	})

	t.Run("invalid token still proceeds", func(t *testing.T) {
		next, gotID, _ := contextEcho(t)
		handler := OptionalAuth(testJWT, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if *gotID != uuid.Nil {
			t.Errorf("expected no user context, got %s", *gotID)
		}
	})
}
