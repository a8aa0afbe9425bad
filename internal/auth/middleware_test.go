package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type fakeAccountRepo struct {
	byID       map[int64]*domain.Account
	byUsername map[string]*domain.Account
	lookupErr  error
}

func newFakeAccountRepo(accounts ...*domain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{
		byID:       make(map[int64]*domain.Account),
		byUsername: make(map[string]*domain.Account),
	}
	for _, account := range accounts {
		repo.byID[account.ID] = account
		repo.byUsername[account.Username] = account
	}
	return repo
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = int64(len(r.byID) + 1)
	r.byID[account.ID] = account
	r.byUsername[account.Username] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	account, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	account, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.PasswordHash = hash
	return nil
}

func (r *fakeAccountRepo) delete(id int64) {
	if account, ok := r.byID[id]; ok {
		delete(r.byUsername, account.Username)
		delete(r.byID, id)
	}
}

// newGuardedApp wires the identity guard in front of a probe route that
// reports the resolved account.
func newGuardedApp(tm *TokenManager, repo *fakeAccountRepo) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})

	guard := NewMiddleware(tm, repo)
	app.Get("/whoami", guard.Handle, func(c *fiber.Ctx) error {
		account, ok := AccountFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"username": account.Username, "role": account.Role})
	})
	return app
}

func responseMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var parsed map[string]any
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	msg, _ := parsed["message"].(string)
	return msg
}

func TestIdentityGuard(t *testing.T) {
	account := &domain.Account{ID: 1, Username: "bruce", Role: domain.RoleSecurityAdmin}
	repo := newFakeAccountRepo(account)
	tm := NewTokenManager("test-secret")
	app := newGuardedApp(tm, repo)

	token, _, err := tm.Generate(account)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	t.Run("valid token resolves account", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(TokenHeader, token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var parsed map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if parsed["username"] != "bruce" {
			t.Errorf("username = %q, want bruce", parsed["username"])
		}
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		if msg := responseMessage(t, resp.Body); !strings.Contains(msg, "not found") {
			t.Errorf("message = %q, want token-not-found wording", msg)
		}
	})

	t.Run("corrupted token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(TokenHeader, token[:len(token)-6])

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		if msg := responseMessage(t, resp.Body); msg != "invalid token" {
			t.Errorf("message = %q, want %q", msg, "invalid token")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			AccountID: account.ID,
			Role:      account.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(TokenHeader, expired)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		if msg := responseMessage(t, resp.Body); !strings.Contains(msg, "expired") {
			t.Errorf("message = %q, want expiry wording", msg)
		}
	})

	t.Run("credential store outage is not an invalid token", func(t *testing.T) {
		repo.lookupErr = errors.New("connection refused")
		defer func() { repo.lookupErr = nil }()

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(TokenHeader, token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != 500 {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
		// A valid token must not be reported as bad when the store is
		// down, or clients would discard it and re-login in a loop.
		if msg := responseMessage(t, resp.Body); msg == "invalid token" {
			t.Error("store failure must not surface as an invalid token")
		}
	})

	t.Run("account deleted after issuance", func(t *testing.T) {
		ghost := &domain.Account{ID: 99, Username: "jason", Role: domain.RoleEmployee}
		repo.byID[ghost.ID] = ghost
		repo.byUsername[ghost.Username] = ghost

		ghostToken, _, err := tm.Generate(ghost)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		repo.delete(ghost.ID)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(TokenHeader, ghostToken)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		// Same message as any bad token, so deleted ids are not observable.
		if msg := responseMessage(t, resp.Body); msg != "invalid token" {
			t.Errorf("message = %q, want %q", msg, "invalid token")
		}
	})
}
