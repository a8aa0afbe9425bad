package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type fakeAccountRepo struct {
	byID       map[int64]*domain.Account
	byUsername map[string]*domain.Account
	nextID     int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:       make(map[int64]*domain.Account),
		byUsername: make(map[string]*domain.Account),
		nextID:     1,
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = r.nextID
	r.nextID++
	r.byID[account.ID] = account
	r.byUsername[account.Username] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
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

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", BcryptCost: 4}}
}

func newAuthServiceWithAccount(t *testing.T, username, password string, role domain.Role) (*AuthService, *fakeAccountRepo) {
	t.Helper()
	repo := newFakeAccountRepo()
	svc := NewAuthService(testConfig(), repo, nil)

	if _, _, err := svc.SeedAccount(context.Background(), username, password, role); err != nil {
		t.Fatalf("SeedAccount() error = %v", err)
	}
	return svc, repo
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := newAuthServiceWithAccount(t, "bruce", "gotham", domain.RoleSecurityAdmin)

	account, token, expiresAt, err := svc.Login(context.Background(), "bruce", "gotham")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if account.Username != "bruce" || account.Role != domain.RoleSecurityAdmin {
		t.Errorf("account = %+v, want bruce/security_admin", account)
	}
	if expiresAt.IsZero() {
		t.Error("expiresAt should be set")
	}

	claims, err := svc.TokenManager().Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	stored := repo.byUsername["bruce"]
	if claims.AccountID != stored.ID {
		t.Errorf("claims.AccountID = %d, want %d", claims.AccountID, stored.ID)
	}
	if claims.Role != stored.Role {
		t.Errorf("claims.Role = %q, want %q", claims.Role, stored.Role)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newAuthServiceWithAccount(t, "bruce", "gotham", domain.RoleSecurityAdmin)

	_, _, _, unknownErr := svc.Login(context.Background(), "joker", "anything")
	_, _, _, wrongErr := svc.Login(context.Background(), "bruce", "wrong-password")

	unknown := apperrors.ToDomainError(unknownErr)
	wrong := apperrors.ToDomainError(wrongErr)

	if unknown.Code != apperrors.CodeInvalidCredentials {
		t.Errorf("unknown-user code = %q, want %q", unknown.Code, apperrors.CodeInvalidCredentials)
	}
	if unknown.Code != wrong.Code || unknown.Message != wrong.Message || unknown.HTTPStatus != wrong.HTTPStatus {
		t.Errorf("unknown-user and wrong-password responses differ: %+v vs %+v", unknown, wrong)
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	svc, _ := newAuthServiceWithAccount(t, "bruce", "gotham", domain.RoleSecurityAdmin)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"both empty", "", ""},
		{"no password", "bruce", ""},
		{"no username", "", "gotham"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tt.username, tt.password)
			domainErr := apperrors.ToDomainError(err)
			if domainErr.Code != apperrors.CodeMissingCredentials {
				t.Errorf("code = %q, want %q", domainErr.Code, apperrors.CodeMissingCredentials)
			}
			if domainErr.HTTPStatus != 401 {
				t.Errorf("status = %d, want 401", domainErr.HTTPStatus)
			}
		})
	}
}

func TestLoginIsCaseSensitive(t *testing.T) {
	svc, _ := newAuthServiceWithAccount(t, "bruce", "gotham", domain.RoleSecurityAdmin)

	_, _, _, err := svc.Login(context.Background(), "Bruce", "gotham")
	if apperrors.ToDomainError(err).Code != apperrors.CodeInvalidCredentials {
		t.Errorf("username match must be exact, got error %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthServiceWithAccount(t, "alfred", "pennyworth", domain.RoleEmployee)
	account := repo.byUsername["alfred"]

	if err := svc.ChangePassword(context.Background(), account, "wrong", "new-password"); err == nil {
		t.Error("ChangePassword() with wrong current password should fail")
	}

	if err := svc.ChangePassword(context.Background(), account, "pennyworth", "batcave"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if err := auth.ComparePassword(repo.byUsername["alfred"].PasswordHash, "batcave"); err != nil {
		t.Error("new password should verify after change")
	}
}

func TestSeedAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(testConfig(), repo, nil)
	ctx := context.Background()

	account, created, err := svc.SeedAccount(ctx, "selina", "kyle", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("SeedAccount() error = %v", err)
	}
	if !created {
		t.Error("first seed should create the account")
	}
	if account.PasswordHash == "kyle" {
		t.Error("password must be stored hashed")
	}

	_, created, err = svc.SeedAccount(ctx, "selina", "kyle", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("SeedAccount() second call error = %v", err)
	}
	if created {
		t.Error("second seed must not create a duplicate")
	}

	if !errors.Is(func() error {
		_, err := repo.GetByUsername(ctx, "harvey")
		return err
	}(), pgx.ErrNoRows) {
		t.Fatal("fake repo sanity check failed")
	}

	defaulted, _, err := svc.SeedAccount(ctx, "harvey", "dent", domain.Role("district_attorney"))
	if err != nil {
		t.Fatalf("SeedAccount() error = %v", err)
	}
	if defaulted.Role != domain.RoleEmployee {
		t.Errorf("unknown role should default to employee, got %q", defaulted.Role)
	}
}
