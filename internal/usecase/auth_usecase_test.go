package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talent-track/internal/domain/user"
	"talent-track/internal/pkg/jwt"
	ucauth "talent-track/internal/usecase/auth"
)

type mockUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User
	err     error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    map[uuid.UUID]user.User{},
		byEmail: map[string]user.User{},
	}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, m.err
}

func newTestJWT() jwt.Service {
	return jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestAuthUsecase_RegisterIssuesTokens(t *testing.T) {
	users := newMockUserRepo()
	uc := NewAuthUsecase(users, newTestJWT())

	usr, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    " HR@Example.com ",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if usr.Email != "hr@example.com" {
		t.Fatalf("email = %q, want normalized", usr.Email)
	}
	if usr.PasswordHash != "" {
		t.Fatal("password hash leaked from Register")
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}
}

func TestAuthUsecase_LoginWrongPassword(t *testing.T) {
	users := newMockUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	users.byEmail["hr@example.com"] = user.User{ID: uuid.New(), Email: "hr@example.com", PasswordHash: string(hash)}

	uc := NewAuthUsecase(users, newTestJWT())

	_, _, _, err := uc.Login(context.Background(), ucauth.LoginInput{Email: "hr@example.com", Password: "wrong"})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthUsecase_RefreshRotatesTokens(t *testing.T) {
	users := newMockUserRepo()
	jwtSvc := newTestJWT()
	uc := NewAuthUsecase(users, jwtSvc)

	usr, _, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "hr@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	access2, refresh2, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access2 == "" || refresh2 == "" {
		t.Fatal("expected rotated tokens")
	}

	claims, err := jwtSvc.ValidateToken(access2)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != usr.ID {
		t.Fatalf("user id = %s, want %s", claims.UserID, usr.ID)
	}
}

func TestAuthUsecase_RefreshRejectsAccessToken(t *testing.T) {
	users := newMockUserRepo()
	jwtSvc := newTestJWT()
	uc := NewAuthUsecase(users, jwtSvc)

	id := uuid.New()
	users.byID[id] = user.User{ID: id, Email: "hr@example.com"}

	access, err := jwtSvc.GenerateAccessToken(id, "hr@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestAuthUsecase_RefreshUnknownUser(t *testing.T) {
	users := newMockUserRepo()
	jwtSvc := newTestJWT()
	uc := NewAuthUsecase(users, jwtSvc)

	refresh, err := jwtSvc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken", err)
	}
}
