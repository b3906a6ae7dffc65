package service

import (
	"context"
	"strings"
	"testing"

	"hogar-conectado/internal/domain"
	"hogar-conectado/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func newTestUserService() UserService {
	return NewUserService(newMockUserRepository(), newMockRefreshTokenRepository(), "test-secret")
}

// Feature: quotation-platform, Property 9: Registration creates hashed passwords
// Validates: Requirements 10.1
func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are stored as valid bcrypt hashes", prop.ForAll(
		func(username string, password string, fullName string) bool {
			service := newTestUserService()
			ctx := context.Background()

			user, err := service.Register(ctx, username, password, fullName, domain.RoleSeller)
			if err != nil {
				// Registration can legitimately fail on odd input; skip
				return true
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: password stored as plaintext for %s", username)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: hash does not verify: %v", err)
				return false
			}
			return true
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 3 }),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 8 && len(s) <= 60 }),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	service := newTestUserService()

	_, err := service.Register(context.Background(), "vendedor1", "password123", "Vendedor Uno", "superuser")
	if err != ErrInvalidRole {
		t.Errorf("Register with unknown role: err = %v, want ErrInvalidRole", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "vendedor1", "password123", "Vendedor Uno", domain.RoleSeller); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := service.Register(ctx, "vendedor1", "otherpassword", "Otro", domain.RoleSeller)
	if err != repository.ErrUserAlreadyExists {
		t.Errorf("duplicate Register: err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLogin_IssuesValidTokens(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	registered, err := service.Register(ctx, "admin1", "password123", "Admin Uno", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	accessToken, refreshToken, user, err := service.Login(ctx, "admin1", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Login returned wrong user")
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("Login returned empty tokens")
	}

	claims, err := service.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, registered.ID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("claims.Role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "admin1", "password123", "Admin Uno", domain.RoleAdmin); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, _, err := service.Login(ctx, "admin1", "wrongpassword")
	if err != ErrInvalidCredentials {
		t.Errorf("Login with wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, _, _, err = service.Login(ctx, "nobody", "password123")
	if err != ErrInvalidCredentials {
		t.Errorf("Login with unknown username: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshToken_Lifecycle(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "seller1", "password123", "Vendedor", domain.RoleSeller); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, refreshToken, _, err := service.Login(ctx, "seller1", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	newAccess, err := service.RefreshToken(ctx, refreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if _, err := service.ValidateToken(newAccess); err != nil {
		t.Errorf("refreshed access token does not validate: %v", err)
	}

	// After logout the refresh token is revoked
	if err := service.Logout(ctx, refreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := service.RefreshToken(ctx, refreshToken); err == nil {
		t.Error("RefreshToken succeeded after logout, want error")
	}
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	service := newTestUserService()

	for _, token := range []string{"", "not-a-jwt", strings.Repeat("x", 100)} {
		if _, err := service.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) succeeded, want error", token)
		}
	}
}
