package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openmaturity/maturity/internal/models"
)

type AuthStore interface {
	FindUserByEmail(email string) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserByOAuth(provider, oauthID string) (*models.User, error)
	InsertUser(u *models.User) (*models.User, error)
}

type TokenSigner func(uid, username string, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func(prefix string, n int) string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token    string
	UserID   string
	Username string
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

// Register creates a password-backed account. Collisions on username or
// email are reported as conflicts before the row is attempted; the storage
// unique constraints remain the atomic backstop.
func (s *AuthService) Register(username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("username/email/password required")
	}
	if err := s.checkAvailable(username, email); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.store.InsertUser(&models.User{
		ID:           s.idGen("u", 12),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}
	return s.issueToken(u)
}

// RegisterOAuth creates an account backed by an external identity instead of
// a password. Registering the same (provider, oauthID) pair twice conflicts.
func (s *AuthService) RegisterOAuth(username, email, provider, oauthID string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	provider = strings.TrimSpace(provider)
	oauthID = strings.TrimSpace(oauthID)
	if username == "" || email == "" {
		return nil, NewInvalidError("username/email required")
	}
	if provider == "" || oauthID == "" {
		return nil, NewInvalidError("oauth provider and id required")
	}
	if err := s.checkAvailable(username, email); err != nil {
		return nil, err
	}
	existing, err := s.store.FindUserByOAuth(provider, oauthID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("oauth identity already registered")
	}
	u, err := s.store.InsertUser(&models.User{
		ID:            s.idGen("u", 12),
		Username:      username,
		Email:         email,
		OAuthProvider: provider,
		OAuthID:       oauthID,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, err
	}
	return s.issueToken(u)
}

// Login verifies a password credential. OAuth-backed accounts have no
// password hash and always fail password login.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	return s.issueToken(u)
}

// LoginOAuth resolves an external identity to an existing account.
func (s *AuthService) LoginOAuth(provider, oauthID string) (*AuthResult, error) {
	provider = strings.TrimSpace(provider)
	oauthID = strings.TrimSpace(oauthID)
	if provider == "" || oauthID == "" {
		return nil, NewInvalidError("oauth provider and id required")
	}
	u, err := s.store.FindUserByOAuth(provider, oauthID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("unknown oauth identity")
	}
	return s.issueToken(u)
}

func (s *AuthService) checkAvailable(username, email string) error {
	if existing, err := s.store.FindUserByEmail(email); err != nil {
		return err
	} else if existing != nil {
		return NewConflictError("email exists")
	}
	if existing, err := s.store.FindUserByUsername(username); err != nil {
		return err
	} else if existing != nil {
		return NewConflictError("username exists")
	}
	return nil
}

func (s *AuthService) issueToken(u *models.User) (*AuthResult, error) {
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: u.ID, Username: u.Username}, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
