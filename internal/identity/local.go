package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"terptickets/internal/config"
	"terptickets/internal/domain"
	"terptickets/internal/port"
)

// Claims are the JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type localProvider struct {
	users port.UserRepository
	cfg   config.JWTConfig
}

// NewLocalProvider creates an Identity implementation backed by a user
// repository, with bcrypt password hashes and signed JWT sessions.
func NewLocalProvider(users port.UserRepository, cfg config.JWTConfig) port.Identity {
	return &localProvider{users: users, cfg: cfg}
}

func (p *localProvider) Register(ctx context.Context, email, password string) (*domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.UserRecord{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return p.issueSession(user)
}

func (p *localProvider) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity.Authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return p.issueSession(user)
}

func (p *localProvider) UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) error {
	if update.Empty() {
		return nil
	}
	return p.users.UpdateProfile(ctx, userID, update)
}

func (p *localProvider) CurrentUser(ctx context.Context, token string) (*domain.UserRecord, error) {
	claims, err := p.parseToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return p.users.GetByID(ctx, claims.UserID)
}

// SignOut is stateless: tokens expire on their own and there is no
// server-side revocation list.
func (p *localProvider) SignOut(ctx context.Context, token string) error {
	if _, err := p.parseToken(token); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

func (p *localProvider) issueSession(user *domain.UserRecord) (*domain.Session, error) {
	now := time.Now()
	expiresAt := now.Add(p.cfg.SessionExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    p.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing session token: %w", err)
	}

	return &domain.Session{
		Token:     signed,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Email:     user.Email,
	}, nil
}

func (p *localProvider) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
