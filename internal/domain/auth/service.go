package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"chapter-points-go/internal/domain/member"
)

const minPasswordLength = 8

type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	BcryptCost    int
}

type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
	resetTTL time.Duration
	cost     int
	now      func() time.Time
}

func NewService(repo Repository, cfg Config) *Service {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = 72 * time.Hour
	}
	resetTTL := cfg.ResetTokenTTL
	if resetTTL == 0 {
		resetTTL = time.Hour
	}

	return &Service{
		repo:     repo,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: tokenTTL,
		resetTTL: resetTTL,
		cost:     cost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an unapproved member with zero points. The account cannot
// log in until an admin approves it.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*member.Member, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	m := member.Member{
		FullName:     firstName + " " + lastName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         member.RoleMember,
		Points:       0,
		Approved:     false,
	}
	if err := s.repo.CreateMember(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Login authenticates an approved member and returns a signed token plus the
// member record. Unknown email and wrong password are indistinguishable on
// purpose.
func (s *Service) Login(ctx context.Context, email, password string) (string, *member.Member, error) {
	m, err := s.repo.FindMemberByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !m.Approved {
		return "", nil, ErrNotApproved
	}

	token, err := s.issueToken(m)
	if err != nil {
		return "", nil, err
	}
	return token, m, nil
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(m *member.Member) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Role: string(m.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(m.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken resolves a bearer token to its claims. The role comes from the
// token itself, not from a registry lookup.
func (s *Service) VerifyToken(tokenString string) (Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	memberID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || memberID <= 0 {
		return Claims{}, ErrInvalidToken
	}
	role, ok := member.ParseRole(claims.Role)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	return Claims{MemberID: memberID, Role: role}, nil
}

// ForgotPassword creates a single-use reset token. It reports success even for
// unknown emails so the endpoint cannot be used to probe accounts. Delivery of
// the token is someone else's problem.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*PasswordResetToken, error) {
	m, err := s.repo.FindMemberByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token := PasswordResetToken{
		Token:     uuid.NewString(),
		MemberID:  m.ID,
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.repo.CreateResetToken(ctx, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	// Tokens are UUIDs; anything else can never match a stored token, and the
	// storage layer would reject the value at the column type.
	token = strings.TrimSpace(token)
	if _, err := uuid.Parse(token); err != nil {
		return ErrResetTokenInvalid
	}

	memberID, err := s.repo.ConsumeResetToken(ctx, token, s.now())
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.SetPassword(ctx, memberID, string(hash))
}
