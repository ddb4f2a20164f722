package auth

import (
	"context"
	"time"

	"chapter-points-go/internal/domain/member"
)

type Repository interface {
	// CreateMember inserts a new registration. A duplicate email surfaces as
	// ErrEmailTaken.
	CreateMember(ctx context.Context, m *member.Member) error
	FindMemberByEmail(ctx context.Context, email string) (*member.Member, error)
	FindMemberByID(ctx context.Context, memberID int64) (*member.Member, error)
	SetPassword(ctx context.Context, memberID int64, passwordHash string) error

	CreateResetToken(ctx context.Context, token *PasswordResetToken) error
	// ConsumeResetToken marks an unused, unexpired token as used and returns
	// the member it belongs to. Anything else is ErrResetTokenInvalid.
	ConsumeResetToken(ctx context.Context, token string, now time.Time) (int64, error)
}
