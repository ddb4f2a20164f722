package auth

import (
	"time"

	"chapter-points-go/internal/domain/member"
)

// Claims is what a verified token resolves to. The role is embedded in the
// token at issue time; a role change does not invalidate tokens already out
// there, they simply age out with exp.
type Claims struct {
	MemberID int64
	Role     member.Role
}

type PasswordResetToken struct {
	Token     string    `gorm:"type:uuid;primaryKey"`
	MemberID  int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}
