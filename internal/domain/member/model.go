package member

import "time"

type Role string

const (
	RoleMember         Role = "member"
	RolePositionHolder Role = "position-holder"
	RoleAdmin          Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleMember, RolePositionHolder, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

type Member struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:text;not null;default:member" json:"position"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	Approved     bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type UpdateMemberInput struct {
	MemberID int64
	ActorID  int64
	Role     string
	Points   int64
}
