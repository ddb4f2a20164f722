package points

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusApproved, StatusDenied:
		return Status(value), true
	default:
		return "", false
	}
}

// PointRequest is a proposal to award points to a member. It is reviewed at
// most once: status only ever moves pending -> approved or pending -> denied.
type PointRequest struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	GiverID           int64      `gorm:"not null;index" json:"giver_id"`
	RecipientID       int64      `gorm:"not null;index" json:"recipient_id"`
	Points            int64      `gorm:"not null" json:"points"`
	Reason            string     `gorm:"not null" json:"reason"`
	Status            Status     `gorm:"type:text;not null;default:pending;index" json:"status"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewedByAdminID *int64     `json:"reviewed_by_admin_id,omitempty"`
	DenyReason        *string    `json:"deny_reason,omitempty"`
}

// PointTransaction is the append-only record of a credit actually applied to a
// balance. The unique RequestID is what makes double-crediting impossible.
type PointTransaction struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	RequestID     int64     `gorm:"not null;uniqueIndex" json:"request_id"`
	BeneficiaryID int64     `gorm:"not null;index" json:"beneficiary_id"`
	SourceID      int64     `gorm:"not null" json:"source_id"`
	Points        int64     `gorm:"not null" json:"points"`
	Reason        string    `gorm:"not null" json:"reason"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// RequestWithNames is the admin list view: a request joined with both parties'
// display names.
type RequestWithNames struct {
	PointRequest
	GiverName     string `gorm:"column:giver_name" json:"giver_name"`
	RecipientName string `gorm:"column:recipient_name" json:"recipient_name"`
}

type CreateRequestInput struct {
	GiverID     int64
	RecipientID int64
	Points      int64
	Reason      string
}
