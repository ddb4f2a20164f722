package member

import "context"

type Repository interface {
	GetByID(ctx context.Context, memberID int64) (*Member, error)
	ListUnapproved(ctx context.Context) ([]Member, error)
	ListApproved(ctx context.Context) ([]Member, error)
	Leaderboard(ctx context.Context) ([]Member, error)
	MarkApproved(ctx context.Context, memberID int64) (bool, error)
	DeleteUnapproved(ctx context.Context, memberID int64) (bool, error)
	Update(ctx context.Context, memberID int64, role Role, points int64) error
	Delete(ctx context.Context, memberID int64) (bool, error)
}
