package points

import (
	"context"
	"time"
)

type Repository interface {
	// Transaction runs fn inside one atomic unit of work. Everything fn does
	// through the passed repository commits together or not at all.
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateRequest(ctx context.Context, request *PointRequest) error
	GetRequest(ctx context.Context, requestID int64) (*PointRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]RequestWithNames, error)
	ListForRecipient(ctx context.Context, memberID int64, limit int) ([]RequestWithNames, error)
	ListForGiver(ctx context.Context, memberID int64, limit int) ([]RequestWithNames, error)

	// FindApprovedMembers reports, for each requested id, whether an approved
	// member with that id exists. Missing ids are simply absent from the map.
	FindApprovedMembers(ctx context.Context, memberIDs []int64) (map[int64]bool, error)

	// MarkReviewed is the compare-and-set transition pending -> status. It
	// reports false when the request no longer matched (already reviewed or
	// nonexistent).
	MarkReviewed(ctx context.Context, requestID, adminID int64, status Status, denyReason *string, at time.Time) (bool, error)

	// CreateTransaction inserts the ledger entry for an approved request. A
	// duplicate request id surfaces as ErrAlreadyApproved.
	CreateTransaction(ctx context.Context, transaction *PointTransaction) error

	// IncrementPoints applies delta to a member balance and returns the new
	// committed balance.
	IncrementPoints(ctx context.Context, memberID, delta int64) (int64, error)
}
