package points

import (
	"context"
	"strings"
	"time"
)

// historyLimit bounds the self-service history views.
const historyLimit = 100

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// CreateRequest validates the payload and both parties, then inserts a pending
// request. All validation happens before any write.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*PointRequest, error) {
	if input.RecipientID <= 0 {
		return nil, ErrRecipientRequired
	}
	if input.Points <= 0 {
		return nil, ErrInvalidPoints
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	approved, err := s.repo.FindApprovedMembers(ctx, []int64{input.GiverID, input.RecipientID})
	if err != nil {
		return nil, err
	}
	if !approved[input.GiverID] || !approved[input.RecipientID] {
		return nil, ErrPartyNotEligible
	}

	request := PointRequest{
		GiverID:     input.GiverID,
		RecipientID: input.RecipientID,
		Points:      input.Points,
		Reason:      reason,
		Status:      StatusPending,
	}
	if err := s.repo.CreateRequest(ctx, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *Service) ListByStatus(ctx context.Context, statusValue string) ([]RequestWithNames, error) {
	status, ok := ParseStatus(statusValue)
	if !ok {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) HistoryForRecipient(ctx context.Context, memberID int64) ([]RequestWithNames, error) {
	return s.repo.ListForRecipient(ctx, memberID, historyLimit)
}

func (s *Service) HistoryForGiver(ctx context.Context, memberID int64) ([]RequestWithNames, error) {
	return s.repo.ListForGiver(ctx, memberID, historyLimit)
}

// Approve moves a pending request to approved and credits the recipient. The
// status transition, the transaction-log insert and the balance increment
// commit as one atomic unit; any failure rolls all three back and leaves the
// request pending.
//
// Under concurrent calls for the same request only one caller observes the
// pending -> approved transition; the others get ErrRequestNotPending. The
// unique request_id on the transaction log backstops the same guarantee at
// the storage layer, surfacing as ErrAlreadyApproved.
func (s *Service) Approve(ctx context.Context, requestID, adminID int64) (int64, error) {
	if requestID <= 0 {
		return 0, ErrInvalidRequestID
	}

	var balance int64
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		matched, err := tx.MarkReviewed(ctx, requestID, adminID, StatusApproved, nil, s.now())
		if err != nil {
			return err
		}
		if !matched {
			return ErrRequestNotPending
		}

		request, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}

		if err := tx.CreateTransaction(ctx, &PointTransaction{
			RequestID:     request.ID,
			BeneficiaryID: request.RecipientID,
			SourceID:      request.GiverID,
			Points:        request.Points,
			Reason:        request.Reason,
		}); err != nil {
			return err
		}

		balance, err = tx.IncrementPoints(ctx, request.RecipientID, request.Points)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Deny moves a pending request to denied. No transaction is logged and no
// balance changes.
func (s *Service) Deny(ctx context.Context, requestID, adminID int64, denyReason string) (*PointRequest, error) {
	if requestID <= 0 {
		return nil, ErrInvalidRequestID
	}

	var reasonPtr *string
	if reason := strings.TrimSpace(denyReason); reason != "" {
		reasonPtr = &reason
	}

	var denied *PointRequest
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		matched, err := tx.MarkReviewed(ctx, requestID, adminID, StatusDenied, reasonPtr, s.now())
		if err != nil {
			return err
		}
		if !matched {
			return ErrRequestNotPending
		}
		denied, err = tx.GetRequest(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return denied, nil
}
