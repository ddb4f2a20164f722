package member

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetMember(ctx context.Context, memberID int64) (*Member, error) {
	return s.repo.GetByID(ctx, memberID)
}

func (s *Service) ListUnapproved(ctx context.Context) ([]Member, error) {
	return s.repo.ListUnapproved(ctx)
}

func (s *Service) ListApproved(ctx context.Context) ([]Member, error) {
	return s.repo.ListApproved(ctx)
}

func (s *Service) Leaderboard(ctx context.Context) ([]Member, error) {
	return s.repo.Leaderboard(ctx)
}

// ApproveAccount flips the approval flag exactly once. A second call reports
// ErrAlreadyApproved instead of silently succeeding.
func (s *Service) ApproveAccount(ctx context.Context, memberID int64) (*Member, error) {
	matched, err := s.repo.MarkApproved(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !matched {
		if _, err := s.repo.GetByID(ctx, memberID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyApproved
	}
	return s.repo.GetByID(ctx, memberID)
}

// DenyAccount removes a registration that was never approved. Approved members
// must go through DeleteMember instead.
func (s *Service) DenyAccount(ctx context.Context, memberID int64) error {
	matched, err := s.repo.DeleteUnapproved(ctx, memberID)
	if err != nil {
		return err
	}
	if !matched {
		if _, err := s.repo.GetByID(ctx, memberID); err != nil {
			return err
		}
		return ErrNotUnapproved
	}
	return nil
}

func (s *Service) UpdateMember(ctx context.Context, input UpdateMemberInput) (*Member, error) {
	role, ok := ParseRole(input.Role)
	if !ok {
		return nil, ErrInvalidRole
	}
	if input.Points < 0 {
		return nil, ErrNegativePoints
	}

	current, err := s.repo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	if input.MemberID == input.ActorID && current.Role == RoleAdmin && role != RoleAdmin {
		return nil, ErrCannotDemoteSelf
	}

	if err := s.repo.Update(ctx, input.MemberID, role, input.Points); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, input.MemberID)
}

func (s *Service) DeleteMember(ctx context.Context, memberID int64) error {
	deleted, err := s.repo.Delete(ctx, memberID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}
