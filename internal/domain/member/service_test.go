package member

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemberRepo struct {
	members map[int64]*Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[int64]*Member)}
}

func (r *fakeMemberRepo) add(m Member) {
	row := m
	r.members[m.ID] = &row
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, memberID int64) (*Member, error) {
	m, ok := r.members[memberID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	row := *m
	return &row, nil
}

func (r *fakeMemberRepo) ListUnapproved(ctx context.Context) ([]Member, error) {
	var rows []Member
	for _, m := range r.members {
		if !m.Approved {
			rows = append(rows, *m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

func (r *fakeMemberRepo) ListApproved(ctx context.Context) ([]Member, error) {
	var rows []Member
	for _, m := range r.members {
		if m.Approved {
			rows = append(rows, *m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FullName < rows[j].FullName })
	return rows, nil
}

func (r *fakeMemberRepo) Leaderboard(ctx context.Context) ([]Member, error) {
	rows, _ := r.ListApproved(ctx)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })
	return rows, nil
}

func (r *fakeMemberRepo) MarkApproved(ctx context.Context, memberID int64) (bool, error) {
	m, ok := r.members[memberID]
	if !ok || m.Approved {
		return false, nil
	}
	m.Approved = true
	return true, nil
}

func (r *fakeMemberRepo) DeleteUnapproved(ctx context.Context, memberID int64) (bool, error) {
	m, ok := r.members[memberID]
	if !ok || m.Approved {
		return false, nil
	}
	delete(r.members, memberID)
	return true, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, memberID int64, role Role, points int64) error {
	m, ok := r.members[memberID]
	if !ok {
		return ErrMemberNotFound
	}
	m.Role = role
	m.Points = points
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, memberID int64) (bool, error) {
	if _, ok := r.members[memberID]; !ok {
		return false, nil
	}
	delete(r.members, memberID)
	return true, nil
}

func seedRepo(t *testing.T) *fakeMemberRepo {
	t.Helper()
	repo := newFakeMemberRepo()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	repo.add(Member{ID: 1, FullName: "Ada Admin", Email: "ada@example.com", Role: RoleAdmin, Points: 0, Approved: true, CreatedAt: base})
	repo.add(Member{ID: 2, FullName: "Ben Brother", Email: "ben@example.com", Role: RoleMember, Points: 30, Approved: true, CreatedAt: base.Add(time.Hour)})
	repo.add(Member{ID: 3, FullName: "Cal Candidate", Email: "cal@example.com", Role: RoleMember, Points: 0, Approved: false, CreatedAt: base.Add(2 * time.Hour)})
	return repo
}

func TestApproveAccountOnce(t *testing.T) {
	repo := seedRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	approved, err := svc.ApproveAccount(ctx, 3)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	_, err = svc.ApproveAccount(ctx, 3)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestApproveAccountUnknownMember(t *testing.T) {
	svc := NewService(seedRepo(t))

	_, err := svc.ApproveAccount(context.Background(), 999)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestDenyAccountOnlyUnapproved(t *testing.T) {
	repo := seedRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.DenyAccount(ctx, 3))
	_, err := repo.GetByID(ctx, 3)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	err = svc.DenyAccount(ctx, 2)
	assert.ErrorIs(t, err, ErrNotUnapproved, "approved members are not deniable")

	err = svc.DenyAccount(ctx, 999)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpdateMemberValidation(t *testing.T) {
	svc := NewService(seedRepo(t))
	ctx := context.Background()

	_, err := svc.UpdateMember(ctx, UpdateMemberInput{MemberID: 2, ActorID: 1, Role: "president", Points: 10})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateMember(ctx, UpdateMemberInput{MemberID: 2, ActorID: 1, Role: "member", Points: -5})
	assert.ErrorIs(t, err, ErrNegativePoints)

	_, err = svc.UpdateMember(ctx, UpdateMemberInput{MemberID: 999, ActorID: 1, Role: "member", Points: 0})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpdateMemberPromotes(t *testing.T) {
	svc := NewService(seedRepo(t))

	updated, err := svc.UpdateMember(context.Background(), UpdateMemberInput{
		MemberID: 2,
		ActorID:  1,
		Role:     "position-holder",
		Points:   45,
	})
	require.NoError(t, err)
	assert.Equal(t, RolePositionHolder, updated.Role)
	assert.Equal(t, int64(45), updated.Points)
}

func TestUpdateMemberSelfDemotionBlocked(t *testing.T) {
	svc := NewService(seedRepo(t))
	ctx := context.Background()

	_, err := svc.UpdateMember(ctx, UpdateMemberInput{MemberID: 1, ActorID: 1, Role: "member", Points: 0})
	assert.ErrorIs(t, err, ErrCannotDemoteSelf)

	// Keeping the admin role while adjusting points is fine.
	updated, err := svc.UpdateMember(ctx, UpdateMemberInput{MemberID: 1, ActorID: 1, Role: "admin", Points: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.Points)
}

func TestDeleteMember(t *testing.T) {
	repo := seedRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.DeleteMember(ctx, 2))
	_, err := repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	assert.ErrorIs(t, svc.DeleteMember(ctx, 2), ErrMemberNotFound)
}

func TestLeaderboardOnlyApproved(t *testing.T) {
	svc := NewService(seedRepo(t))

	rows, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].ID, "highest balance first")
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"member", "position-holder", "admin"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), role)
	}

	_, ok := ParseRole("treasurer")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}
