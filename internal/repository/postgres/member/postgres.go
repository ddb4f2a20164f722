package member

import (
	"context"
	"errors"

	memberdomain "chapter-points-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, memberID int64) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).First(&m, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) ListUnapproved(ctx context.Context) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	err := r.db.WithContext(ctx).
		Where("NOT approved").
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ListApproved(ctx context.Context) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	err := r.db.WithContext(ctx).
		Where("approved").
		Order("full_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) Leaderboard(ctx context.Context) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	err := r.db.WithContext(ctx).
		Where("approved").
		Order("points DESC, full_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) MarkApproved(ctx context.Context, memberID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ? AND NOT approved", memberID).
		Update("approved", true)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteUnapproved(ctx context.Context, memberID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&memberdomain.Member{}, "id = ? AND NOT approved", memberID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) Update(ctx context.Context, memberID int64, role memberdomain.Role, points int64) error {
	return r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"role":   role,
			"points": points,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, memberID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&memberdomain.Member{}, "id = ?", memberID)
	return result.RowsAffected > 0, result.Error
}
