package auth

import (
	"context"
	"errors"
	"time"

	authdomain "chapter-points-go/internal/domain/auth"
	memberdomain "chapter-points-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMember(ctx context.Context, m *memberdomain.Member) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return authdomain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) FindMemberByEmail(ctx context.Context, email string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) FindMemberByID(ctx context.Context, memberID int64) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).First(&m, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) SetPassword(ctx context.Context, memberID int64, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", memberID).
		Update("password_hash", passwordHash).Error
}

func (r *PostgresRepository) CreateResetToken(ctx context.Context, token *authdomain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time) (int64, error) {
	var memberID int64
	result := r.db.WithContext(ctx).
		Raw(`UPDATE password_reset_tokens
			SET used_at = ?
			WHERE token = ? AND used_at IS NULL AND expires_at > ?
			RETURNING member_id`, now, token, now).
		Scan(&memberID)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, authdomain.ErrResetTokenInvalid
	}
	return memberID, nil
}
