package points

import (
	"context"
	"errors"
	"time"

	pointsdomain "chapter-points-go/internal/domain/points"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(pointsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, request *pointsdomain.PointRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *PostgresRepository) GetRequest(ctx context.Context, requestID int64) (*pointsdomain.PointRequest, error) {
	var request pointsdomain.PointRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pointsdomain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

const requestWithNamesSelect = "point_requests.*, givers.full_name AS giver_name, recipients.full_name AS recipient_name"

func (r *PostgresRepository) requestsWithNames(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("point_requests").
		Select(requestWithNamesSelect).
		Joins("JOIN members AS givers ON givers.id = point_requests.giver_id").
		Joins("JOIN members AS recipients ON recipients.id = point_requests.recipient_id")
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status pointsdomain.Status) ([]pointsdomain.RequestWithNames, error) {
	var rows []pointsdomain.RequestWithNames
	err := r.requestsWithNames(ctx).
		Where("point_requests.status = ?", status).
		Order("point_requests.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListForRecipient(ctx context.Context, memberID int64, limit int) ([]pointsdomain.RequestWithNames, error) {
	var rows []pointsdomain.RequestWithNames
	err := r.requestsWithNames(ctx).
		Where("point_requests.recipient_id = ?", memberID).
		Order("point_requests.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListForGiver(ctx context.Context, memberID int64, limit int) ([]pointsdomain.RequestWithNames, error) {
	var rows []pointsdomain.RequestWithNames
	err := r.requestsWithNames(ctx).
		Where("point_requests.giver_id = ?", memberID).
		Order("point_requests.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) FindApprovedMembers(ctx context.Context, memberIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(memberIDs))
	if len(memberIDs) == 0 {
		return result, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Table("members").
		Where("id IN ? AND approved", memberIDs).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *PostgresRepository) MarkReviewed(ctx context.Context, requestID, adminID int64, status pointsdomain.Status, denyReason *string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&pointsdomain.PointRequest{}).
		Where("id = ? AND status = ?", requestID, pointsdomain.StatusPending).
		Updates(map[string]interface{}{
			"status":               status,
			"reviewed_at":          at,
			"reviewed_by_admin_id": adminID,
			"deny_reason":          denyReason,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *pointsdomain.PointTransaction) error {
	err := r.db.WithContext(ctx).Create(transaction).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pointsdomain.ErrAlreadyApproved
	}
	return err
}

func (r *PostgresRepository) IncrementPoints(ctx context.Context, memberID, delta int64) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE members SET points = points + ? WHERE id = ? RETURNING points", delta, memberID).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}
