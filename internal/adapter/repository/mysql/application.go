package mysql

import (
	"context"

	appDomain "creditsea-backend/internal/domain/application"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

// GetByApplicationIDForUpdate takes a FOR UPDATE row lock; callers must be
// inside a transaction or the lock is released immediately.
func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) ListByUserID(ctx context.Context, userID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_time DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).Order("date_time DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) SumApprovedAmount(ctx context.Context) (float64, error) {
	var sum float64
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("status = ?", appDomain.StatusApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}
