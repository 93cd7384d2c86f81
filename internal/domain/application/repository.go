package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row for the duration of the
	// surrounding transaction. Only meaningful inside a UnitOfWork.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	GetByID(ctx context.Context, id uint64) (*Application, error)
	// ListByUserID returns the user's applications, newest first.
	ListByUserID(ctx context.Context, userID string) ([]Application, error)
	// ListAll returns every application, newest first (verifier/admin views).
	ListAll(ctx context.Context) ([]Application, error)
	// SumApprovedAmount totals Application.amount over status=APPROVED rows.
	SumApprovedAmount(ctx context.Context) (float64, error)
}
