package application

import (
	"context"
	"errors"
	"time"

	appDomain "creditsea-backend/internal/domain/application"
	"creditsea-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

var ErrMissingFields = errors.New("amount, tenure, and employment status are required")

type Usecase struct {
	repo appDomain.Repository
	log  *logrus.Logger
}

func NewUsecase(r appDomain.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{repo: r, log: log}
}

type SubmitInput struct {
	UserID     string
	Amount     float64
	Tenure     int
	EmpStatus  string
	Reason     string
	EmpAddress string
}

type ApplicationDTO struct {
	ApplicationID string    `json:"id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	Tenure        int       `json:"tenure"`
	EmpStatus     string    `json:"emp_status"`
	Reason        string    `json:"reason"`
	EmpAddress    string    `json:"emp_address"`
	Status        string    `json:"status"`
	VerifierID    *string   `json:"verifier_id"`
	ApprovedBy    *string   `json:"approved_by"`
	DateTime      time.Time `json:"date_time"`
}

func ToDTO(a *appDomain.Application) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID: a.ApplicationID,
		UserID:        a.UserID,
		Amount:        a.Amount,
		Tenure:        a.Tenure,
		EmpStatus:     a.EmpStatus,
		Reason:        a.Reason,
		EmpAddress:    a.EmpAddress,
		Status:        string(a.Status),
		VerifierID:    a.VerifierID,
		ApprovedBy:    a.ApprovedBy,
		DateTime:      a.DateTime,
	}
}

func toDTOs(apps []appDomain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, ToDTO(&apps[i]))
	}
	return out
}

// Submit creates a PENDING application owned by the caller.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.Amount <= 0 || in.Tenure <= 0 || in.EmpStatus == "" {
		return nil, ErrMissingFields
	}

	a := &appDomain.Application{
		ApplicationID: id.NewID32(),
		UserID:        in.UserID,
		Amount:        in.Amount,
		Tenure:        in.Tenure,
		EmpStatus:     in.EmpStatus,
		Reason:        in.Reason,
		EmpAddress:    in.EmpAddress,
		Status:        appDomain.StatusPending,
		DateTime:      time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"application_id": a.ApplicationID,
		"user_id":        a.UserID,
		"amount":         a.Amount,
	}).Info("application submitted")

	dto := ToDTO(a)
	return &dto, nil
}

// ListByUser returns the caller's applications, newest first.
func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]ApplicationDTO, error) {
	apps, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(apps), nil
}

// ListAll returns every application, newest first (verifier/admin views).
func (u *Usecase) ListAll(ctx context.Context) ([]ApplicationDTO, error) {
	apps, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(apps), nil
}
