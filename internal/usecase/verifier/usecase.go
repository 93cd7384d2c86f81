package verifier

import (
	"context"
	"errors"

	appDomain "creditsea-backend/internal/domain/application"
	"creditsea-backend/internal/domain/uow"
	appUC "creditsea-backend/internal/usecase/application"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *logrus.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// Verify marks a PENDING application VERIFIED and records the verifier.
// A second verification of the same application is a conflict: the
// verifier claim is set exactly once.
func (u *Usecase) Verify(ctx context.Context, verifierID, applicationID string) (*appUC.ApplicationDTO, error) {
	var dto appUC.ApplicationDTO

	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if a.VerifierID != nil {
			return appDomain.ErrAlreadyVerified
		}
		a.Status = appDomain.StatusVerified
		a.VerifierID = &verifierID
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		dto = appUC.ToDTO(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"verifier_id":    verifierID,
	}).Info("application verified")
	return &dto, nil
}

// Reject moves any non-rejected application to REJECTED and clears the
// verifier claim, so a later verifier can pick it up fresh.
func (u *Usecase) Reject(ctx context.Context, verifierID, applicationID string) (*appUC.ApplicationDTO, error) {
	var dto appUC.ApplicationDTO

	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if a.Status == appDomain.StatusRejected {
			return appDomain.ErrAlreadyRejected
		}
		a.Status = appDomain.StatusRejected
		a.VerifierID = nil
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		dto = appUC.ToDTO(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"verifier_id":    verifierID,
	}).Info("application rejected by verifier")
	return &dto, nil
}
