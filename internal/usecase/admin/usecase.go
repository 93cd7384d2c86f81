package admin

import (
	"context"
	"errors"

	appDomain "creditsea-backend/internal/domain/application"
	"creditsea-backend/internal/domain/uow"
	userDomain "creditsea-backend/internal/domain/user"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	users userDomain.Repository
	uow   uow.UnitOfWork
	log   *logrus.Logger
}

func NewUsecase(users userDomain.Repository, tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{users: users, uow: tx, log: log}
}

// Approve records an admin decision on an application. The decision must be
// APPROVED or REJECTED; either way the approver is recorded. VERIFIED is not
// a precondition — an admin may decide on a merely PENDING application, and
// may reject one a verifier already verified.
func (u *Usecase) Approve(ctx context.Context, adminID, applicationID string, decision string) error {
	status := appDomain.Status(decision)
	if status != appDomain.StatusApproved && status != appDomain.StatusRejected {
		return appDomain.ErrInvalidDecision
	}

	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		a.Status = status
		a.ApprovedBy = &adminID
		return r.Applications.Save(ctx, a)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appDomain.ErrNotFound
		}
		return err
	}

	u.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"admin_id":       adminID,
		"decision":       decision,
	}).Info("application decision recorded")
	return nil
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ListUsers returns every user, sorted by role.
func (u *Usecase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		usr := &users[i]
		out = append(out, UserDTO{ID: usr.UserID, Name: usr.Name, Email: usr.Email, Role: string(usr.Role)})
	}
	return out, nil
}

// SetRole changes a user's role. Promoting to a role the user already holds,
// or demoting a user who is not in the expected role, is a conflict.
// `from` narrows demotions: RemoveAdmin only demotes actual admins.
func (u *Usecase) SetRole(ctx context.Context, userID string, from, to userDomain.Role) error {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userDomain.ErrNotFound
		}
		return err
	}
	if usr.Role == to {
		return userDomain.ErrRoleUnchanged
	}
	if from != "" && usr.Role != from {
		return userDomain.ErrRoleUnchanged
	}
	usr.Role = to
	if err := u.users.Save(ctx, usr); err != nil {
		return err
	}
	u.log.WithFields(logrus.Fields{"user_id": userID, "role": to}).Info("user role changed")
	return nil
}

func (u *Usecase) MakeAdmin(ctx context.Context, userID string) error {
	return u.SetRole(ctx, userID, "", userDomain.RoleAdmin)
}

func (u *Usecase) RemoveAdmin(ctx context.Context, userID string) error {
	return u.SetRole(ctx, userID, userDomain.RoleAdmin, userDomain.RoleUser)
}

func (u *Usecase) MakeVerifier(ctx context.Context, userID string) error {
	return u.SetRole(ctx, userID, "", userDomain.RoleVerifier)
}

func (u *Usecase) RemoveVerifier(ctx context.Context, userID string) error {
	return u.SetRole(ctx, userID, userDomain.RoleVerifier, userDomain.RoleUser)
}

func (u *Usecase) MakeUser(ctx context.Context, userID string) error {
	return u.SetRole(ctx, userID, "", userDomain.RoleUser)
}
