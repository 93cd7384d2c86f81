package auth

import (
	"context"
	"errors"
	"time"

	"creditsea-backend/internal/domain/user"
	"creditsea-backend/pkg/id"
	"creditsea-backend/pkg/token"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Usecase struct {
	users  user.Repository
	secret []byte
	log    *logrus.Logger
}

func NewUsecase(users user.Repository, secret []byte, log *logrus.Logger) *Usecase {
	return &Usecase{users: users, secret: secret, log: log}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.UserID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: string(u.Role)}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, user.ErrInvalidCredentials
	}

	_, err := u.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, user.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	role := user.RoleUser
	if in.Role != "" {
		role, err = user.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usr := &user.User{
		UserID:   id.NewID32(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Phone:    in.Phone,
		Role:     role,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"user_id": usr.UserID, "role": usr.Role}).Info("user registered")

	return u.withToken(usr)
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	usr, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(in.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	return u.withToken(usr)
}

func (u *Usecase) withToken(usr *user.User) (*AuthResult, error) {
	tok, err := token.Sign(u.secret, usr.UserID, string(usr.Role), tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: toUserDTO(usr), Token: tok}, nil
}
