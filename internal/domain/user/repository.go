package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// List returns every user ordered by role ascending (the admin view).
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
}
