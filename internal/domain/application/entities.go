package application

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("application not found")
	ErrAlreadyVerified = errors.New("application already verified")
	ErrAlreadyRejected = errors.New("application already rejected")
	ErrInvalidDecision = errors.New("invalid status, use 'APPROVED' or 'REJECTED'")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusVerified Status = "VERIFIED"
	StatusRejected Status = "REJECTED"
	StatusApproved Status = "APPROVED"
)

// Application is a borrower's loan request. Status moves
// PENDING → {VERIFIED, REJECTED} by a verifier and
// {PENDING, VERIFIED} → {APPROVED, REJECTED} by an admin; admin approval
// does not require prior verification.
type Application struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID string `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_applications_application_id" json:"id"`
	UserID        string `gorm:"column:user_id;type:char(32);not null;index:idx_applications_user" json:"user_id"`
	Amount        float64 `gorm:"column:amount;not null" json:"amount"`
	Tenure        int     `gorm:"column:tenure;not null" json:"tenure"`
	EmpStatus     string  `gorm:"column:emp_status;size:64;not null" json:"emp_status"`
	Reason        string  `gorm:"column:reason;type:text" json:"reason"`
	EmpAddress    string  `gorm:"column:emp_address;type:text" json:"emp_address"`
	Status        Status  `gorm:"column:status;size:16;not null;default:'PENDING'" json:"status"`
	// set exactly once by a verifier; cleared again on rejection
	VerifierID *string `gorm:"column:verifier_id;type:char(32)" json:"verifier_id"`
	ApprovedBy *string `gorm:"column:approved_by;type:char(32)" json:"approved_by"`
	// creation timestamp, default sort key (descending) on every listing
	DateTime  time.Time `gorm:"column:date_time;autoCreateTime;index:idx_applications_date_time" json:"date_time"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Application) TableName() string { return "applications" }
