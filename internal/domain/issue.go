package domain

import "time"

type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "OPEN"
	IssueStatusApproved IssueStatus = "APPROVED"
	IssueStatusRejected IssueStatus = "REJECTED"
	IssueStatusResolved IssueStatus = "RESOLVED"
)

// Issue is an owner-raised dispute against a completed booking. APPROVED,
// REJECTED and RESOLVED are all terminal.
type Issue struct {
	ID              string      `json:"id"`
	BookingID       string      `json:"booking_id"`
	ReporterID      string      `json:"reporter_id"`
	Description     string      `json:"description"`
	Photos          []string    `json:"photos,omitempty"`
	Status          IssueStatus `json:"status"`
	ResolutionNote  string      `json:"resolution_note,omitempty"`
	ResolvedBy      *string     `json:"resolved_by,omitempty"`
	DeductionAmount int64       `json:"deduction_amount"`
	InsurancePoolID *string     `json:"insurance_pool_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// InsurancePool is a single shared balance funded by per-booking insurance
// fees. The balance never goes negative; debits are clamped.
type InsurancePool struct {
	ID        string    `json:"id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
