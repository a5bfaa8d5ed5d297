// Package core provides the business logic for the records entry application.
// This package has no HTTP dependencies and can be driven by any frontend.
package core

import (
	"context"
	"fmt"
)

// Category identifies one of the three record types handled by the
// application. It is a closed set; anything else is rejected by
// ParseCategory.
type Category string

const (
	CategorySemi    Category = "semi"
	CategoryJobcard Category = "jc"
	CategoryVoucher Category = "voucher"
)

// ParseCategory validates a category string from a URL segment.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategorySemi, CategoryJobcard, CategoryVoucher:
		return Category(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Registration is a semi-skilled worker registration entry.
// All fields are operator-entered free text; no format validation is applied.
type Registration struct {
	ID         int64
	BlockName  string `form:"block_name" validate:"required"`
	Panchayat  string `form:"panchayat" validate:"required"`
	FinYear    string `form:"fin_year" validate:"required"`
	WorkCode   string `form:"work_code" validate:"required"`
	MasonName  string `form:"mason_name" validate:"required"`
	RegNo      string `form:"reg_no" validate:"required"`
	MappedJC   string `form:"mapped_jc" validate:"required"`
	StatusJC   string `form:"status_jc" validate:"required"`
	BankName   string `form:"bank_name" validate:"required"`
	AcNo       string `form:"ac_no" validate:"required"`
	IFSC       string `form:"ifsc" validate:"required"`
	Wagelist   string `form:"wagelist" validate:"required"`
	StatusWL   string `form:"status_wl" validate:"required"`
	MusterRoll string `form:"muster_roll" validate:"required"`
}

// JobcardRequest is a request to delete a job card. Reason is optional.
type JobcardRequest struct {
	ID        int64
	BlockName string `form:"block_name" validate:"required"`
	Panchayat string `form:"panchayat" validate:"required"`
	JobCardNo string `form:"job_card_no" validate:"required"`
	Reason    string `form:"reason"`
}

// VoucherRequest is a request to delete a payment voucher.
// Amount is kept exactly as entered (display-only text), preserving the
// operator's formatting.
type VoucherRequest struct {
	ID          int64
	BlockName   string `form:"block_name" validate:"required"`
	Panchayat   string `form:"panchayat" validate:"required"`
	Village     string `form:"village" validate:"required"`
	FinYear     string `form:"fin_year" validate:"required"`
	SchemeName  string `form:"scheme_name" validate:"required"`
	WorkCode    string `form:"work_code" validate:"required"`
	BillNo      string `form:"bill_no" validate:"required"`
	VoucherYear string `form:"voucher_year" validate:"required"`
	Amount      string `form:"amount" validate:"required"`
}

// Filter restricts list queries by exact, case-sensitive equality.
// Empty fields place no restriction.
type Filter struct {
	BlockName string
	Panchayat string
}

// Empty reports whether the filter places no restriction at all.
func (f Filter) Empty() bool {
	return f.BlockName == "" && f.Panchayat == ""
}

// Suggestions holds deduplicated, lexicographically sorted location names
// collected from all stored records. Used to populate autocomplete datalists
// and the admin filter dropdowns. Never contains empty strings.
type Suggestions struct {
	Blocks     []string
	Panchayats []string
	Villages   []string
}

// Store is the persistence contract for the three record tables.
// Implementations must return ErrNotFound (possibly wrapped) for
// get/update/delete on an unknown identifier.
type Store interface {
	CreateRegistration(ctx context.Context, r *Registration) (int64, error)
	GetRegistration(ctx context.Context, id int64) (*Registration, error)
	UpdateRegistration(ctx context.Context, r *Registration) error
	DeleteRegistration(ctx context.Context, id int64) error
	ListRegistrations(ctx context.Context, f Filter) ([]Registration, error)

	CreateJobcardRequest(ctx context.Context, r *JobcardRequest) (int64, error)
	GetJobcardRequest(ctx context.Context, id int64) (*JobcardRequest, error)
	UpdateJobcardRequest(ctx context.Context, r *JobcardRequest) error
	DeleteJobcardRequest(ctx context.Context, id int64) error
	ListJobcardRequests(ctx context.Context, f Filter) ([]JobcardRequest, error)

	CreateVoucherRequest(ctx context.Context, r *VoucherRequest) (int64, error)
	GetVoucherRequest(ctx context.Context, id int64) (*VoucherRequest, error)
	UpdateVoucherRequest(ctx context.Context, r *VoucherRequest) error
	DeleteVoucherRequest(ctx context.Context, id int64) error
	ListVoucherRequests(ctx context.Context, f Filter) ([]VoucherRequest, error)

	Suggestions(ctx context.Context) (*Suggestions, error)

	Ping(ctx context.Context) error
}

// FinancialYears returns the fixed list of financial-year options offered by
// the registration and voucher forms.
func FinancialYears() []string {
	return []string{
		"2019-2020", "2020-2021", "2021-2022",
		"2022-2023", "2023-2024", "2024-2025", "2025-2026",
	}
}

// AdminView is everything the admin listing page needs: the three record
// lists (filtered identically and independently), the current suggestions for
// the filter dropdowns, and the selected filter values.
type AdminView struct {
	Registrations   []Registration
	JobcardRequests []JobcardRequest
	VoucherRequests []VoucherRequest
	Suggestions     *Suggestions
	Filter          Filter
}
