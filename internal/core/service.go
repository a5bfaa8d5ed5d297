package core

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service provides the core business logic: required-field validation in
// front of the Store, plus the composed views used by the web layer.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report validation failures under the form field name so the web layer
	// can highlight the matching input.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{store: store, validate: v}
}

// checkRequired runs struct validation and converts the result into a
// ValidationError keyed by form field name.
func (s *Service) checkRequired(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "This field is required."
	}
	return &ValidationError{Fields: fields}
}

// CreateRegistration validates and persists a worker registration.
func (s *Service) CreateRegistration(ctx context.Context, r *Registration) (int64, error) {
	if err := s.checkRequired(r); err != nil {
		return 0, err
	}
	id, err := s.store.CreateRegistration(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("create registration: %w", err)
	}
	return id, nil
}

// CreateJobcardRequest validates and persists a job-card deletion request.
func (s *Service) CreateJobcardRequest(ctx context.Context, r *JobcardRequest) (int64, error) {
	if err := s.checkRequired(r); err != nil {
		return 0, err
	}
	id, err := s.store.CreateJobcardRequest(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("create jobcard request: %w", err)
	}
	return id, nil
}

// CreateVoucherRequest validates and persists a voucher deletion request.
func (s *Service) CreateVoucherRequest(ctx context.Context, r *VoucherRequest) (int64, error) {
	if err := s.checkRequired(r); err != nil {
		return 0, err
	}
	id, err := s.store.CreateVoucherRequest(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("create voucher request: %w", err)
	}
	return id, nil
}

// GetRegistration fetches a registration by id.
func (s *Service) GetRegistration(ctx context.Context, id int64) (*Registration, error) {
	return s.store.GetRegistration(ctx, id)
}

// GetJobcardRequest fetches a job-card deletion request by id.
func (s *Service) GetJobcardRequest(ctx context.Context, id int64) (*JobcardRequest, error) {
	return s.store.GetJobcardRequest(ctx, id)
}

// GetVoucherRequest fetches a voucher deletion request by id.
func (s *Service) GetVoucherRequest(ctx context.Context, id int64) (*VoucherRequest, error) {
	return s.store.GetVoucherRequest(ctx, id)
}

// UpdateRegistration validates and overwrites a stored registration.
func (s *Service) UpdateRegistration(ctx context.Context, r *Registration) error {
	if err := s.checkRequired(r); err != nil {
		return err
	}
	return s.store.UpdateRegistration(ctx, r)
}

// UpdateJobcardRequest validates and overwrites a stored job-card request.
func (s *Service) UpdateJobcardRequest(ctx context.Context, r *JobcardRequest) error {
	if err := s.checkRequired(r); err != nil {
		return err
	}
	return s.store.UpdateJobcardRequest(ctx, r)
}

// UpdateVoucherRequest validates and overwrites a stored voucher request.
func (s *Service) UpdateVoucherRequest(ctx context.Context, r *VoucherRequest) error {
	if err := s.checkRequired(r); err != nil {
		return err
	}
	return s.store.UpdateVoucherRequest(ctx, r)
}

// Delete removes the record of the given category and id.
func (s *Service) Delete(ctx context.Context, cat Category, id int64) error {
	switch cat {
	case CategorySemi:
		return s.store.DeleteRegistration(ctx, id)
	case CategoryJobcard:
		return s.store.DeleteJobcardRequest(ctx, id)
	case CategoryVoucher:
		return s.store.DeleteVoucherRequest(ctx, id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
}

// Suggestions returns the current autocomplete name lists.
func (s *Service) Suggestions(ctx context.Context) (*Suggestions, error) {
	sug, err := s.store.Suggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return sug, nil
}

// Admin composes the admin listing: all three record lists under the same
// filter, plus suggestions and the selected filter for the UI.
func (s *Service) Admin(ctx context.Context, f Filter) (*AdminView, error) {
	regs, err := s.store.ListRegistrations(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	jcs, err := s.store.ListJobcardRequests(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list jobcard requests: %w", err)
	}
	vouchers, err := s.store.ListVoucherRequests(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list voucher requests: %w", err)
	}
	sug, err := s.store.Suggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	return &AdminView{
		Registrations:   regs,
		JobcardRequests: jcs,
		VoucherRequests: vouchers,
		Suggestions:     sug,
		Filter:          f,
	}, nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
