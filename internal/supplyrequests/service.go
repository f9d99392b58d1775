package supplyrequests

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// Service applies the supply-request rules on top of a Repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp creation dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a Service.
func NewService(repo Repository, opts ...Option) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	s := &Service{repo: repo, validate: v, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all requests, newest first. An empty table yields an empty slice.
func (s *Service) List(ctx context.Context) ([]SupplyRequest, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, classifyStorageError("list supply requests", err)
	}
	if rows == nil {
		rows = []SupplyRequest{}
	}
	return rows, nil
}

// ListViews is List in the external schema.
func (s *Service) ListViews(ctx context.Context) ([]View, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToViews(rows), nil
}

// Get returns one request.
func (s *Service) Get(ctx context.Context, id int64) (SupplyRequest, error) {
	if !validID(id) {
		return SupplyRequest{}, s.notFoundOr(id, "get supply request", shared.ErrNotFound)
	}
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return SupplyRequest{}, s.notFoundOr(id, "get supply request", err)
	}
	return req, nil
}

// Create stores a new request. Status is always pending and the creation
// date is always today, whatever the client sent.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	in.normalize()
	if err := s.check(in); err != nil {
		return 0, err
	}
	neededBy, err := parseDate(in.NeededBy)
	if err != nil {
		return 0, shared.Validation("invalid supply request", map[string]string{"neededBy": "must be YYYY-MM-DD"})
	}
	id, err := s.repo.Create(ctx, SupplyRequest{
		ItemName:          in.ItemName,
		Quantity:          in.QuantityRequested,
		Priority:          Priority(in.Priority),
		Status:            StatusPending,
		RequestedBy:       in.RequestedBy,
		NeededBy:          neededBy,
		Justification:     in.Notes,
		PreferredSupplier: in.SupplierInfo,
		RequestedOn:       dateOnly(s.now()),
	})
	if err != nil {
		return 0, classifyStorageError("create supply request", err)
	}
	return id, nil
}

// Update overwrites every mutable column of an existing request.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) error {
	if !validID(id) {
		return s.notFoundOr(id, "update supply request", shared.ErrNotFound)
	}
	in.normalize()
	if err := s.check(in); err != nil {
		return err
	}
	neededBy, err := parseDate(in.NeededBy)
	if err != nil {
		return shared.Validation("invalid supply request", map[string]string{"neededBy": "must be YYYY-MM-DD"})
	}
	err = s.repo.Update(ctx, SupplyRequest{
		ID:                id,
		ItemName:          in.ItemName,
		Quantity:          in.QuantityRequested,
		Priority:          Priority(in.Priority),
		Status:            Status(in.Status),
		RequestedBy:       in.RequestedBy,
		NeededBy:          neededBy,
		Justification:     in.Notes,
		PreferredSupplier: in.SupplierInfo,
	})
	if err != nil {
		return s.notFoundOr(id, "update supply request", err)
	}
	return nil
}

// Delete removes exactly one request.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if !validID(id) {
		return s.notFoundOr(id, "delete supply request", shared.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.notFoundOr(id, "delete supply request", err)
	}
	return nil
}

func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return shared.Internal("validate supply request", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return shared.Validation("invalid supply request", fields)
}

func (s *Service) notFoundOr(id int64, op string, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound(fmt.Sprintf("supply request %s not found", FormatID(id)))
	}
	return classifyStorageError(op, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	default:
		return "is invalid"
	}
}
