package supplyrequests

import (
	"strings"
	"time"
)

// CreateInput is the POST body. Status and dateRequested are accepted so
// older clients keep working, but the server always overrides them.
type CreateInput struct {
	ItemName          string  `json:"itemName" validate:"required,max=200"`
	QuantityRequested int     `json:"quantityRequested" validate:"required,gt=0,lte=2147483647"`
	Priority          string  `json:"priority" validate:"required,oneof=low medium high urgent"`
	RequestedBy       string  `json:"requestedBy" validate:"required,max=100"`
	NeededBy          *string `json:"neededBy" validate:"omitempty,datetime=2006-01-02"`
	Notes             *string `json:"notes" validate:"omitempty,max=2000"`
	SupplierInfo      *string `json:"supplierInfo" validate:"omitempty,max=200"`
	Status            *string `json:"status,omitempty"`
	DateRequested     *string `json:"dateRequested,omitempty"`
}

// UpdateInput is the PUT body; every column is overwritten.
type UpdateInput struct {
	ItemName          string  `json:"itemName" validate:"required,max=200"`
	QuantityRequested int     `json:"quantityRequested" validate:"required,gt=0,lte=2147483647"`
	Priority          string  `json:"priority" validate:"required,oneof=low medium high urgent"`
	Status            string  `json:"status" validate:"required,oneof=pending approved rejected ordered fulfilled"`
	RequestedBy       string  `json:"requestedBy" validate:"required,max=100"`
	NeededBy          *string `json:"neededBy" validate:"omitempty,datetime=2006-01-02"`
	Notes             *string `json:"notes" validate:"omitempty,max=2000"`
	SupplierInfo      *string `json:"supplierInfo" validate:"omitempty,max=200"`
}

func (in *CreateInput) normalize() {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
	in.RequestedBy = strings.TrimSpace(in.RequestedBy)
	in.NeededBy = blankToNil(in.NeededBy)
	in.Notes = blankToNil(in.Notes)
	in.SupplierInfo = blankToNil(in.SupplierInfo)
}

func (in *UpdateInput) normalize() {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.RequestedBy = strings.TrimSpace(in.RequestedBy)
	in.NeededBy = blankToNil(in.NeededBy)
	in.Notes = blankToNil(in.Notes)
	in.SupplierInfo = blankToNil(in.SupplierInfo)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseDate reads an already-validated YYYY-MM-DD value.
func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
