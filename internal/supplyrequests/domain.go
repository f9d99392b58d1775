// Package supplyrequests serves the supply-request CRUD API over the
// supply_requests table.
package supplyrequests

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Priority ranks how soon a request should be handled.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Status tracks a request through approval and fulfilment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusOrdered   Status = "ordered"
	StatusFulfilled Status = "fulfilled"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// SupplyRequest is one row of supply_requests.
type SupplyRequest struct {
	ID                int64
	ItemName          string
	Quantity          int
	Priority          Priority
	Status            Status
	RequestedBy       string
	NeededBy          *time.Time
	Justification     *string
	PreferredSupplier *string
	RequestedOn       time.Time
}

// View is the client-facing shape of a supply request. The approval and
// fulfilment fields are not stored yet and are always null.
type View struct {
	ID                string  `json:"id"`
	ItemName          string  `json:"itemName"`
	QuantityRequested int     `json:"quantityRequested"`
	Priority          string  `json:"priority"`
	Status            string  `json:"status"`
	RequestedBy       string  `json:"requestedBy"`
	NeededBy          *string `json:"neededBy"`
	Notes             *string `json:"notes"`
	SupplierInfo      *string `json:"supplierInfo"`
	DateRequested     string  `json:"dateRequested"`
	ApprovedBy        *string `json:"approvedBy"`
	ApprovedDate      *string `json:"approvedDate"`
	FulfilledDate     *string `json:"fulfilledDate"`
}

// ToView renames storage fields into the external schema.
func (r SupplyRequest) ToView() View {
	v := View{
		ID:                FormatID(r.ID),
		ItemName:          r.ItemName,
		QuantityRequested: r.Quantity,
		Priority:          string(r.Priority),
		Status:            string(r.Status),
		RequestedBy:       r.RequestedBy,
		Notes:             r.Justification,
		SupplierInfo:      r.PreferredSupplier,
		DateRequested:     formatDate(r.RequestedOn),
	}
	if r.NeededBy != nil {
		d := formatDate(*r.NeededBy)
		v.NeededBy = &d
	}
	return v
}

// ToViews maps a slice, never returning nil.
func ToViews(rows []SupplyRequest) []View {
	views := make([]View, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.ToView())
	}
	return views
}

// FormatID renders a storage id as SR plus at least three digits.
func FormatID(id int64) string {
	return fmt.Sprintf("SR%03d", id)
}

// MaxID is the largest id the SERIAL "request id" column can hold.
const MaxID = math.MaxInt32

// ErrIDOutOfRange reports a well-formed id that no row can ever have.
var ErrIDOutOfRange = errors.New("supply request id out of range")

// ParseID accepts either the numeric id or its SR-prefixed form. Ids above
// MaxID parse as ErrIDOutOfRange so callers can answer not found.
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 2 && strings.EqualFold(s[:2], "SR") {
		s = s[2:]
	}
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, fmt.Errorf("invalid supply request id %q", raw)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrIDOutOfRange, raw)
		}
		return 0, fmt.Errorf("invalid supply request id %q", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid supply request id %q", raw)
	}
	if id > MaxID {
		return 0, fmt.Errorf("%w: %q", ErrIDOutOfRange, raw)
	}
	return id, nil
}

func validID(id int64) bool {
	return id > 0 && id <= MaxID
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// dateOnly truncates t to midnight UTC of its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
