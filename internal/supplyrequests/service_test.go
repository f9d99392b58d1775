package supplyrequests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

var fixedNow = time.Date(2024, 5, 6, 23, 30, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	return NewService(repo, WithClock(func() time.Time { return fixedNow }))
}

func strPtr(s string) *string { return &s }

func glovesInput() CreateInput {
	return CreateInput{
		ItemName:          "Gloves",
		QuantityRequested: 10,
		Priority:          "high",
		RequestedBy:       "Ana",
	}
}

func TestServiceCreateForcesPendingAndToday(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	in := glovesInput()
	in.Status = strPtr("approved")
	in.DateRequested = strPtr("1999-01-01")
	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "2024-05-06", got.ToView().DateRequested)
	assert.Nil(t, got.NeededBy)
	assert.Nil(t, got.Justification)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateInput{Priority: "someday", QuantityRequested: -1, NeededBy: strPtr("tomorrow")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	var verr *shared.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["itemName"])
	assert.Equal(t, "is required", verr.Fields["requestedBy"])
	assert.Contains(t, verr.Fields, "quantityRequested")
	assert.Contains(t, verr.Fields, "priority")
	assert.Contains(t, verr.Fields, "neededBy")
}

func TestServiceCreateTrimsAndLowercases(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	in := glovesInput()
	in.ItemName = "  Gloves  "
	in.Priority = "URGENT"
	in.Notes = strPtr("   ")
	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	got := repo.rows[id]
	assert.Equal(t, "Gloves", got.ItemName)
	assert.Equal(t, PriorityUrgent, got.Priority)
	assert.Nil(t, got.Justification)
}

func TestServiceUpdateOverwritesButKeepsDate(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	id, err := svc.Create(context.Background(), glovesInput())
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, UpdateInput{
		ItemName:          "Masks",
		QuantityRequested: 5,
		Priority:          "low",
		Status:            "approved",
		RequestedBy:       "Ben",
		NeededBy:          strPtr("2024-06-01"),
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Masks", got.ItemName)
	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, "2024-06-01", *got.ToView().NeededBy)
	assert.Equal(t, "2024-05-06", got.ToView().DateRequested)
}

func TestServiceUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	err := svc.Update(context.Background(), 1, UpdateInput{
		ItemName: "Masks", QuantityRequested: 1, Priority: "low", Status: "lost", RequestedBy: "Ben",
	})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestServiceMissingIDIsNotFound(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, 9)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Contains(t, err.Error(), "SR009")

	err = svc.Update(ctx, 9, UpdateInput{ItemName: "x", QuantityRequested: 1, Priority: "low", Status: "pending", RequestedBy: "y"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, 9), shared.ErrNotFound))
}

func TestServiceDeleteRemovesOnlyTarget(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	first, _ := svc.Create(ctx, glovesInput())
	second, _ := svc.Create(ctx, glovesInput())

	require.NoError(t, svc.Delete(ctx, first))
	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second, rows[0].ID)
}

func TestServiceListEmptyAndStorageFailure(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	views, err := svc.ListViews(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	repo.err = errors.New("connection refused")
	_, err = svc.List(context.Background())
	assert.Equal(t, shared.CodeInternal, shared.CodeOf(err))
}

func TestServiceIDsBeyondSerialRangeAreNotFound(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = errors.New("repository must not be reached")
	svc := newTestService(repo)
	ctx := context.Background()
	const huge = int64(3000000000)

	_, err := svc.Get(ctx, huge)
	assert.Equal(t, shared.CodeNotFound, shared.CodeOf(err))
	assert.Equal(t, shared.CodeNotFound, shared.CodeOf(svc.Delete(ctx, huge)))
	err = svc.Update(ctx, huge, UpdateInput{ItemName: "x", QuantityRequested: 1, Priority: "low", Status: "pending", RequestedBy: "y"})
	assert.Equal(t, shared.CodeNotFound, shared.CodeOf(err))
}

func TestServiceQuantityBeyondIntegerColumn(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	in := glovesInput()
	in.QuantityRequested = 3000000000

	_, err := svc.Create(context.Background(), in)
	var verr *shared.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, shared.CodeValidation, verr.Code)
	assert.Equal(t, "must be at most 2147483647", verr.Fields["quantityRequested"])
}
