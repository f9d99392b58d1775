package supplyrequests

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatID(t *testing.T) {
	assert.Equal(t, "SR001", FormatID(1))
	assert.Equal(t, "SR042", FormatID(42))
	assert.Equal(t, "SR1234", FormatID(1234))
}

func TestParseID(t *testing.T) {
	for raw, want := range map[string]int64{"12": 12, "SR012": 12, "sr7": 7, " SR1000 ": 1000} {
		got, err := ParseID(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "SR", "abc", "0", "-3", "SR-1", "1.5"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestToViewRenamesAndNulls(t *testing.T) {
	needed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	supplier := "Acme"
	req := SupplyRequest{
		ID:                3,
		ItemName:          "Gloves",
		Quantity:          10,
		Priority:          PriorityHigh,
		Status:            StatusPending,
		RequestedBy:       "Ana",
		NeededBy:          &needed,
		PreferredSupplier: &supplier,
		RequestedOn:       time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(req.ToView())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "SR003", got["id"])
	assert.Equal(t, "Gloves", got["itemName"])
	assert.EqualValues(t, 10, got["quantityRequested"])
	assert.Equal(t, "2024-03-01", got["neededBy"])
	assert.Equal(t, "Acme", got["supplierInfo"])
	assert.Equal(t, "2024-02-20", got["dateRequested"])
	for _, key := range []string{"notes", "approvedBy", "approvedDate", "fulfilledDate"} {
		v, present := got[key]
		assert.True(t, present, key)
		assert.Nil(t, v, key)
	}
}

func TestToViewsNeverNil(t *testing.T) {
	views := ToViews(nil)
	require.NotNil(t, views)
	raw, err := json.Marshal(views)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestParseIDBeyondSerialRange(t *testing.T) {
	id, err := ParseID("2147483647")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxID), id)

	for _, raw := range []string{"3000000000", "SR2147483648", "99999999999999999999"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrIDOutOfRange, raw)
	}
	_, err = ParseID("+5")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrIDOutOfRange)
}
