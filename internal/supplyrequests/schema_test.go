package supplyrequests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementsQuoteColumnsWithSpaces(t *testing.T) {
	assert.Equal(t,
		`SELECT "request id", "item name", "quantity", "priority", "status", "requested by", "needed by", "justification", "preferred supplier", "date" FROM "supply_requests" ORDER BY "date" DESC, "request id" DESC`,
		listQuery)
	assert.Equal(t,
		`SELECT "request id", "item name", "quantity", "priority", "status", "requested by", "needed by", "justification", "preferred supplier", "date" FROM "supply_requests" WHERE "request id" = $1`,
		getQuery)
	assert.Equal(t,
		`INSERT INTO "supply_requests" ("item name", "quantity", "priority", "status", "requested by", "needed by", "justification", "preferred supplier", "date") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING "request id"`,
		insertQuery)
	assert.Equal(t,
		`UPDATE "supply_requests" SET "item name" = $1, "quantity" = $2, "priority" = $3, "status" = $4, "requested by" = $5, "needed by" = $6, "justification" = $7, "preferred supplier" = $8 WHERE "request id" = $9`,
		updateQuery)
	assert.Equal(t, `DELETE FROM "supply_requests" WHERE "request id" = $1`, deleteQuery)
}

func TestUpdateNeverTouchesKeyOrDate(t *testing.T) {
	for _, c := range updateColumns {
		assert.NotEqual(t, colID, c)
		assert.NotEqual(t, colDate, c)
	}
}
