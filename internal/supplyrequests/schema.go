package supplyrequests

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// The legacy table uses column names with spaces; every reference goes
// through column.sql so quoting is never hand-written.
const tableName = "supply_requests"

type column string

const (
	colID                column = "request id"
	colItemName          column = "item name"
	colQuantity          column = "quantity"
	colPriority          column = "priority"
	colStatus            column = "status"
	colRequestedBy       column = "requested by"
	colNeededBy          column = "needed by"
	colJustification     column = "justification"
	colPreferredSupplier column = "preferred supplier"
	colDate              column = "date"
)

func (c column) sql() string {
	return pgx.Identifier{string(c)}.Sanitize()
}

func table() string {
	return pgx.Identifier{tableName}.Sanitize()
}

func columnList(cols []column) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = c.sql()
	}
	return strings.Join(quoted, ", ")
}

// selectColumns is the scan order used by scanRequest.
var selectColumns = []column{
	colID, colItemName, colQuantity, colPriority, colStatus,
	colRequestedBy, colNeededBy, colJustification, colPreferredSupplier, colDate,
}

// insertColumns excludes the generated id.
var insertColumns = []column{
	colItemName, colQuantity, colPriority, colStatus, colRequestedBy,
	colNeededBy, colJustification, colPreferredSupplier, colDate,
}

// updateColumns excludes the id and the creation date.
var updateColumns = []column{
	colItemName, colQuantity, colPriority, colStatus, colRequestedBy,
	colNeededBy, colJustification, colPreferredSupplier,
}

func selectStatement(where string, orderBy ...string) string {
	q := fmt.Sprintf("SELECT %s FROM %s", columnList(selectColumns), table())
	if where != "" {
		q += " WHERE " + where
	}
	if len(orderBy) > 0 {
		q += " ORDER BY " + strings.Join(orderBy, ", ")
	}
	return q
}

func insertStatement(cols []column, returning column) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table(), columnList(cols), strings.Join(placeholders, ", "), returning.sql())
}

// updateStatement binds cols to $1..$n and the key to $n+1.
func updateStatement(cols []column, key column) string {
	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = fmt.Sprintf("%s = $%d", c.sql(), i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table(), strings.Join(assignments, ", "), key.sql(), len(cols)+1)
}

func deleteStatement(key column) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table(), key.sql())
}

var (
	listQuery   = selectStatement("", colDate.sql()+" DESC", colID.sql()+" DESC")
	getQuery    = selectStatement(colID.sql() + " = $1")
	insertQuery = insertStatement(insertColumns, colID)
	updateQuery = updateStatement(updateColumns, colID)
	deleteQuery = deleteStatement(colID)
)
