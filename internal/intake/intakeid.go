package intake

import "fmt"

// AllocateID returns the Intake_ID for a record appended to a table that
// currently holds rowCount rows, header row included. The header row doubles
// as the "already inserted" count, so the first submission (rowCount 1)
// receives PREFIX-001.
//
// The id is derived only from the row count, so callers must serialize
// appends: two concurrent writers reading the same count produce duplicates.
func AllocateID(rowCount int, prefix string, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, rowCount)
}
