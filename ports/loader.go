package ports

import "datadash/domain/table"

// TableLoader loads a spreadsheet into a Table. The Table is never nil;
// a non-nil error is a reported condition (missing source, parse failure,
// empty source) the caller displays rather than a fatal fault.
type TableLoader interface {
	Load(path string) (*table.Table, error)
}
