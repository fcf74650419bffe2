package excel

import "datadash/domain/table"

// Loader implements ports.TableLoader over per-path DataReaders.
type Loader struct{}

// NewLoader creates the file-backed table loader.
func NewLoader() *Loader { return &Loader{} }

// Load reads the file at path into a Table.
func (Loader) Load(path string) (*table.Table, error) {
	return NewDataReader(path).Load()
}
