/*
resolver.go - Source selection with mock fallback

PURPOSE:
  Picks where a board's rows come from: the live workbook under the data
  directory when it exists, the seeded mock generator otherwise or when
  forced. A missing workbook downgrades to mock rows with a warning rather
  than failing the refresh - the board stays usable while someone chases
  the file.
*/
package source

import (
	"context"
	"log"
	"path/filepath"

	"github.com/warp/config-ops-hub/engine"
)

const (
	SourceExcel = "excel"
	SourceMock  = "mock"

	defaultMockRows = 100
	defaultMockSeed = 1
)

// Resolver loads board rows, satisfying the hub's Loader contract.
type Resolver struct {
	// Dir is the data directory holding the workbooks.
	Dir string
	// ForceMock skips the workbook entirely (development mode).
	ForceMock bool
	// MockRows / MockSeed tune the fallback generator; zero values take
	// the defaults.
	MockRows int
	MockSeed int64
}

// Load reads rows for one board: the workbook first, mock rows as the
// single fallback.
func (r *Resolver) Load(ctx context.Context, domainID, file, sheet string) ([]engine.RawRow, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if !r.ForceMock && file != "" {
		rows, err := LoadExcel(filepath.Join(r.Dir, file), sheet)
		if err == nil {
			return rows, SourceExcel, nil
		}
		log.Printf("source: %s: falling back to mock rows: %v", domainID, err)
	}

	n := r.MockRows
	if n <= 0 {
		n = defaultMockRows
	}
	seed := r.MockSeed
	if seed == 0 {
		seed = defaultMockSeed
	}
	return Mock(domainID, n, seed, engine.Today()), SourceMock, nil
}
