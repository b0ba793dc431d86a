package pagination

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadCSV reads a CSV dataset from disk, dropping the header row. Each
// remaining record becomes one dataset item.
func LoadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(records) <= 1 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
