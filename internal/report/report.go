package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/churn-insight/api-server/internal/errors"
)

// Store reads the accuracy report the offline evaluation job writes next to
// the model artifact. The report is forwarded opaquely; its internal structure
// is never validated here.
type Store struct {
	path string
}

// NewStore creates a metrics report store over the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current report. The file is re-read on every call so a
// report deposited after startup is picked up without a restart.
func (s *Store) Load() (map[string]interface{}, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("metrics report not produced", err).WithOperation("Load")
		}
		return nil, fmt.Errorf("failed to read metrics report %s: %w", s.path, err)
	}

	var metrics map[string]interface{}
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("failed to parse metrics report %s: %w", s.path, err)
	}

	return metrics, nil
}
