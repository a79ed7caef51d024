package scorer

import (
	"encoding/json"
	"os"
)

// WriteReport writes a list of detection results to a JSON file, the one
// persistence shape consumed by the surrounding tooling.
func WriteReport(results []*DetectionResult, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadReport reads a previously exported report back.
func ReadReport(path string) ([]*DetectionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var results []*DetectionResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}

	return results, nil
}
