// Package journal persists restore points as JSON so an interrupted
// session can still be rolled back by a later process.
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/talowa/remedy/internal/domain"
)

// FileJournal implements domain.RestoreJournal using a JSON file.
type FileJournal struct {
	path string
}

// New creates a FileJournal writing to path.
func New(path string) *FileJournal {
	return &FileJournal{path: path}
}

func (j *FileJournal) Append(point domain.RestorePoint) error {
	points, err := j.Load()
	if err != nil {
		return err
	}
	return j.Replace(append(points, point))
}

func (j *FileJournal) Load() ([]domain.RestorePoint, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var points []domain.RestorePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (j *FileJournal) Replace(points []domain.RestorePoint) error {
	if len(points) == 0 {
		if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0644)
}
