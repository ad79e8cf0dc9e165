// Package store loads sample records from JSON documents in a local
// directory, one dataset per file.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"statlab/domain/core"
	"statlab/domain/sample"
)

// FileSource implements ports.SampleSource over a samples directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a sample source reading from dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// List returns the sample names (file stems) sorted by name.
func (s *FileSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// Load parses the named sample document into a record. Names are bare file
// stems; anything that could escape the samples directory is rejected.
func (s *FileSource) Load(ctx context.Context, name string) (*sample.Record, error) {
	if !validSampleName(name) {
		return nil, core.NewInvalidParameterError("sample name", fmt.Sprintf("%q must not contain path separators or dot-dot segments", name))
	}

	path := filepath.Join(s.dir, name)
	if filepath.Ext(path) == "" {
		path += ".json"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: sample %s", core.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read sample %s: %w", name, err)
	}

	var record sample.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, core.NewMalformedInputError(fmt.Sprintf("sample %s is not valid JSON: %v", name, err))
	}

	record.ID = core.NewID()
	record.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &record, nil
}

func validSampleName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// LoadAll loads every listed sample, for batch analysis.
func (s *FileSource) LoadAll(ctx context.Context) ([]*sample.Record, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*sample.Record, 0, len(names))
	for _, name := range names {
		record, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
