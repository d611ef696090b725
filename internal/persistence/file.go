// Package persistence writes measurement artifacts to disk.
//
// Every artifact is produced by a single complete write. Concurrent runs may
// race on a filename, in which case the last writer wins, but a reader never
// observes an interleaving of two runs' contents.
package persistence

import (
	"encoding/json"
	"os"
	"path"
	"strings"
)

// DataFile describes an artifact written to disk.
type DataFile struct {
	// Path is the location of the artifact.
	Path string
	// Size is the number of bytes written.
	Size int
}

// WriteJSONFile marshals result and writes it to dir/name in a single write.
// The directory must already exist: measurement hosts pre-provision their
// data directories and a missing one is an environment error, not something
// to paper over here.
func WriteJSONFile(dir, name string, result interface{}) (*DataFile, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	filepath := path.Join(dir, name)
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return nil, err
	}
	return &DataFile{
		Path: filepath,
		Size: len(data),
	}, nil
}

// WriteLines writes the given values to filepath, one per line, in a single
// write. An empty slice produces an empty file. The parent directory must
// already exist.
func WriteLines(filepath string, lines []string) (*DataFile, error) {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	data := []byte(sb.String())
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return nil, err
	}
	return &DataFile{
		Path: filepath,
		Size: len(data),
	}, nil
}
