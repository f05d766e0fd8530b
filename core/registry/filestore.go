package registry

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/calliope-nlp/corpusmeta/core/errors"
)

// FileStore persists the registry mapping as a single JSON document. A path
// ending in ".xz" is transparently compressed and decompressed.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Read loads the entire mapping from disk.
func (s *FileStore) Read() (Mapping, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.NewIO("read", s.Path, err)
	}

	if s.compressed() {
		xzr, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, errors.NewIO("decompress", s.Path, err)
		}
		raw, err = io.ReadAll(xzr)
		if err != nil {
			return nil, errors.NewIO("decompress", s.Path, err)
		}
	}

	var m Mapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.NewParse("JSON", s.Path, err.Error())
	}
	return m, nil
}

// Write stores the entire mapping to disk.
func (s *FileStore) Write(m Mapping) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal registry")
	}

	if s.compressed() {
		var buf bytes.Buffer
		xzw, err := xz.NewWriter(&buf)
		if err != nil {
			return errors.NewIO("compress", s.Path, err)
		}
		if _, err := xzw.Write(data); err != nil {
			xzw.Close()
			return errors.NewIO("compress", s.Path, err)
		}
		if err := xzw.Close(); err != nil {
			return errors.NewIO("compress", s.Path, err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return errors.NewIO("write", s.Path, err)
	}
	return nil
}

// Exists reports whether the backing file is already present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

func (s *FileStore) compressed() bool {
	return strings.HasSuffix(s.Path, ".xz")
}
