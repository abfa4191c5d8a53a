package json

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reader reads JSON documents from disk
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadJSON unmarshals the file at path into target. A missing file yields an
// error matching os.ErrNotExist.
func (r *Reader) ReadJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from %s: %w", path, err)
	}

	return nil
}

// ReadWriter combines Reader and Writer.
type ReadWriter struct {
	*Reader
	*Writer
}

func NewReadWriter() *ReadWriter {
	return &ReadWriter{Reader: NewReader(), Writer: NewWriter()}
}
