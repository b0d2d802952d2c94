package server

import (
	"bytes"
	"io"
	"os"

	"github.com/diogenes-ai-code/timeago/internal/errors"
)

// FileSource reads the page from a file on every Open.
type FileSource struct {
	Path string
}

// Open reads the whole file.
func (f FileSource) Open() (io.Reader, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, errors.NotFound("page %s not found", f.Path)
	}
	if err != nil {
		return nil, errors.WrapInternal(err, "failed to read %s", f.Path)
	}
	return bytes.NewReader(data), nil
}
