package storage

import (
	"path/filepath"
	"strings"

	"github.com/taskdeck/taskdeck/internal/apperr"
)

// Store file names are fixed per encoding.
const (
	jsonStoreFile = "tasks.json"
	xmlStoreFile  = "tasks.xml"
)

// codecs maps encoding names to their codec and store file name.
var codecs = map[string]struct {
	codec Codec
	file  string
}{
	"json": {jsonCodec{}, jsonStoreFile},
	"xml":  {xmlCodec{}, xmlStoreFile},
}

// New constructs the file-backed repository matching the given encoding
// name, rooted in dir. Unrecognized names fail with UNSUPPORTED_FORMAT.
func New(format, dir string) (*FileRepository, error) {
	entry, ok := codecs[strings.ToLower(format)]
	if !ok {
		return nil, apperr.Newf(apperr.UnsupportedFormat,
			"unsupported storage format %q (supported: %s)",
			format, strings.Join(SupportedFormats(), ", ")).
			WithDetails(map[string]any{
				"format":    format,
				"supported": SupportedFormats(),
			})
	}
	return NewFileRepository(filepath.Join(dir, entry.file), entry.codec)
}

// SupportedFormats returns the fixed set of encoding names.
func SupportedFormats() []string {
	return []string{"json", "xml"}
}
