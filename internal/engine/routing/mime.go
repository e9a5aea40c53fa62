package routing

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMime sniffs the file's content and returns a bare MIME type such as
// "application/pdf". When the file cannot be read it falls back to the
// extension table; an empty string means nothing could be determined.
func DetectMime(path string) string {
	if mtype, err := mimetype.DetectFile(path); err == nil {
		return stripParams(mtype.String())
	}
	return stripParams(mime.TypeByExtension(filepath.Ext(path)))
}

func stripParams(value string) string {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}
