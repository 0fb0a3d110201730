package clips

import (
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// sniffLen is enough header for every audio matcher filetype knows
const sniffLen = 261

// ContentType reports the MIME type of the file at path from its magic
// bytes, falling back to the extension and then to octet-stream
func ContentType(path string) string {
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		head := make([]byte, sniffLen)
		n, _ := io.ReadFull(f, head)
		if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown {
			return kind.MIME.Value
		}
	}

	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
