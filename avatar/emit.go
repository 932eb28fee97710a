package avatar

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"tools.zach/dev/letteravatar/internal/atomicfile"
)

// ContentType is the media type of every avatar.
const ContentType = "image/png"

// WritePNG sets the Content-Type and Content-Length headers and writes data as
// the response body.
func WritePNG(w http.ResponseWriter, data []byte) error {
	h := w.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write png response: %w", err)
	}
	return nil
}

// WriteFile writes data to path atomically, creating missing parent
// directories.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := atomicfile.WriteAll(path, data, perm); err != nil {
		return fmt.Errorf("write avatar %s: %w", path, err)
	}
	return nil
}
