package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/analytix/pkg/models/domain"
)

// WriteJSON writes the raw report payload to w. A positive indent pretty
// prints the document with that many spaces per level. Values are written
// unescaped, as the API returned them.
func WriteJSON(w io.Writer, report *domain.Report, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(report.Payload()); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// SaveJSON writes the report to path, appending ".json" when missing, and
// returns the final path.
func SaveJSON(path string, report *domain.Report, indent int) (string, error) {
	path = withExtension(path, ".json")
	err := saveFile(path, func(w io.Writer) error {
		return WriteJSON(w, report, indent)
	})
	return path, err
}

func withExtension(path, ext string) string {
	if strings.HasSuffix(path, ext) {
		return path
	}
	return path + ext
}

func saveFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
