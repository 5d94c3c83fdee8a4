package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/de-tools/analytix/pkg/models/domain"
)

// DefaultDelimiter separates values in delimited text exports.
const DefaultDelimiter = ","

// WriteCSV writes a header line with the column names followed by one line
// per row. Values are written as-is without quoting.
func WriteCSV(w io.Writer, report *domain.Report, delimiter string) error {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(report.Columns(), delimiter)); err != nil {
		return err
	}

	values := make([]string, len(report.Columns()))
	for _, row := range report.Rows() {
		for i, v := range row {
			values[i] = formatValue(v)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(values, delimiter)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveCSV writes the report to path and returns the final path. The ".tsv"
// extension is used for tab delimited output, ".csv" otherwise.
func SaveCSV(path string, report *domain.Report, delimiter string) (string, error) {
	ext := ".csv"
	if delimiter == "\t" {
		ext = ".tsv"
	}
	path = withExtension(path, ext)
	err := saveFile(path, func(w io.Writer) error {
		return WriteCSV(w, report, delimiter)
	})
	return path, err
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
