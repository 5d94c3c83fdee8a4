package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/services/reporttype"
)

type TableConfig struct {
	MinWidth int
	MaxWidth int
	// MaxRows limits the rendered rows; zero renders every row.
	MaxRows int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinWidth: 4,
		MaxWidth: 40,
		MaxRows:  50,
	}
}

// Reporter renders reports and catalog listings as fixed-width tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) WithConfig(config TableConfig) *Reporter {
	c.config = config
	return c
}

type tableView struct {
	Title   string
	Summary string
	Header  []string
	Rows    [][]string
	Hidden  int
	widths  []int
}

const tableTemplate = `
{{.Title}}
{{.Summary}}

{{separator}}
{{formatRow .Header}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{if .Hidden}}... {{.Hidden}} more row(s)
{{end}}`

// Handle renders the report as a table.
func (c *Reporter) Handle(report *domain.Report) error {
	rows, cols := report.Shape()
	view := tableView{
		Title:   report.Type(),
		Summary: fmt.Sprintf("Rows: %d  Columns: %d", rows, cols),
		Header:  report.Columns(),
	}

	for i, row := range report.Rows() {
		if c.config.MaxRows > 0 && i >= c.config.MaxRows {
			view.Hidden = rows - i
			break
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		view.Rows = append(view.Rows, cells)
	}
	return c.render(view)
}

// HandleTypes renders the catalog, one report type per row.
func (c *Reporter) HandleTypes(types []reporttype.ReportType) error {
	view := tableView{
		Title:   "Report types",
		Summary: fmt.Sprintf("Types: %d", len(types)),
		Header:  []string{"ID", "Name", "Dimensions", "Max results"},
	}
	for _, rt := range types {
		maxResults := "-"
		if rt.MaxResults > 0 {
			maxResults = fmt.Sprint(rt.MaxResults)
		}
		view.Rows = append(view.Rows, []string{
			rt.ID, rt.Name, strings.Join(rt.Dimensions(), ", "), maxResults,
		})
	}
	return c.render(view)
}

func (c *Reporter) render(view tableView) error {
	view.widths = c.columnWidths(view)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			var sb strings.Builder
			sb.WriteString("|")
			for i, w := range view.widths {
				cell := ""
				if i < len(cells) {
					cell = truncate(cells[i], w)
				}
				fmt.Fprintf(&sb, " %-*s |", w, cell)
			}
			return sb.String()
		},
		"separator": func() string {
			var sb strings.Builder
			sb.WriteString("+")
			for _, w := range view.widths {
				sb.WriteString(strings.Repeat("-", w+2))
				sb.WriteString("+")
			}
			return sb.String()
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(tableTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}

func (c *Reporter) columnWidths(view tableView) []int {
	widths := make([]int, len(view.Header))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	measure(view.Header)
	for _, row := range view.Rows {
		measure(row)
	}

	for i, w := range widths {
		if c.config.MaxWidth > 0 {
			w = min(w, c.config.MaxWidth)
		}
		widths[i] = max(c.config.MinWidth, w)
	}
	return widths
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
