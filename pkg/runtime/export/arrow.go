package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/de-tools/analytix/pkg/models/domain"
)

var dateLayouts = map[string]string{
	domain.ColumnDay:   "2006-01-02",
	domain.ColumnMonth: "2006-01",
}

// ArrowOptions tunes ToArrow.
type ArrowOptions struct {
	// SkipDateConversion keeps day and month columns as strings.
	SkipDateConversion bool
	Allocator          memory.Allocator
}

// ToArrow converts the report into a single Arrow record. Column types follow
// the data type declared in the column headers and are inferred from the
// values when none is declared. Day and month columns become date32 unless
// conversion is skipped. The caller must Release the record.
func ToArrow(report *domain.Report, opts ArrowOptions) (arrow.Record, error) {
	rows, cols := report.Shape()
	if rows == 0 {
		return nil, fmt.Errorf("cannot build a table from %s: %w", report.Type(), domain.ErrNoRows)
	}

	mem := opts.Allocator
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	headers := report.Payload().ColumnHeaders
	data := report.Rows()
	fields := make([]arrow.Field, cols)
	for i, h := range headers {
		_, isDate := dateLayouts[h.Name]
		typ := columnType(h, data, i)
		if isDate && !opts.SkipDateConversion && typ == arrow.BinaryTypes.String {
			typ = arrow.FixedWidthTypes.Date32
		}
		fields[i] = arrow.Field{Name: h.Name, Type: typ, Nullable: true}
	}

	schema := arrow.NewSchema(fields, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for i, field := range fields {
		if err := appendColumn(b.Field(i), field, data, i); err != nil {
			return nil, err
		}
	}
	return b.NewRecord(), nil
}

func appendColumn(fb array.Builder, field arrow.Field, data [][]any, col int) error {
	for _, row := range data {
		v := row[col]
		if v == nil {
			fb.AppendNull()
			continue
		}

		switch b := fb.(type) {
		case *array.Date32Builder:
			s, _ := v.(string)
			t, err := time.Parse(dateLayouts[field.Name], s)
			if err != nil {
				return fmt.Errorf("column %s: invalid date %q: %w", field.Name, s, err)
			}
			b.Append(arrow.Date32FromTime(t))
		case *array.Int64Builder:
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("column %s: expected a number, got %T", field.Name, v)
			}
			b.Append(int64(f))
		case *array.Float64Builder:
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("column %s: expected a number, got %T", field.Name, v)
			}
			b.Append(f)
		case *array.BooleanBuilder:
			flag, ok := v.(bool)
			if !ok {
				return fmt.Errorf("column %s: expected a boolean, got %T", field.Name, v)
			}
			b.Append(flag)
		case *array.StringBuilder:
			b.Append(formatValue(v))
		default:
			fb.AppendNull()
		}
	}
	return nil
}

func columnType(h domain.ColumnHeader, data [][]any, col int) arrow.DataType {
	switch h.DataType {
	case domain.DataTypeInteger:
		return arrow.PrimitiveTypes.Int64
	case domain.DataTypeFloat:
		return arrow.PrimitiveTypes.Float64
	case domain.DataTypeString:
		return arrow.BinaryTypes.String
	default:
		return inferType(data, col)
	}
}

// inferType picks the narrowest Arrow type that holds every non-null value
// of the column. Mixed columns fall back to strings.
func inferType(data [][]any, col int) arrow.DataType {
	var (
		seen                  bool
		numbers, whole, bools = true, true, true
	)
	for _, row := range data {
		switch v := row[col].(type) {
		case nil:
			continue
		case float64:
			bools = false
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				whole = false
			}
		case bool:
			numbers = false
		default:
			numbers, bools = false, false
		}
		seen = true
	}

	switch {
	case !seen:
		return arrow.Null
	case numbers && whole:
		return arrow.PrimitiveTypes.Int64
	case numbers:
		return arrow.PrimitiveTypes.Float64
	case bools:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// WriteParquet writes the report as a Parquet file with snappy compression.
func WriteParquet(w io.Writer, report *domain.Report) error {
	rec, err := ToArrow(report, ArrowOptions{})
	if err != nil {
		return err
	}
	defer rec.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	fw, err := pqarrow.NewFileWriter(rec.Schema(), w, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return fw.Close()
}

// SaveParquet writes the report to path, appending ".parquet" when missing.
func SaveParquet(path string, report *domain.Report) (string, error) {
	path = withExtension(path, ".parquet")
	return path, saveFile(path, func(w io.Writer) error {
		return WriteParquet(w, report)
	})
}

// WriteFeather writes the report in the Arrow IPC file format (Feather v2).
func WriteFeather(w io.Writer, report *domain.Report) error {
	rec, err := ToArrow(report, ArrowOptions{})
	if err != nil {
		return err
	}
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()))
	if err != nil {
		return fmt.Errorf("failed to create feather writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to write feather: %w", err)
	}
	return fw.Close()
}

// SaveFeather writes the report to path, appending ".feather" when missing.
func SaveFeather(path string, report *domain.Report) (string, error) {
	path = withExtension(path, ".feather")
	return path, saveFile(path, func(w io.Writer) error {
		return WriteFeather(w, report)
	})
}
