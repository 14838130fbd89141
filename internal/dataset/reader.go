package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/htmlindex"
)

// ReadOptions controls how input files are decoded.
type ReadOptions struct {
	// Delimiter for CSV. If 0, '\t' is used for .tsv files and ',' otherwise.
	Delimiter rune
	// Encoding is a WHATWG label ("latin1", "utf-8", "windows-1252"). Empty means utf-8.
	Encoding string
	// Sheet selects the XLSX worksheet by name; empty picks the first sheet.
	Sheet string
}

// Reader turns one input file into a Table.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt ReadOptions) (*Table, error)
}

var readers []Reader

// RegisterReader adds a reader; later registrations are tried after earlier ones.
func RegisterReader(r Reader) {
	readers = append(readers, r)
}

func init() {
	RegisterReader(xlsxReader{})
	RegisterReader(csvReader{})
}

// ReadFile selects a reader by file name and reads path into a table named name.
func ReadFile(name, path string, opt ReadOptions) (*Table, error) {
	for _, r := range readers {
		if r.CanRead(path) {
			t, err := r.Read(path, opt)
			if err != nil {
				return nil, err
			}
			t.Name = name
			return t, nil
		}
	}
	return nil, eris.Errorf("read %s: unsupported file type", filepath.Base(path))
}

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".csv" || ext == ".tsv" || ext == ".txt"
}

func (csvReader) Read(path string, opt ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open csv")
	}
	defer f.Close()

	src, err := decodingReader(f, opt.Encoding)
	if err != nil {
		return nil, err
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return readCSV(src, delim)
}

// readCSV reads a header and data rows. Rows with more fields than the header and
// rows the CSV reader rejects are skipped and counted instead of failing the load.
func readCSV(src io.Reader, delim rune) (*Table, error) {
	r := csv.NewReader(src)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable("", nil, nil), nil
		}
		return nil, eris.Wrap(err, "read header")
	}
	header = append([]string(nil), header...)

	var rows [][]string
	skipped := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped++
				continue
			}
			return nil, eris.Wrapf(err, "read row %d", len(rows)+skipped+1)
		}
		if len(rec) > len(header) {
			skipped++
			continue
		}
		rows = append(rows, rec)
	}
	t := NewTable("", header, rows)
	t.Skipped = skipped
	return t, nil
}

func decodingReader(r io.Reader, label string) (io.Reader, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return r, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, eris.Wrapf(err, "unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(r), nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func (xlsxReader) Read(path string, opt ReadOptions) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "open xlsx")
	}
	var sheet *xlsx.Sheet
	if opt.Sheet != "" {
		s, ok := f.Sheet[opt.Sheet]
		if !ok {
			names := make([]string, len(f.Sheets))
			for i, s := range f.Sheets {
				names[i] = s.Name
			}
			return nil, eris.Errorf("sheet %q not found in %s (available: %s)",
				opt.Sheet, filepath.Base(path), strings.Join(names, ", "))
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return NewTable("", nil, nil), nil
		}
		sheet = f.Sheets[0]
	}
	if len(sheet.Rows) == 0 {
		return NewTable("", nil, nil), nil
	}
	header := rowToStrings(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	skipped := 0
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if len(cells) > len(header) {
			if extra := strings.Join(cells[len(header):], ""); strings.TrimSpace(extra) != "" {
				skipped++
				continue
			}
			cells = cells[:len(header)]
		}
		rows = append(rows, cells)
	}
	t := NewTable("", header, rows)
	t.Skipped = skipped
	return t, nil
}

func rowToStrings(row *xlsx.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
