// Package importer は語彙リストのファイル (CSV / Excel) を読み込みます。
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"macrobius_srs/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat は csv / xlsx 以外の形式を指定したときのエラーです
var ErrUnsupportedFormat = errors.New("importer: unsupported format")

// 認識する列名 (大文字小文字は区別しない)
const (
	colItemID  = "item_id"
	colText    = "text"
	colGlossEN = "gloss_en"
	colGlossDE = "gloss_de"
	colSource  = "source"
)

// Row は取り込む 1 行分です。Line はファイル上の行番号 (ヘッダーが 1)
type Row struct {
	Line    int
	ItemID  string
	Text    string
	GlossEN string
	GlossDE string
	Source  string
}

// Result は読み込めた行と、読み飛ばした行のエラーです
type Result struct {
	Rows   []Row
	Errors []model.ImportRowError
}

// Read は format に応じてファイルを読み込みます。1 行目はヘッダーで、text 列は必須です
func Read(r io.Reader, format string) (*Result, error) {
	var records [][]string
	var err error

	switch strings.ToLower(format) {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("importer: file is empty")
	}
	return parseRecords(records)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: read csv: %w", err)
	}
	return records, nil
}

// readXLSX は先頭シートの全行を返します
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("importer: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func parseRecords(records [][]string) (*Result, error) {
	columns := make(map[string]int)
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	if _, ok := columns[colText]; !ok {
		return nil, fmt.Errorf("importer: header has no %q column", colText)
	}

	cell := func(record []string, col string) string {
		i, ok := columns[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	res := &Result{Rows: make([]Row, 0, len(records)-1), Errors: []model.ImportRowError{}}
	for i, record := range records[1:] {
		line := i + 2
		if isBlank(record) {
			continue
		}
		row := Row{
			Line:    line,
			ItemID:  cell(record, colItemID),
			Text:    cell(record, colText),
			GlossEN: cell(record, colGlossEN),
			GlossDE: cell(record, colGlossDE),
			Source:  cell(record, colSource),
		}
		if row.Text == "" {
			res.Errors = append(res.Errors, model.ImportRowError{Row: line, Message: "text is empty"})
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
