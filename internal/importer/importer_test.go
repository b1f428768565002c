package importer

import (
	"bytes"
	"strings"
	"testing"

	"macrobius_srs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRead_CSV(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRows   []Row
		wantErrors []model.ImportRowError
		wantErr    bool
	}{
		{
			name:  "正常系: 列の順序と大文字小文字は問わない",
			input: "Text,GLOSS_EN,item_id\namor,love,\nvirtus,virtue,virtus-1\n",
			wantRows: []Row{
				{Line: 2, Text: "amor", GlossEN: "love"},
				{Line: 3, Text: "virtus", GlossEN: "virtue", ItemID: "virtus-1"},
			},
			wantErrors: []model.ImportRowError{},
		},
		{
			name:       "text が空の行はエラーとして報告",
			input:      "text,gloss_de\n,Liebe\nSaturnalia,Saturnalien\n\n",
			wantRows:   []Row{{Line: 3, Text: "Saturnalia", GlossDE: "Saturnalien"}},
			wantErrors: []model.ImportRowError{{Row: 2, Message: "text is empty"}},
		},
		{
			name:    "text 列が無い",
			input:   "word,gloss\namor,love\n",
			wantErr: true,
		},
		{
			name:    "空ファイル",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Read(strings.NewReader(tt.input), "csv")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, res.Rows)
			assert.Equal(t, tt.wantErrors, res.Errors)
		})
	}
}

func TestRead_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"item_id", "text", "gloss_en", "source"},
		{"somnium", "somnium Scipionis", "dream of Scipio", "Comm. 1.1"},
		{"", "", "missing text", ""},
		{"", "convivium", "banquet", "Sat. 1.1"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := Read(bytes.NewReader(buf.Bytes()), "XLSX")
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Line: 2, ItemID: "somnium", Text: "somnium Scipionis", GlossEN: "dream of Scipio", Source: "Comm. 1.1"},
		{Line: 4, Text: "convivium", GlossEN: "banquet", Source: "Sat. 1.1"},
	}, res.Rows)
	assert.Equal(t, []model.ImportRowError{{Row: 3, Message: "text is empty"}}, res.Errors)
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader("text\namor\n"), "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
