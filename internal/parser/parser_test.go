package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

func TestParse_CSV(t *testing.T) {
	data := []byte("name_en,category_icon,category_image\nFilling Machines,/icons/fill.svg,/img/fill.png\nCapping Machines,,\n")

	batch, err := Parse(data, MediaTypeCSV, Options{
		EntityType: domain.EntityCategory,
		Language:   domain.LangEnglish,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EntityCategory, batch.EntityType)
	assert.Equal(t, domain.LangEnglish, batch.Language)
	require.Len(t, batch.Records, 2)
	assert.Equal(t, "Filling Machines", batch.Records[0]["name_en"])
	assert.Equal(t, "/icons/fill.svg", batch.Records[0]["category_icon"])
	assert.Equal(t, "", batch.Records[1]["category_icon"])
}

func TestParse_CSVRaggedRows(t *testing.T) {
	// Short rows leave trailing fields absent rather than failing the parse.
	data := []byte("name_en,category_icon\nFilling Machines\n")

	batch, err := Parse(data, MediaTypeCSV, Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, "Filling Machines", batch.Records[0]["name_en"])
	_, ok := batch.Records[0]["category_icon"]
	assert.False(t, ok, "missing cell should leave the field absent")
}

func TestParse_CSVEmpty(t *testing.T) {
	batch, err := Parse([]byte(""), MediaTypeCSV, Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.NoError(t, err)
	assert.Empty(t, batch.Records)
}

func TestParse_CSVHeaderTrimmed(t *testing.T) {
	data := []byte(" name_en , category_icon \nFilling Machines,/icons/fill.svg\n")

	batch, err := Parse(data, MediaTypeCSV, Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, "Filling Machines", batch.Records[0]["name_en"])
}

func TestParse_JSONArray(t *testing.T) {
	data := []byte(`[{"model_name_en":"FM-100","stars":4.5},{"model_name_en":"FM-200"}]`)

	batch, err := Parse(data, MediaTypeJSON, Options{
		EntityType: domain.EntityProduct,
		Language:   domain.LangEnglish,
	})
	require.NoError(t, err)

	require.Len(t, batch.Records, 2)
	assert.Equal(t, "FM-100", batch.Records[0]["model_name_en"])
	assert.Equal(t, 4.5, batch.Records[0]["stars"])
}

func TestParse_JSONSingleObject(t *testing.T) {
	data := []byte(`{"name_en":"Filling Machines"}`)

	batch, err := Parse(data, MediaTypeJSON, Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, "Filling Machines", batch.Records[0]["name_en"])
}

func TestParse_JSONMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"name_en":`), MediaTypeJSON, Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
}

func TestParse_UnsupportedMediaType(t *testing.T) {
	_, err := Parse([]byte("a,b\n1,2"), "application/xml", Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestParse_MediaTypeParameters(t *testing.T) {
	data := []byte("name_en\nFilling Machines\n")

	batch, err := Parse(data, "text/csv; charset=utf-8", Options{EntityType: domain.EntityCategory, Language: domain.LangEnglish})
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
}

func TestParse_XLSX(t *testing.T) {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)

	header := sheet.AddRow()
	header.AddCell().SetString("model_name_en")
	header.AddCell().SetString("product_name")

	row := sheet.AddRow()
	row.AddCell().SetString("FM-100")
	row.AddCell().SetString("Filling Machine 100")

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	batch, err := Parse(buf.Bytes(), MediaTypeXLSX, Options{
		EntityType: domain.EntityProduct,
		Language:   domain.LangEnglish,
	})
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, "FM-100", batch.Records[0]["model_name_en"])
	assert.Equal(t, "Filling Machine 100", batch.Records[0]["product_name"])
}

func TestParse_XLSXMalformed(t *testing.T) {
	_, err := Parse([]byte("not a spreadsheet"), MediaTypeXLSX, Options{EntityType: domain.EntityProduct, Language: domain.LangEnglish})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
}

func TestParse_InferEntityType(t *testing.T) {
	tests := []struct {
		name string
		data string
		want domain.EntityType
	}{
		{"product from model_name_en", `[{"model_name_en":"FM-100"}]`, domain.EntityProduct},
		{"category from name_en", `[{"name_en":"Filling Machines"}]`, domain.EntityCategory},
		{"unknown shape", `[{"title":"whatever"}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := Parse([]byte(tt.data), MediaTypeJSON, Options{
				Language:        domain.LangEnglish,
				InferEntityType: true,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, batch.EntityType)
		})
	}
}

func TestParse_ExplicitEntityTypeWinsOverInference(t *testing.T) {
	batch, err := Parse([]byte(`[{"model_name_en":"FM-100"}]`), MediaTypeJSON, Options{
		EntityType:      domain.EntityCategory,
		Language:        domain.LangEnglish,
		InferEntityType: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EntityCategory, batch.EntityType)
}
