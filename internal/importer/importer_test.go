package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCSV_HeaderRow(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"container_w,container_h,tile_w,tile_h,allow_rotation,max_tiles",
		"20,20,10,10,true,",
		"25,15,5,10,false,3",
	}, "\n"))

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 2)

	assert.Equal(t, 20, result.Problems[0].ContainerW)
	assert.True(t, result.Problems[0].AllowRotation)
	assert.Equal(t, 0, result.Problems[0].MaxTiles)

	assert.Equal(t, 25, result.Problems[1].ContainerW)
	assert.False(t, result.Problems[1].AllowRotation)
	assert.Equal(t, 3, result.Problems[1].MaxTiles)
}

func TestImportCSV_HeaderAliases(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"sheet_w,sheet_h,part_w,part_h,rotate,center",
		"20,20,10,10,yes,0",
	}, "\n"))

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 1)
	assert.True(t, result.Problems[0].AllowRotation)
	assert.False(t, result.Problems[0].RequireCentering, "centering column overrides the default")
}

func TestImportCSV_PositionalWithoutHeader(t *testing.T) {
	path := writeTempCSV(t, "20,20,10,10,false\n30,10,10,10,true\n")

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 2)
	assert.False(t, result.Problems[0].AllowRotation)
	assert.True(t, result.Problems[1].AllowRotation)
	assert.True(t, result.Problems[0].RequireCentering, "positional format keeps the centering default")
}

func TestImportCSV_SemicolonDelimiterDetected(t *testing.T) {
	path := writeTempCSV(t, "container_w;container_h;tile_w;tile_h\n20;20;10;10\n")

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 1)
	assert.Contains(t, result.Warnings, "Detected semicolon delimiter")
}

func TestImportCSV_FractionalDimensionsRoundUp(t *testing.T) {
	path := writeTempCSV(t, "container_w,container_h,tile_w,tile_h\n20.2,19.9,10,10\n")

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, 21, result.Problems[0].ContainerW)
	assert.Equal(t, 20, result.Problems[0].ContainerH)
}

func TestImportCSV_BadRowsAreReportedAndSkipped(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"container_w,container_h,tile_w,tile_h",
		"20,20,10,10",
		"abc,20,10,10",
		"5,5,10,10",
		"30,10,10,10",
	}, "\n"))

	result := ImportCSV(path)
	require.Len(t, result.Problems, 2, "good rows survive bad neighbors")
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Line 3")
	assert.Contains(t, result.Errors[0], "container_w")
	assert.Contains(t, result.Errors[1], "Line 4")
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, "container_w,container_h,tile_w\n20,20,10\n")

	result := ImportCSV(path)
	assert.Empty(t, result.Problems)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "tile_h")
}

func TestImportCSV_UnrecognizedHeaderIsSkipped(t *testing.T) {
	path := writeTempCSV(t, "width,height,pw,ph\n20,20,10,10\n")

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 1, "non-numeric first row falls back to positional mapping")
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	result := ImportCSV(path)
	assert.Empty(t, result.Problems)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "empty")
}

func TestImportCSVFromReader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("20;20;10;10\n"), ';')
	require.Empty(t, result.Errors)
	require.Len(t, result.Problems, 1)
}

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"single column defaults to comma", "a\n1\n", ','},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectCSVDelimiter([]byte(tc.data)))
		})
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"", "1", "true", "TRUE", "t", "yes", "Y", " y "}
	for _, s := range truthy {
		assert.True(t, ParseBool(s), "%q should parse as true", s)
	}
	falsy := []string{"0", "false", "no", "n", "off", "maybe"}
	for _, s := range falsy {
		assert.False(t, ParseBool(s), "%q should parse as false", s)
	}
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"container_w", "container_h", "tile_w", "tile_h", "allow_rotation"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{20, 20, 10, 10, "false"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{5, 5, 10, 10, "false"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result := ImportExcel(path)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, 20, result.Problems[0].ContainerW)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 3")
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Empty(t, result.Problems)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Cannot open Excel file")
}
