package csv_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvportella/dataset-financial-transactions/internal/datasource"
	pcsv "github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
)

func TestRead_HeaderAndRows(t *testing.T) {
	in := "\uFEFFid , gender,address\n1,Female,\"462 Rose Lane\"\n2,,\n"

	tbl, err := pcsv.Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "gender", "address"}, tbl.Header)
	assert.Equal(t, [][]string{
		{"1", "Female", "462 Rose Lane"},
		{"2", "", ""},
	}, tbl.Rows)
	assert.Equal(t, 2, tbl.Len())
}

func TestRead_FoldsAccentsInHeader(t *testing.T) {
	tbl, err := pcsv.Read(strings.NewReader("município,valor\nX,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"municipio", "valor"}, tbl.Header)
	// Cell values are never touched.
	assert.Equal(t, "X", tbl.Rows[0][0])
}

func TestRead_Errors(t *testing.T) {
	_, err := pcsv.Read(strings.NewReader(""))
	require.Error(t, err)

	_, err = pcsv.Read(strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err, "rows wider than the header must fail")
}

func TestRead_PadsShortRows(t *testing.T) {
	tbl, err := pcsv.Read(strings.NewReader("id,gender,address\n825,Female,462 Rose Lane\n1746,Male\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"825", "Female", "462 Rose Lane"},
		{"1746", "Male", ""},
	}, tbl.Rows)
}

func TestTable_ColumnAndDrop(t *testing.T) {
	tbl := pcsv.Table{
		Header: []string{"id", "use_chip", "amount", "errors"},
		Rows: [][]string{
			{"1", "NO", "$1.00", ""},
			{"2", "YES", "$2.00", "Bad PIN"},
		},
	}

	cells, ok := tbl.Column("amount")
	require.True(t, ok)
	assert.Equal(t, []string{"$1.00", "$2.00"}, cells)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)

	dropped := tbl.Drop("errors", "use_chip", "not_there")
	assert.Equal(t, []string{"id", "amount"}, dropped.Header)
	assert.Equal(t, [][]string{{"1", "$1.00"}, {"2", "$2.00"}}, dropped.Rows)

	// The source table is left as it was.
	assert.Len(t, tbl.Header, 4)
	assert.Len(t, tbl.Rows[0], 4)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "users_data_cleaned.csv")

	tbl := pcsv.Table{
		Header: []string{"id", "address"},
		Rows:   [][]string{{"1", "10 Main St, Apt 2"}, {"2", ""}},
	}
	require.NoError(t, pcsv.WriteFile(path, tbl))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")

	got, err := pcsv.ReadSource(context.Background(), datasource.NewFile(path))
	require.NoError(t, err)
	assert.Equal(t, tbl, got)
}

func TestWrite_QuotesWhenNeeded(t *testing.T) {
	var buf bytes.Buffer
	err := pcsv.Write(&buf, pcsv.Table{
		Header: []string{"a"},
		Rows:   [][]string{{"x,y"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "a\n\"x,y\"\n", buf.String())
}

func TestReadSource_Missing(t *testing.T) {
	_, err := pcsv.ReadSource(context.Background(), datasource.NewFile(filepath.Join(t.TempDir(), "nope.csv")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
