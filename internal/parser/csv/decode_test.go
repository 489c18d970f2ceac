package csv_test

import (
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

type merchantRow struct {
	ID   string `csv:"merchant_id"`
	City string `csv:"merchant_city"`
}

func TestDecode(t *testing.T) {
	in := "\uFEFFid, merchant_id ,merchant_city,extra\n1,59935,Beulah,x\n2,,ONLINE,y\n"
	got, err := pcsv.Decode[merchantRow](strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []merchantRow{{"59935", "Beulah"}, {"", "ONLINE"}}, got)
}

func TestDecode_MissingColumn(t *testing.T) {
	_, err := pcsv.Decode[merchantRow](strings.NewReader("merchant_id\n1\n"))
	assert.Error(t, err)
}

func TestDecode_HeaderOnly(t *testing.T) {
	got, err := pcsv.Decode[merchantRow](strings.NewReader("merchant_id,merchant_city\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_Empty(t *testing.T) {
	_, err := pcsv.Decode[merchantRow](strings.NewReader(""))
	assert.ErrorContains(t, err, "empty input")
}

func TestDecodeSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions_data_cleaned.csv")
	require.NoError(t, os.WriteFile(path, []byte("merchant_id,merchant_city\n7,Houston\n"), 0o644))

	got, err := pcsv.DecodeSource[merchantRow](context.Background(), datasource.NewFile(path))
	require.NoError(t, err)
	assert.Equal(t, []merchantRow{{"7", "Houston"}}, got)
}
