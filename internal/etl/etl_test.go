package etl

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvportella/dataset-financial-transactions/internal/clean"
	"github.com/jvportella/dataset-financial-transactions/internal/config"
	"github.com/jvportella/dataset-financial-transactions/internal/logger"
	pcsv "github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
	"github.com/jvportella/dataset-financial-transactions/internal/schema"
	"github.com/jvportella/dataset-financial-transactions/internal/storage"
	"github.com/jvportella/dataset-financial-transactions/internal/storage/sqlite"
)

const (
	rawUsers = "id,current_age,retirement_age,birth_year,birth_month,gender,address,latitude,longitude,per_capita_income,yearly_income,total_debt,credit_score,num_credit_cards\n" +
		"825,53,66,1966,11,Female,462 Rose Lane,34.15,-117.76,$29278,$59696,$127613,787,5\n" +
		"825,53,66,1966,11,Female,462 Rose Lane,34.15,-117.76,$29278,$59696,$127613,787,5\n" +
		"1746,fifty,68,1966,12,,3606 Federal Boulevard,40.76,-73.74,$37891,$77254,$191349,701,5\n"
	rawCards = "id,client_id,card_brand,card_type,card_number,expires,cvv,has_chip,num_cards_issued,credit_limit,acct_open_date,year_pin_last_changed,card_on_dark_web\n" +
		"4524,825,Visa,Debit,4344676511950444,12/2022,623,YES,2,$24295,09/2002,2008,No\n"
	rawTx = "id,date,client_id,card_id,amount,use_chip,merchant_id,merchant_city,merchant_state,zip,mcc,errors\n" +
		"1,2010-01-01 00:01:00,825,4524,$-77.00,Swipe Transaction,59935,Beulah,ND,58523,5499,\n" +
		"1,2010-01-01 00:01:00,825,4524,$-77.00,Swipe Transaction,59935,Beulah,ND,58523,5499,\n" +
		"2,2010-01-01 00:02:00,1746,4524,$14.57,NO,67570,La Verne,CA,91750,5311,\n"
)

func writeRaw(t *testing.T) config.Config {
	t.Helper()
	in, out := t.TempDir(), t.TempDir()
	for name, body := range map[string]string{
		"users_data.csv":        rawUsers,
		"cards_data.csv":        rawCards,
		"transactions_data.csv": rawTx,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte(body), 0o644))
	}

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Data.InputDir, cfg.Data.OutputDir = in, out
	return cfg
}

func TestClean(t *testing.T) {
	cfg := writeRaw(t)

	res, err := Clean(context.Background(), "test", Datasets(cfg.Data), 0)
	require.NoError(t, err)
	require.Len(t, res, 3)

	users := res[0]
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, 2, users.Rows)
	assert.Equal(t, 1, users.Duplicates)
	assert.Equal(t, []string{"fifty"}, users.Issues["current_age"])
	assert.Equal(t, []string{""}, users.Issues["gender"])

	tx := res[2]
	assert.Equal(t, 1, tx.Duplicates)
	assert.Equal(t, []string{"Swipe Transaction"}, tx.Issues[clean.IssueInvalidUseChip])
	assert.Empty(t, tx.Issues[clean.IssueDuplicateIDs])

	b, err := os.ReadFile(filepath.Join(cfg.Data.OutputDir, "transactions_data_cleaned.csv"))
	require.NoError(t, err)
	header := strings.SplitN(string(b), "\n", 2)[0]
	assert.Equal(t, "id,date,client_id,card_id,amount,merchant_id,merchant_city,merchant_state,zip,mcc", header)

	_, err = os.Stat(filepath.Join(cfg.Data.OutputDir, "cards_data_cleaned.csv"))
	assert.NoError(t, err)
}

func TestClean_MissingInput(t *testing.T) {
	cfg := writeRaw(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.Data.InputDir, "cards_data.csv")))

	res, err := Clean(context.Background(), "test", Datasets(cfg.Data), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "clean cards")
	assert.Len(t, res, 1)
}

func TestReportIssues_SampleLimit(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf)

	ReportIssues(log, "users", clean.Issues{
		"current_age": {"a", "b", "c"},
		"gender":      {},
	}, 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry struct {
		Key    string   `json:"key"`
		Count  int      `json:"count"`
		Sample []string `json:"sample"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "current_age", entry.Key)
	assert.Equal(t, 3, entry.Count)
	assert.Equal(t, []string{"a", "b"}, entry.Sample)
}

func TestReportIssues_None(t *testing.T) {
	buf := &bytes.Buffer{}
	ReportIssues(logger.NewWithWriter(buf), "cards", clean.Issues{"cvv": {}}, 5)
	assert.Contains(t, buf.String(), "no issues")
}

func TestLoadDeps(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Data.OutputDir = "out"

	deps, err := LoadDeps(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "users_data_cleaned.csv"), deps.Users.Name())
	assert.Equal(t, storage.Config{Kind: "postgres", DSN: cfg.Database.DSN}, deps.Storage)

	cfg.Load.AmountPolicy = "maybe"
	_, err = LoadDeps(cfg)
	assert.Error(t, err)
}

func TestCleanThenLoad(t *testing.T) {
	cfg := writeRaw(t)
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "financial.db")
	conn, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	stmts, err := schema.CreateStatements("sqlite")
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := conn.DB().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	require.NoError(t, conn.Close(ctx))

	cfg.Database.Kind, cfg.Database.DSN = "sqlite", dbPath

	_, err = Clean(ctx, cfg.Job, Datasets(cfg.Data), cfg.Report.SampleLimit)
	require.NoError(t, err)
	sum, err := Load(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, sum.Tables, 4)

	want := map[string]int64{"users": 2, "cards": 1, "merchants": 2, "transactions": 2}
	for _, tr := range sum.Tables {
		assert.Equal(t, want[tr.Table], tr.Result.Inserted, tr.Table)
	}

	cleaned, err := pcsv.ReadSource(ctx, Datasets(cfg.Data)[0].Raw)
	require.NoError(t, err)
	assert.Equal(t, 3, cleaned.Len(), "raw files are never rewritten")
}
