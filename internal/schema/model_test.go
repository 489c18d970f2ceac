package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvportella/dataset-financial-transactions/internal/storage"
)

func TestTableSpecs_Valid(t *testing.T) {
	for _, spec := range []storage.TableSpec{UsersTable, CardsTable, MerchantsTable, TransactionsTable} {
		require.NoError(t, spec.Validate(), spec.Name)
		assert.Equal(t, spec.Columns[0], spec.ConflictKey, "%s: the natural key is the first column", spec.Name)
	}
}

func TestRows_MatchColumnCounts(t *testing.T) {
	assert.Len(t, User{}.Row(), len(UsersTable.Columns))
	assert.Len(t, Card{}.Row(), len(CardsTable.Columns))
	assert.Len(t, Merchant{}.Row(), len(MerchantsTable.Columns))
	assert.Len(t, Transaction{}.Row(), len(TransactionsTable.Columns))
}

func TestRow_EmptyCellIsNull(t *testing.T) {
	row := User{ID: "825", Gender: "Female"}.Row()
	assert.Equal(t, "825", row[0])
	assert.Nil(t, row[1])
	assert.Equal(t, "Female", row[5])
}

func TestTransactionRow_Order(t *testing.T) {
	tx := Transaction{ID: 1, Date: DefaultDate, ClientID: 2, CardID: 3, MerchantID: 4, Amount: -5.5}
	assert.Equal(t, []any{int64(1), DefaultDate, int64(2), int64(3), int64(4), -5.5}, tx.Row())
}

func TestDefinitions_MatchTableSpecs(t *testing.T) {
	specs := []storage.TableSpec{UsersTable, CardsTable, MerchantsTable, TransactionsTable}
	defs := Definitions()
	require.Len(t, defs, len(specs))
	for i, spec := range specs {
		assert.Equal(t, spec.Name, defs[i].Name)
		assert.Equal(t, spec.Columns, defs[i].ColumnNames(), spec.Name)
		assert.True(t, defs[i].Columns[spec.KeyIndex()].PrimaryKey, spec.Name)
	}
}

func TestCreateStatements(t *testing.T) {
	for _, kind := range []string{"postgres", "sqlite", "mysql", "mssql"} {
		stmts, err := CreateStatements(kind)
		require.NoError(t, err, kind)
		assert.Len(t, stmts, 4)
	}
	stmts, err := CreateStatements("postgres")
	require.NoError(t, err)
	assert.Contains(t, stmts[3], `"merchant_id" BIGINT REFERENCES "merchants"("id")`)
	assert.Contains(t, stmts[3], `"date" TIMESTAMP NOT NULL`)

	_, err = CreateStatements("oracle")
	assert.Error(t, err)
}
