package schema

import "github.com/jvportella/dataset-financial-transactions/internal/ddl"

func col(name string, t ddl.Type) ddl.ColumnDef {
	return ddl.ColumnDef{Name: name, Type: t, Nullable: true}
}

func key(name string, t ddl.Type) ddl.ColumnDef {
	return ddl.ColumnDef{Name: name, Type: t, PrimaryKey: true}
}

func ref(name string, t ddl.Type, target string) ddl.ColumnDef {
	return ddl.ColumnDef{Name: name, Type: t, Nullable: true, References: target}
}

// Definitions returns the expected database schema, parents first. Money
// columns other than transactions.amount keep their "$" text as cleaned.
func Definitions() []ddl.TableDef {
	return []ddl.TableDef{
		{Name: UsersTable.Name, Columns: []ddl.ColumnDef{
			key("id", ddl.Integer),
			col("current_age", ddl.Integer),
			col("retirement_age", ddl.Integer),
			col("birth_year", ddl.Integer),
			col("birth_month", ddl.Integer),
			col("gender", ddl.Text),
			col("address", ddl.Text),
			col("latitude", ddl.Real),
			col("longitude", ddl.Real),
			col("per_capita_income", ddl.Text),
			col("yearly_income", ddl.Text),
			col("total_debt", ddl.Text),
			col("credit_score", ddl.Integer),
			col("num_credit_cards", ddl.Integer),
		}},
		{Name: CardsTable.Name, Columns: []ddl.ColumnDef{
			key("id", ddl.Integer),
			ref("client_id", ddl.Integer, "users(id)"),
			col("card_brand", ddl.Text),
			col("card_type", ddl.Text),
			col("expires", ddl.Text),
			col("cvv", ddl.Integer),
			col("has_chip", ddl.Text),
			col("num_cards_issued", ddl.Integer),
			col("credit_limit", ddl.Text),
			col("acct_open_date", ddl.Text),
			col("year_pin_last_changed", ddl.Integer),
			col("card_on_dark_web", ddl.Text),
		}},
		{Name: MerchantsTable.Name, Columns: []ddl.ColumnDef{
			key("id", ddl.BigInt),
			col("merchant_city", ddl.Text),
			col("merchant_state", ddl.Text),
			col("zip", ddl.Text),
			col("mcc", ddl.Integer),
		}},
		{Name: TransactionsTable.Name, Columns: []ddl.ColumnDef{
			key("id", ddl.BigInt),
			{Name: "date", Type: ddl.Timestamp},
			ref("client_id", ddl.Integer, "users(id)"),
			ref("card_id", ddl.Integer, "cards(id)"),
			ref("merchant_id", ddl.BigInt, "merchants(id)"),
			{Name: "amount", Type: ddl.Real},
		}},
	}
}

// CreateStatements renders Definitions for a storage kind.
func CreateStatements(kind string) ([]string, error) {
	d, err := ddl.DialectFor(kind)
	if err != nil {
		return nil, err
	}
	return ddl.BuildAll(d, Definitions())
}
