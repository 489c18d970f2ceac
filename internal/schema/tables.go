package schema

import "github.com/jvportella/dataset-financial-transactions/internal/storage"

// Destination tables, in load order. Column lists match the database schema
// exactly; the conflict key is each table's primary key.
var (
	UsersTable = storage.TableSpec{
		Name: "users",
		Columns: []string{
			"id", "current_age", "retirement_age", "birth_year", "birth_month",
			"gender", "address", "latitude", "longitude", "per_capita_income",
			"yearly_income", "total_debt", "credit_score", "num_credit_cards",
		},
		ConflictKey: "id",
	}

	CardsTable = storage.TableSpec{
		Name: "cards",
		Columns: []string{
			"id", "client_id", "card_brand", "card_type", "expires", "cvv",
			"has_chip", "num_cards_issued", "credit_limit", "acct_open_date",
			"year_pin_last_changed", "card_on_dark_web",
		},
		ConflictKey: "id",
	}

	MerchantsTable = storage.TableSpec{
		Name:        "merchants",
		Columns:     []string{"id", "merchant_city", "merchant_state", "zip", "mcc"},
		ConflictKey: "id",
	}

	TransactionsTable = storage.TableSpec{
		Name:        "transactions",
		Columns:     []string{"id", "date", "client_id", "card_id", "merchant_id", "amount"},
		ConflictKey: "id",
	}
)
