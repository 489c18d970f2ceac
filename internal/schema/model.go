// Package schema declares one record type per destination table. Cleaned
// files are decoded into these structs by column name, so the set of fields
// each table loads is fixed at compile time.
package schema

// DefaultDate fills a missing transaction date.
const DefaultDate = "1970-01-01 00:00:00"

// User is a row of users_data_cleaned.csv. Values stay as cleaned text; the
// database casts them to the column types it declares.
type User struct {
	ID              string `csv:"id"`
	CurrentAge      string `csv:"current_age"`
	RetirementAge   string `csv:"retirement_age"`
	BirthYear       string `csv:"birth_year"`
	BirthMonth      string `csv:"birth_month"`
	Gender          string `csv:"gender"`
	Address         string `csv:"address"`
	Latitude        string `csv:"latitude"`
	Longitude       string `csv:"longitude"`
	PerCapitaIncome string `csv:"per_capita_income"`
	YearlyIncome    string `csv:"yearly_income"`
	TotalDebt       string `csv:"total_debt"`
	CreditScore     string `csv:"credit_score"`
	NumCreditCards  string `csv:"num_credit_cards"`
}

// Row returns u in UsersTable column order.
func (u User) Row() []any {
	return []any{
		text(u.ID), text(u.CurrentAge), text(u.RetirementAge), text(u.BirthYear),
		text(u.BirthMonth), text(u.Gender), text(u.Address), text(u.Latitude),
		text(u.Longitude), text(u.PerCapitaIncome), text(u.YearlyIncome),
		text(u.TotalDebt), text(u.CreditScore), text(u.NumCreditCards),
	}
}

// Card is a row of cards_data_cleaned.csv. Columns the cards table does not
// carry, such as card_number, are not decoded.
type Card struct {
	ID                 string `csv:"id"`
	ClientID           string `csv:"client_id"`
	CardBrand          string `csv:"card_brand"`
	CardType           string `csv:"card_type"`
	Expires            string `csv:"expires"`
	CVV                string `csv:"cvv"`
	HasChip            string `csv:"has_chip"`
	NumCardsIssued     string `csv:"num_cards_issued"`
	CreditLimit        string `csv:"credit_limit"`
	AcctOpenDate       string `csv:"acct_open_date"`
	YearPinLastChanged string `csv:"year_pin_last_changed"`
	CardOnDarkWeb      string `csv:"card_on_dark_web"`
}

// Row returns c in CardsTable column order.
func (c Card) Row() []any {
	return []any{
		text(c.ID), text(c.ClientID), text(c.CardBrand), text(c.CardType),
		text(c.Expires), text(c.CVV), text(c.HasChip), text(c.NumCardsIssued),
		text(c.CreditLimit), text(c.AcctOpenDate), text(c.YearPinLastChanged),
		text(c.CardOnDarkWeb),
	}
}

// TransactionRecord is a raw row of transactions_data_cleaned.csv, before any
// scrubbing or casting.
type TransactionRecord struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	ClientID      string `csv:"client_id"`
	CardID        string `csv:"card_id"`
	Amount        string `csv:"amount"`
	MerchantID    string `csv:"merchant_id"`
	MerchantCity  string `csv:"merchant_city"`
	MerchantState string `csv:"merchant_state"`
	Zip           string `csv:"zip"`
	MCC           string `csv:"mcc"`
}

// Transaction is a normalized row of the transactions table.
type Transaction struct {
	ID         int64
	Date       string
	ClientID   int64
	CardID     int64
	MerchantID int64
	Amount     float64
}

// Row returns t in TransactionsTable column order.
func (t Transaction) Row() []any {
	return []any{t.ID, t.Date, t.ClientID, t.CardID, t.MerchantID, t.Amount}
}

// Merchant is derived from transactions; ID is the transaction merchant_id.
type Merchant struct {
	ID    string
	City  string
	State string
	Zip   string
	MCC   string
}

// Row returns m in MerchantsTable column order.
func (m Merchant) Row() []any {
	return []any{text(m.ID), text(m.City), text(m.State), text(m.Zip), text(m.MCC)}
}

// text maps the empty cell to SQL NULL.
func text(s string) any {
	if s == "" {
		return nil
	}
	return s
}
