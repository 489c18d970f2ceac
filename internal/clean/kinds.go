package clean

// UserKinds is the expected kind of every users_data.csv column.
var UserKinds = map[string]Kind{
	"id":                Numeric,
	"current_age":       Numeric,
	"retirement_age":    Numeric,
	"birth_year":        Numeric,
	"birth_month":       Numeric,
	"gender":            Categorical,
	"address":           Categorical,
	"latitude":          Numeric,
	"longitude":         Numeric,
	"per_capita_income": Numeric,
	"yearly_income":     Numeric,
	"total_debt":        Numeric,
	"credit_score":      Numeric,
	"num_credit_cards":  Numeric,
}

// CardKinds is the expected kind of every cards_data.csv column.
var CardKinds = map[string]Kind{
	"id":                    Numeric,
	"client_id":             Numeric,
	"card_brand":            Categorical,
	"card_type":             Categorical,
	"expires":               Categorical,
	"cvv":                   Numeric,
	"has_chip":              Categorical,
	"num_cards_issued":      Numeric,
	"credit_limit":          Numeric,
	"acct_open_date":        Categorical,
	"year_pin_last_changed": Numeric,
	"card_on_dark_web":      Categorical,
}
