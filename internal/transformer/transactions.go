package transformer

import (
	"fmt"
	"strings"

	"github.com/jvportella/dataset-financial-transactions/internal/schema"
)

// Flag records a value that was loaded with a substitute. Flags are for
// printing; they never stop the load.
type Flag struct {
	ID     string
	Column string
	Raw    string
	Reason string
}

// RowError reports the transaction row and column that could not be cast.
type RowError struct {
	Row    int // 1-based data row in the cleaned file
	ID     string
	Column string
	Raw    string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("transactions row %d (id %q): %s %q: %v", e.Row, e.ID, e.Column, e.Raw, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// NormalizeTransactions prepares decoded cleaned rows for the transactions
// table, in order:
//
//   - amount is scrubbed with ScrubAmount;
//   - missing values are filled: identifiers with 0, date with
//     schema.DefaultDate, amount with 0.0;
//   - identifiers are cast to int64, date stays text, amount is float64.
//
// A malformed identifier is always an error. A malformed amount is an error
// under AmountFail and a flagged 0.0 under AmountDefault.
func NormalizeTransactions(recs []schema.TransactionRecord, policy AmountPolicy) ([]schema.Transaction, []Flag, error) {
	out := make([]schema.Transaction, 0, len(recs))
	var flags []Flag

	for i, r := range recs {
		tx := schema.Transaction{Date: r.Date}
		if strings.TrimSpace(tx.Date) == "" {
			tx.Date = schema.DefaultDate
		}

		ids := []struct {
			col string
			raw string
			dst *int64
		}{
			{"id", r.ID, &tx.ID},
			{"client_id", r.ClientID, &tx.ClientID},
			{"card_id", r.CardID, &tx.CardID},
			{"merchant_id", r.MerchantID, &tx.MerchantID},
		}
		for _, f := range ids {
			v, _, err := ParseID(f.raw)
			if err != nil {
				return nil, flags, &RowError{Row: i + 1, ID: r.ID, Column: f.col, Raw: f.raw, Err: err}
			}
			*f.dst = v
		}

		switch a := ScrubAmount(r.Amount); a.Status {
		case AmountOK:
			tx.Amount = a.Value
		case AmountMissing:
			tx.Amount = 0
		case AmountMalformed:
			if policy != AmountDefault {
				return nil, flags, &RowError{Row: i + 1, ID: r.ID, Column: "amount", Raw: r.Amount, Err: fmt.Errorf("malformed amount: %s", a.Reason)}
			}
			tx.Amount = 0
			flags = append(flags, Flag{ID: r.ID, Column: "amount", Raw: r.Amount, Reason: a.Reason})
		}

		out = append(out, tx)
	}
	return out, flags, nil
}
