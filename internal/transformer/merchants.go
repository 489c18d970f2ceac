package transformer

import "github.com/jvportella/dataset-financial-transactions/internal/schema"

// DeriveMerchants projects transactions onto (merchant_id, merchant_city,
// merchant_state, zip, mcc) and drops exact duplicates of that projection,
// keeping first-seen order. merchant_id becomes the merchant's id.
//
// A merchant id seen with two different locations yields two rows; the
// second is skipped by the insert's conflict handling.
func DeriveMerchants(recs []schema.TransactionRecord) []schema.Merchant {
	seen := make(map[schema.Merchant]struct{})
	out := make([]schema.Merchant, 0)
	for _, r := range recs {
		m := schema.Merchant{
			ID:    r.MerchantID,
			City:  r.MerchantCity,
			State: r.MerchantState,
			Zip:   r.Zip,
			MCC:   r.MCC,
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
