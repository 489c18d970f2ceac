package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jvportella/dataset-financial-transactions/internal/schema"
)

func TestDeriveMerchants(t *testing.T) {
	recs := []schema.TransactionRecord{
		{ID: "1", MerchantID: "m1", MerchantCity: "NYC", MerchantState: "NY", Zip: "10001", MCC: "5411"},
		{ID: "2", MerchantID: "m1", MerchantCity: "NYC", MerchantState: "NY", Zip: "10001", MCC: "5411"},
		{ID: "3", MerchantID: "m2", MerchantCity: "ONLINE", MCC: "5300"},
		{ID: "4", MerchantID: "m1", MerchantCity: "Boston", MerchantState: "MA", Zip: "02101", MCC: "5411"},
	}

	got := DeriveMerchants(recs)
	assert.Equal(t, []schema.Merchant{
		{ID: "m1", City: "NYC", State: "NY", Zip: "10001", MCC: "5411"},
		{ID: "m2", City: "ONLINE", MCC: "5300"},
		{ID: "m1", City: "Boston", State: "MA", Zip: "02101", MCC: "5411"},
	}, got)
}

func TestDeriveMerchantsEmpty(t *testing.T) {
	assert.Empty(t, DeriveMerchants(nil))
}
