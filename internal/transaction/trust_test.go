package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

func TestDeriveTrust(t *testing.T) {
	const uncategorized = "c-uncategorized"

	type args struct {
		confirmed   bool
		importedRaw *string
		categoryID  string
	}

	type testCase struct {
		name string
		args args
		want transaction.TrustState
	}

	tests := []testCase{
		{
			name: "Confirmed wins regardless of fields",
			args: args{confirmed: true, importedRaw: nil, categoryID: uncategorized},
			want: transaction.TrustConfirmed,
		},
		{
			name: "Confirmed import",
			args: args{confirmed: true, importedRaw: new("Alimentari"), categoryID: "c-groceries"},
			want: transaction.TrustConfirmed,
		},
		{
			name: "Matched import awaiting confirmation",
			args: args{importedRaw: new("Alimentari"), categoryID: "c-groceries"},
			want: transaction.TrustPreselected,
		},
		{
			name: "Matched label on uncategorized category",
			args: args{importedRaw: new("Non classificato"), categoryID: uncategorized},
			want: transaction.TrustMissing,
		},
		{
			name: "No imported label",
			args: args{importedRaw: nil, categoryID: "c-other"},
			want: transaction.TrustMissing,
		},
		{
			name: "Empty imported label",
			args: args{importedRaw: new(""), categoryID: "c-other"},
			want: transaction.TrustMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.DeriveTrust(tt.args.confirmed, tt.args.importedRaw, tt.args.categoryID, uncategorized)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Trust(t *testing.T) {
	tx := &transaction.Transaction{CategoryID: "c-groceries", ImportedCategoryRaw: new("Alimentari")}
	assert.Equal(t, transaction.TrustPreselected, tx.Trust(""))

	tx.Confirmed = true
	assert.Equal(t, transaction.TrustConfirmed, tx.Trust(""))
}
