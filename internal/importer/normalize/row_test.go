package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendly/internal/importer/csvtext"
	"github.com/MrJamesThe3rd/spendly/internal/importer/normalize"
)

func newNormalizer() *normalize.Normalizer {
	n := normalize.New("Transazione")
	n.Now = func() time.Time { return today }

	return n
}

func TestNormalizer_Row(t *testing.T) {
	cols := normalize.Columns{Date: 0, Description: 1, Amount: 2, Category: 3}

	type args struct {
		row   csvtext.Row
		cols  normalize.Columns
		index int
	}

	type testCase struct {
		name     string
		args     args
		want     normalize.Fields
		wantKeep bool
	}

	tests := []testCase{
		{
			name: "Complete row",
			args: args{row: csvtext.Row{"15/03/2024", "Supermarket, downtown", "45.20", "Alimentari"}, cols: cols, index: 1},
			want: normalize.Fields{
				Date:          "2024-03-15",
				Description:   "Supermarket, downtown",
				Amount:        "-45.20",
				AmountOK:      true,
				CategoryLabel: "Alimentari",
			},
			wantKeep: true,
		},
		{
			name: "Empty description gets placeholder",
			args: args{row: csvtext.Row{"2024-03-16", "", "12.50", ""}, cols: cols, index: 2},
			want: normalize.Fields{
				Date:        "2024-03-16",
				Description: "Transazione 2",
				Amount:      "-12.50",
				AmountOK:    true,
			},
			wantKeep: true,
		},
		{
			name: "Bad amount with empty description is dropped",
			args: args{row: csvtext.Row{"2024-03-16", "", "abc", ""}, cols: cols, index: 3},
			want: normalize.Fields{
				Date:        "2024-03-16",
				Description: "Transazione 3",
			},
			wantKeep: false,
		},
		{
			name: "Bad amount with description is dropped",
			args: args{row: csvtext.Row{"2024-03-16", "Coffee", "abc", ""}, cols: cols, index: 4},
			want: normalize.Fields{
				Date:        "2024-03-16",
				Description: "Coffee",
			},
			wantKeep: false,
		},
		{
			name: "Thousands separator does not parse and is dropped",
			args: args{row: csvtext.Row{"2024-03-16", "Rent", "1.234,56", ""}, cols: cols, index: 5},
			want: normalize.Fields{
				Date:        "2024-03-16",
				Description: "Rent",
			},
			wantKeep: false,
		},
		{
			name: "Category column not mapped",
			args: args{
				row:   csvtext.Row{"2024-03-16", "Coffee", "2", "Bar"},
				cols:  normalize.Columns{Date: 0, Description: 1, Amount: 2, Category: normalize.NoColumn},
				index: 1,
			},
			want: normalize.Fields{
				Date:        "2024-03-16",
				Description: "Coffee",
				Amount:      "-2",
				AmountOK:    true,
			},
			wantKeep: true,
		},
		{
			name: "Short row reads missing cells as empty",
			args: args{row: csvtext.Row{"garbage"}, cols: cols, index: 7},
			want: normalize.Fields{
				Date:        "2025-06-01",
				Description: "Transazione 7",
				Amount:      "0",
				AmountOK:    true,
			},
			wantKeep: true,
		},
	}

	n := newNormalizer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Row(tt.args.row, tt.args.cols, tt.args.index)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKeep, got.Keep())
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Coffee", normalize.Description("  Coffee ", "Transaction", 1))
	assert.Equal(t, "Transaction 4", normalize.Description("   ", "Transaction", 4))
}
