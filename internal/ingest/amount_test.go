package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvwatch/sunlight/internal/ingest"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "Plain", in: "1000", want: 100000},
		{name: "Decimal", in: "1000.50", want: 100050},
		{name: "CurrencySymbol", in: "$1,000.00", want: 100000},
		{name: "ThousandsSeparators", in: "1,234,567.89", want: 123456789},
		{name: "Negative", in: "-588.74", want: -58874},
		{name: "Parenthesized", in: "(250.50)", want: -25050},
		{name: "Whitespace", in: "  $10.00 ", want: 1000},
		{name: "SubCentRounds", in: "0.005", want: 1},
		{name: "Unparsable", in: "N/A", wantErr: true},
		{name: "Empty", in: "", wantErr: true},
		{name: "OnlySymbols", in: "$ ,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ingest.ParseCents(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-03-15", "03/15/2024", "3/15/2024", "03-15-2024"} {
		got, err := ingest.ParseDate(in)
		require.NoError(t, err, "input %q", in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, want, *got, "input %q", in)
	}
}

func TestParseDate_Empty(t *testing.T) {
	got, err := ingest.ParseDate("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseDate_Unrecognized(t *testing.T) {
	_, err := ingest.ParseDate("sometime in March")
	assert.Error(t, err)
}
