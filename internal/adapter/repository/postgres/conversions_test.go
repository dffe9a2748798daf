package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	values := []string{"0", "100", "-42.5", "0.00000001", "999999999999999999.99999999"}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			d, err := decimal.NewFromString(v)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			n, err := decimalToNumeric(d)
			if err != nil {
				t.Fatalf("to numeric: %v", err)
			}

			got, err := numericToDecimal(n)
			if err != nil {
				t.Fatalf("to decimal: %v", err)
			}
			if !got.Equal(d) {
				t.Fatalf("round trip mismatch: got %s, want %s", got, d)
			}
		})
	}
}

func TestNumericToDecimalInvalid(t *testing.T) {
	got, err := numericToDecimal(pgtype.Numeric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero for invalid numeric, got %s", got)
	}
}
