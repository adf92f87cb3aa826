package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		expectError bool
	}{
		{name: "integer amount", input: "50000", want: "50000"},
		{name: "fractional amount stays exact", input: "12345.50", want: "12345.5"},
		{name: "surrounding whitespace", input: " 100 ", want: "100"},
		{name: "zero rejected", input: "0", expectError: true},
		{name: "negative rejected", input: "-100", expectError: true},
		{name: "garbage rejected", input: "abc", expectError: true},
		{name: "empty rejected", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestValidateDenomination(t *testing.T) {
	unit := decimal.NewFromInt(50000)

	tests := []struct {
		name        string
		amount      string
		expectError bool
	}{
		{name: "exact unit", amount: "50000"},
		{name: "multiple of unit", amount: "150000"},
		{name: "not a multiple", amount: "75000", expectError: true},
		{name: "fractional", amount: "50000.5", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDenomination(decimal.RequireFromString(tt.amount), unit)

			if tt.expectError && !errors.Is(err, ErrNotDenominated) {
				t.Errorf("expected ErrNotDenominated, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("0.01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate.String() != "0.01" {
		t.Errorf("got %s, want 0.01", rate.String())
	}

	for _, bad := range []string{"0", "-0.01", "one percent"} {
		if _, err := ParseRate(bad); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("ParseRate(%q): expected ErrInvalidRate, got %v", bad, err)
		}
	}
}
