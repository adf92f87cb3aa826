package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100000),
			debitAmount: decimal.NewFromInt(50000),
			expectError: false,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100000),
			debitAmount: decimal.NewFromInt(100000),
			expectError: false,
		},
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100000),
			debitAmount: decimal.NewFromInt(150000),
			expectError: true,
		},
		{
			name:        "debit from zero balance",
			balance:     decimal.Zero,
			debitAmount: decimal.NewFromInt(50000),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDebit(tt.debitAmount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("100.50")}

	debited := acc.ApplyDebit(decimal.RequireFromString("0.50"))
	if debited.String() != "100" {
		t.Errorf("expected 100, got %s", debited.String())
	}

	credited := acc.ApplyCredit(decimal.RequireFromString("12345.50"))
	if credited.String() != "12446" {
		t.Errorf("expected 12446, got %s", credited.String())
	}
}

func TestNormalizeAccountID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ata", "ATA"},
		{"  ATA  ", "ATA"},
		{"ezra deby", "EZRA DEBY"},
		{"AISYAH", "AISYAH"},
	}

	for _, tt := range tests {
		if got := NormalizeAccountID(tt.in); got != tt.want {
			t.Errorf("NormalizeAccountID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
