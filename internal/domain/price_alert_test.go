package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestPriceAlertShouldTrigger(t *testing.T) {
	target := decimal.RequireFromString("50.00")

	cases := []struct {
		name      string
		enabled   bool
		triggered bool
		price     string
		want      bool
	}{
		{"below target", true, false, "49.99", true},
		{"equal to target", true, false, "50.00", true},
		{"above target", true, false, "50.01", false},
		{"zero price", true, false, "0", false},
		{"disabled", false, false, "10", false},
		{"already triggered", true, true, "10", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := PriceAlert{TargetPrice: target, Enabled: tc.enabled, Triggered: tc.triggered}
			if got := a.ShouldTrigger(decimal.RequireFromString(tc.price)); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestChangeFilterMatches(t *testing.T) {
	owner := uuid.New()
	ev := NewChangeEvent(TableAlerts, ChangeUpdate, owner, owner, nil)

	if !(ChangeFilter{OwnerID: owner}).Matches(ev) {
		t.Fatal("empty table filter must match any table")
	}
	if (ChangeFilter{OwnerID: owner, Table: TableProducts}).Matches(ev) {
		t.Fatal("filter for products must not match alerts event")
	}
	if (ChangeFilter{Table: TableAlerts}).Matches(ev) {
		t.Fatal("filter for another owner must not match")
	}
}
