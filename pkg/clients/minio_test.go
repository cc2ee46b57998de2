package clients

import "testing"

func TestRawExpiryLifecycle(t *testing.T) {
	lc := RawExpiryLifecycle("scrape-logs/", 30)

	if len(lc.Rules) != 1 {
		t.Fatalf("want 1 rule, got %d", len(lc.Rules))
	}
	rule := lc.Rules[0]
	if rule.Status != "Enabled" || rule.RuleFilter.Prefix != "scrape-logs/" {
		t.Fatalf("unexpected rule %+v", rule)
	}
	if int(rule.Expiration.Days) != 30 {
		t.Fatalf("want 30 days, got %d", rule.Expiration.Days)
	}
}
