// internal/inventory/policy.go
package inventory

// MarkdownRule is the markdown/discard policy for one urgency bucket.
type MarkdownRule struct {
	ThresholdHours float64 `json:"threshold_hours"`
	Action         string  `json:"action"`
	Discount       int     `json:"discount"`
}

// Policy is the operator-tunable inventory policy, loaded from the data
// directory at startup. Thresholds and default expiry hours are data, not
// code, so they can change without a redeploy.
type Policy struct {
	MarkdownRules   map[string]MarkdownRule `json:"markdown_rules"`
	ExpirationHours map[string]float64      `json:"expiration_hours"`
}

// Urgency classifies remaining shelf life into high/medium/low using the
// configured thresholds. Severity is monotonic: fewer hours never yields a
// lower urgency.
func (p Policy) Urgency(remainingHours float64) string {
	if remainingHours <= p.MarkdownRules["high"].ThresholdHours {
		return "high"
	}
	if remainingHours <= p.MarkdownRules["medium"].ThresholdHours {
		return "medium"
	}
	return "low"
}

// DefaultExpiryHours returns the category's default shelf life, falling
// back to 8 hours for unknown categories.
func (p Policy) DefaultExpiryHours(category string) float64 {
	if h, ok := p.ExpirationHours[category]; ok {
		return h
	}
	return 8
}
