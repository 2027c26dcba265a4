package types

// Severity represents how serious a violation of a rule is
type Severity string

const (
	// SeverityMinor marks advisory findings
	SeverityMinor Severity = "minor"
	// SeverityMajor marks findings that require rest before continuing
	SeverityMajor Severity = "major"
	// SeverityCritical marks findings that make the driver ineligible to drive
	SeverityCritical Severity = "critical"
)

// Rule is a registry entry describing one compliance check
type Rule struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
	Enabled     bool
	Parameters  map[string]float64
}

// Clone returns a deep copy of the rule
func (r Rule) Clone() Rule {
	c := r
	c.Parameters = make(map[string]float64, len(r.Parameters))
	for k, v := range r.Parameters {
		c.Parameters[k] = v
	}
	return c
}
