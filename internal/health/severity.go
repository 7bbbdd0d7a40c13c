package health

import (
	"fmt"
	"strings"
)

// Severity orders findings; the zero value is not a valid severity
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Severities lists every severity, most severe first
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity accepts the names printed by String, in any case
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (valid: critical, high, medium, low)", name)
	}
}

// AtLeast reports whether s is as severe as other or more
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}

// Weights are the health-score deductions per cycle of each severity
type Weights struct {
	Critical float64 `mapstructure:"critical" yaml:"critical" json:"critical" validate:"gte=0"`
	High     float64 `mapstructure:"high" yaml:"high" json:"high" validate:"gte=0"`
	Medium   float64 `mapstructure:"medium" yaml:"medium" json:"medium" validate:"gte=0"`
	Low      float64 `mapstructure:"low" yaml:"low" json:"low" validate:"gte=0"`
}

func DefaultWeights() Weights {
	return Weights{Critical: 25, High: 15, Medium: 8, Low: 3}
}

func (w Weights) For(s Severity) float64 {
	switch s {
	case SeverityCritical:
		return w.Critical
	case SeverityHigh:
		return w.High
	case SeverityMedium:
		return w.Medium
	case SeverityLow:
		return w.Low
	default:
		return 0
	}
}
