// Package risk maps a disease probability to a risk tier.
package risk

type Tier string

const (
	Low      Tier = "LOW"
	Moderate Tier = "MODERATE"
	High     Tier = "HIGH"
)

// Tier boundaries in percent. Each boundary belongs to the higher tier.
const (
	ModerateThreshold = 40.0
	HighThreshold     = 70.0
)

// Band is one colored range of the gauge.
type Band struct {
	Tier  Tier    `json:"tier"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// Classify returns the tier of a probability in [0,100].
func Classify(probability float64) Tier {
	switch {
	case probability < ModerateThreshold:
		return Low
	case probability < HighThreshold:
		return Moderate
	default:
		return High
	}
}

// Bands returns the gauge ranges, lowest first.
func Bands() []Band {
	return []Band{
		{Tier: Low, From: 0, To: ModerateThreshold, Color: "lightgreen"},
		{Tier: Moderate, From: ModerateThreshold, To: HighThreshold, Color: "orange"},
		{Tier: High, From: HighThreshold, To: 100, Color: "crimson"},
	}
}

// Message is the text shown next to the probability.
func (t Tier) Message() string {
	switch t {
	case Low:
		return "Low risk"
	case Moderate:
		return "Moderate risk"
	default:
		return "High risk of heart disease"
	}
}

// Severity is the alert style: success, warning or error.
func (t Tier) Severity() string {
	switch t {
	case Low:
		return "success"
	case Moderate:
		return "warning"
	default:
		return "error"
	}
}
