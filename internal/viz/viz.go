// Package viz prepares the numbers handed to the gauge and radar charts.
package viz

import (
	"github.com/Skufu/heartrisk/internal/risk"
	"github.com/Skufu/heartrisk/internal/schema"
)

// DegenerateValue is used for every radar point when all indicators are equal.
const DegenerateValue = 0.5

type GaugeData struct {
	Title string      `json:"title"`
	Value float64     `json:"value"`
	Min   float64     `json:"min"`
	Max   float64     `json:"max"`
	Bands []risk.Band `json:"bands"`
}

type RadarPoint struct {
	Field string  `json:"field"`
	Label string  `json:"label"`
	Raw   float64 `json:"raw"`
	Value float64 `json:"value"`
}

type RadarData struct {
	Title  string       `json:"title"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	Points []RadarPoint `json:"points"`
}

var radarIndicators = []struct{ field, label string }{
	{"age", "Age"},
	{"trestbps", "Resting Blood Pressure"},
	{"chol", "Cholesterol Level"},
	{"thalach", "Max Heart Rate Achieved"},
	{"oldpeak", "ST Depression (Oldpeak)"},
}

func Gauge(probability float64) GaugeData {
	return GaugeData{
		Title: "Heart Disease Probability (%)",
		Value: probability,
		Min:   0,
		Max:   100,
		Bands: risk.Bands(),
	}
}

// Radar min-max normalizes the five indicators against each other, not
// against population statistics.
func Radar(rec schema.PatientRecord) RadarData {
	points := make([]RadarPoint, len(radarIndicators))
	for i, ind := range radarIndicators {
		v, _ := rec.Numeric(ind.field)
		points[i] = RadarPoint{Field: ind.field, Label: ind.label, Raw: v}
	}

	lo, hi := points[0].Raw, points[0].Raw
	for _, p := range points[1:] {
		if p.Raw < lo {
			lo = p.Raw
		}
		if p.Raw > hi {
			hi = p.Raw
		}
	}

	for i := range points {
		if hi == lo {
			points[i].Value = DegenerateValue
			continue
		}
		points[i].Value = (points[i].Raw - lo) / (hi - lo)
	}

	return RadarData{
		Title:  "Normalized Health Indicators",
		Min:    lo,
		Max:    hi,
		Points: points,
	}
}
