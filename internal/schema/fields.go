// Package schema defines the patient attributes collected by the form,
// their domains and the defaults the form starts from.
package schema

// Kind tells the encoder how an attribute becomes feature columns.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindBinary      Kind = "binary"
	KindCategorical Kind = "categorical"
	KindOrdinal     Kind = "ordinal"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one form input.
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Help    string   `json:"help"`
	Kind    Kind     `json:"kind"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Step    float64  `json:"step,omitempty"`
	Options []Option `json:"options,omitempty"`
	Default string   `json:"default"`
}

// Slider reports whether the field is rendered as a range input.
func (f Field) Slider() bool {
	return f.Kind == KindNumeric
}

var (
	yesNo = []Option{{Value: "1", Label: "Yes"}, {Value: "0", Label: "No"}}

	fields = []Field{
		{Name: "age", Label: "Age- in years", Help: "Enter your current age in years.",
			Kind: KindNumeric, Min: 25, Max: 85, Step: 1, Default: "50"},
		{Name: "sex", Label: "Sex", Help: "Biological sex as recorded in medical history.",
			Kind: KindBinary, Options: []Option{{Value: "1", Label: "Male"}, {Value: "0", Label: "Female"}}, Default: "1"},
		{Name: "cp", Label: "Chest Pain Type", Help: "What kind of pain or discomfort you experience in your chest.",
			Kind: KindCategorical, Options: labelled(
				"typical angina: during activity",
				"atypical angina: unusual pattern",
				"non-anginal: not heart-related",
				"asymptomatic: no pain",
			), Default: "typical angina: during activity"},
		{Name: "trestbps", Label: "Resting Blood Pressure (mm Hg)", Help: "Resting blood pressure. Normal range is 120/80 mm Hg.",
			Kind: KindNumeric, Min: 90, Max: 200, Step: 1, Default: "130"},
		{Name: "chol", Label: "Cholesterol (mg/dl)", Help: "Cholesterol level in the blood. Below 200 is generally desirable.",
			Kind: KindNumeric, Min: 100, Max: 600, Step: 1, Default: "250"},
		{Name: "fbs", Label: "Fasting Blood Sugar > 120 mg/dl", Help: "Whether your fasting blood sugar is higher than 120 mg/dL.",
			Kind: KindBinary, Options: yesNo, Default: "1"},
		{Name: "restecg", Label: "Resting ECG", Help: "Results from ECG test. Indicates any electrical activity issues of the heart.",
			Kind: KindCategorical, Options: labelled("normal", "ST-T wave abnormality", "left ventricular hypertrophy"), Default: "normal"},
		{Name: "thalach", Label: "Max Heart Rate Achieved", Help: "Highest heart rate recorded during exercise or stress test.",
			Kind: KindNumeric, Min: 70, Max: 210, Step: 1, Default: "150"},
		{Name: "exang", Label: "Exercise Induced Angina", Help: "Did you experience chest pain (angina) during exercise?",
			Kind: KindBinary, Options: []Option{{Value: "0", Label: "No"}, {Value: "1", Label: "Yes"}}, Default: "0"},
		{Name: "oldpeak", Label: "ST depression induced by exercise", Help: "Difference in ECG measurements before and after exercise. High values may indicate ischemia.",
			Kind: KindNumeric, Min: 0, Max: 6.2, Step: 0.1, Default: "1.0"},
		{Name: "slope", Label: "Slope of the peak ST segment", Help: "Describes the shape of the ST segment during peak exercise on ECG.",
			Kind: KindOrdinal, Options: labelled("0", "1", "2"), Default: "0"},
		{Name: "ca", Label: "Number of major vessels (0-3)", Help: "Number of major blood vessels showing blockage. Higher number = more severe.",
			Kind: KindOrdinal, Options: labelled("0", "1", "2", "3"), Default: "0"},
		{Name: "thal", Label: "Thalassemia", Help: "Indicates how well blood carries oxygen. Defects may affect heart function.",
			Kind: KindCategorical, Options: labelled("normal", "fixed defect", "reversible defect"), Default: "normal"},
	}
)

func labelled(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// Fields returns the ordered field definitions. The slice is a copy.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Lookup returns the definition of the named field.
func Lookup(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
