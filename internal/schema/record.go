package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Binary is a yes/no attribute stored as 0 or 1.
type Binary int

const (
	No  Binary = 0
	Yes Binary = 1
)

// ParseBinary accepts the textual spellings the form and API clients use.
func ParseBinary(s string) (Binary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "y", "true", "male", "m":
		return Yes, nil
	case "0", "no", "n", "false", "female", "f":
		return No, nil
	}
	return No, fmt.Errorf("not a binary value: %q", s)
}

// UnmarshalJSON accepts 0/1, true/false and the strings ParseBinary knows.
func (b *Binary) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		if v {
			*b = Yes
		} else {
			*b = No
		}
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("not a binary value: %s", string(data))
		}
		*b = Binary(int(v))
	case string:
		parsed, err := ParseBinary(v)
		if err != nil {
			return err
		}
		*b = parsed
	default:
		return fmt.Errorf("not a binary value: %s", string(data))
	}
	return nil
}

// UnmarshalParam lets gin form binding accept the same spellings as JSON.
func (b *Binary) UnmarshalParam(param string) error {
	parsed, err := ParseBinary(param)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// PatientRecord is one prediction request.
type PatientRecord struct {
	Age      int     `json:"age" form:"age" binding:"min=25,max=85"`
	Sex      Binary  `json:"sex" form:"sex" binding:"oneof=0 1"`
	CP       string  `json:"cp" form:"cp"`
	Trestbps int     `json:"trestbps" form:"trestbps" binding:"min=90,max=200"`
	Chol     int     `json:"chol" form:"chol" binding:"min=100,max=600"`
	FBS      Binary  `json:"fbs" form:"fbs" binding:"oneof=0 1"`
	RestECG  string  `json:"restecg" form:"restecg"`
	Thalach  int     `json:"thalach" form:"thalach" binding:"min=70,max=210"`
	Exang    Binary  `json:"exang" form:"exang" binding:"oneof=0 1"`
	Oldpeak  float64 `json:"oldpeak" form:"oldpeak" binding:"min=0,max=6.2"`
	Slope    int     `json:"slope" form:"slope" binding:"oneof=0 1 2"`
	CA       int     `json:"ca" form:"ca" binding:"oneof=0 1 2 3"`
	Thal     string  `json:"thal" form:"thal"`
}

// Defaults returns the record the form starts from.
func Defaults() PatientRecord {
	rec := PatientRecord{}
	for _, f := range fields {
		rec.set(f.Name, f.Default)
	}
	return rec
}

// Numeric returns the value of a numeric, binary or ordinal attribute.
func (r PatientRecord) Numeric(name string) (float64, bool) {
	switch name {
	case "age":
		return float64(r.Age), true
	case "sex":
		return float64(r.Sex), true
	case "trestbps":
		return float64(r.Trestbps), true
	case "chol":
		return float64(r.Chol), true
	case "fbs":
		return float64(r.FBS), true
	case "thalach":
		return float64(r.Thalach), true
	case "exang":
		return float64(r.Exang), true
	case "oldpeak":
		return r.Oldpeak, true
	case "slope":
		return float64(r.Slope), true
	case "ca":
		return float64(r.CA), true
	}
	return 0, false
}

// Category returns the value of a categorical attribute.
func (r PatientRecord) Category(name string) (string, bool) {
	switch name {
	case "cp":
		return r.CP, true
	case "restecg":
		return r.RestECG, true
	case "thal":
		return r.Thal, true
	}
	return "", false
}

func (r *PatientRecord) set(name, value string) {
	switch name {
	case "cp":
		r.CP = value
		return
	case "restecg":
		r.RestECG = value
		return
	case "thal":
		r.Thal = value
		return
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return
	}
	switch name {
	case "age":
		r.Age = int(n)
	case "sex":
		r.Sex = Binary(n)
	case "trestbps":
		r.Trestbps = int(n)
	case "chol":
		r.Chol = int(n)
	case "fbs":
		r.FBS = Binary(n)
	case "thalach":
		r.Thalach = int(n)
	case "exang":
		r.Exang = Binary(n)
	case "oldpeak":
		r.Oldpeak = n
	case "slope":
		r.Slope = int(n)
	case "ca":
		r.CA = int(n)
	}
}
