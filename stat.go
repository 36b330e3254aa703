package sentinel

import (
	"encoding/json"
	"fmt"
	"math"
)

// Value is the outcome of a metric computation. A metric whose mathematical
// precondition fails (empty series, zero variance, zero denominator) yields
// an undefined Value instead of an error, and some ratios legitimately
// degenerate to a signed infinity. Keeping the outcome tagged, rather than
// relying on float NaN/Inf bit patterns, keeps comparison and serialization
// well defined: a computed 0.0 is never confused with "undefined".
type Value struct {
	kind valueKind
	v    float64
}

type valueKind int

const (
	undefined valueKind = iota
	defined
	posInf
	negInf
)

// Def returns a defined Value. NaN and infinite floats are normalized to
// their tagged counterparts so arithmetic leaks cannot produce an
// ambiguous Value.
func Def(v float64) Value {
	switch {
	case math.IsNaN(v):
		return Undefined
	case math.IsInf(v, 1):
		return PosInf
	case math.IsInf(v, -1):
		return NegInf
	default:
		return Value{kind: defined, v: v}
	}
}

// Undefined is the sentinel for a metric whose precondition failed.
var Undefined = Value{kind: undefined}

// PosInf and NegInf are the signed-infinity sentinels.
var (
	PosInf = Value{kind: posInf}
	NegInf = Value{kind: negInf}
)

// IsDefined reports whether the value holds a finite float.
func (v Value) IsDefined() bool { return v.kind == defined }

// IsUndefined reports whether the value is the undefined sentinel.
func (v Value) IsUndefined() bool { return v.kind == undefined }

// IsInf reports whether the value is a signed-infinity sentinel.
// sign > 0 matches only +Inf, sign < 0 only -Inf, sign == 0 either.
func (v Value) IsInf(sign int) bool {
	return (sign >= 0 && v.kind == posInf) || (sign <= 0 && v.kind == negInf)
}

// Float returns the underlying float and true when the value is defined.
func (v Value) Float() (float64, bool) { return v.v, v.kind == defined }

func (v Value) String() string {
	switch v.kind {
	case defined:
		return fmt.Sprintf("%.6g", v.v)
	case posInf:
		return "+Inf"
	case negInf:
		return "-Inf"
	default:
		return "undefined"
	}
}

// MarshalJSON encodes a defined value as a number and the sentinels as
// strings, so consumers can always tell them apart.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == defined {
		return json.Marshal(v.v)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler, accepting the encoding
// produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Def(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid metric value %q", string(data))
	}
	switch s {
	case "+Inf":
		*v = PosInf
	case "-Inf":
		*v = NegInf
	case "undefined":
		*v = Undefined
	default:
		return fmt.Errorf("invalid metric value %q", s)
	}
	return nil
}
