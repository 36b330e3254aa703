package sentinel

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDefNormalizes(t *testing.T) {
	if got := Def(math.NaN()); !got.IsUndefined() {
		t.Errorf("Def(NaN) = %s, want undefined", got)
	}
	if got := Def(math.Inf(1)); !got.IsInf(1) {
		t.Errorf("Def(+Inf) = %s, want +Inf", got)
	}
	if got := Def(math.Inf(-1)); !got.IsInf(-1) {
		t.Errorf("Def(-Inf) = %s, want -Inf", got)
	}
	if got := Def(0); !got.IsDefined() {
		t.Errorf("Def(0) = %s, want defined", got)
	}
}

func TestValueString(t *testing.T) {
	testCases := []struct {
		v    Value
		want string
	}{
		{Def(0.25), "0.25"},
		{Def(0), "0"},
		{Undefined, "undefined"},
		{PosInf, "+Inf"},
		{NegInf, "-Inf"},
	}
	for _, tc := range testCases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestValueJSON(t *testing.T) {
	// a computed zero and the undefined sentinel must not collapse into
	// each other across serialization
	for _, v := range []Value{Def(0), Def(-0.125), Undefined, PosInf, NegInf} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", v, err)
		}
		var back Value
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != v {
			t.Errorf("round trip of %s gave %s", v, back)
		}
	}

	var v Value
	if err := json.Unmarshal([]byte(`"NaN"`), &v); err == nil {
		t.Error("Unmarshal of unknown sentinel string should fail")
	}
}
