package ir

import (
	"encoding/json"
	"testing"
)

func TestParseVariance(t *testing.T) {
	cases := []struct {
		in   string
		want Variance
	}{
		{"", Invariant},
		{"invariant", Invariant},
		{"in", In},
		{"out", Out},
	}
	for _, c := range cases {
		got, err := ParseVariance(c.in)
		if err != nil {
			t.Fatalf("ParseVariance(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseVariance(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseVariance_Unknown(t *testing.T) {
	if _, err := ParseVariance("sideways"); err == nil {
		t.Error("ParseVariance should reject unknown variance")
	}
}

func TestVariance_JSONRoundTrip(t *testing.T) {
	for _, v := range []Variance{Invariant, In, Out} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		var back Variance
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != v {
			t.Errorf("round trip of %v produced %v", v, back)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	cases := []struct {
		in   string
		want Visibility
	}{
		{"", Public},
		{"public", Public},
		{"protected", Protected},
		{"internal", Internal},
		{"private", Private},
	}
	for _, c := range cases {
		got, err := ParseVisibility(c.in)
		if err != nil {
			t.Fatalf("ParseVisibility(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseVisibility(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if _, err := ParseVisibility("friend"); err == nil {
		t.Error("ParseVisibility should reject unknown visibility")
	}
}

func TestError_Format(t *testing.T) {
	err := Errorf(CodeArityMismatch, "expected %d arguments, got %d", 2, 3)
	want := "arity_mismatch: expected 2 arguments, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
