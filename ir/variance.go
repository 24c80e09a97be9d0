package ir

import (
	"encoding/json"
	"fmt"
)

// Variance describes how a parameterized slot relates to subtyping: invariant,
// covariant (out), or contravariant (in). It appears both on formal type
// parameters (declaration-site) and on regular projections (use-site).
type Variance int

const (
	Invariant Variance = iota
	In                 // Contravariant
	Out                // Covariant
)

// String returns the string representation of the variance.
func (v Variance) String() string {
	switch v {
	case Invariant:
		return "invariant"
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Variance.
func (v Variance) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler for Variance.
// An empty string decodes to Invariant, matching serialized declaration forms
// that omit the variance of invariant slots.
func (v *Variance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVariance(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariance decodes a serialized variance name.
func ParseVariance(s string) (Variance, error) {
	switch s {
	case "", "invariant":
		return Invariant, nil
	case "in":
		return In, nil
	case "out":
		return Out, nil
	default:
		return Invariant, fmt.Errorf("unknown variance: %q", s)
	}
}

// Visibility is the declared visibility of a classifier.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Internal
	Private
)

// String returns the string representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Internal:
		return "internal"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Visibility.
func (v Visibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler for Visibility.
// An empty string decodes to Public.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVisibility(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVisibility decodes a serialized visibility name.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "", "public":
		return Public, nil
	case "protected":
		return Protected, nil
	case "internal":
		return Internal, nil
	case "private":
		return Private, nil
	default:
		return Public, fmt.Errorf("unknown visibility: %q", s)
	}
}
