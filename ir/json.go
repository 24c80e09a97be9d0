package ir

import "encoding/json"

// JSON serialization support for canonical types.
// All nodes include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for ClassType.
func (t *ClassType) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind       string           `json:"kind"`
		ID         ClassifierID     `json:"id"`
		Outer      *ClassType       `json:"outer,omitempty"`
		Visibility Visibility       `json:"visibility"`
		Arguments  []TypeProjection `json:"arguments,omitempty"`
		Nullable   bool             `json:"nullable,omitempty"`
	}{
		Kind:       "class",
		ID:         t.ID,
		Outer:      t.Outer,
		Visibility: t.Visibility,
		Arguments:  t.Arguments,
		Nullable:   t.MarkedNullable,
	})
}

// MarshalJSON implements json.Marshaler for TypeAliasType.
func (t *TypeAliasType) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind       string           `json:"kind"`
		ID         ClassifierID     `json:"id"`
		Underlying ClassOrAliasType `json:"underlying"`
		Arguments  []TypeProjection `json:"arguments,omitempty"`
		Nullable   bool             `json:"nullable,omitempty"`
	}{
		Kind:       "typeAlias",
		ID:         t.ID,
		Underlying: t.Underlying,
		Arguments:  t.Arguments,
		Nullable:   t.MarkedNullable,
	})
}

// MarshalJSON implements json.Marshaler for TypeParameterType.
func (t *TypeParameterType) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string `json:"kind"`
		Index    int    `json:"index"`
		Nullable bool   `json:"nullable,omitempty"`
	}{
		Kind:     "typeParameter",
		Index:    t.Index,
		Nullable: t.MarkedNullable,
	})
}

// MarshalJSON implements json.Marshaler for FlexibleType.
func (t *FlexibleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind       string     `json:"kind"`
		LowerBound SimpleType `json:"lowerBound"`
		UpperBound SimpleType `json:"upperBound"`
	}{
		Kind:       "flexible",
		LowerBound: t.LowerBound,
		UpperBound: t.UpperBound,
	})
}

// MarshalJSON implements json.Marshaler for StarProjection.
func (StarProjection) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Star bool `json:"star"`
	}{
		Star: true,
	})
}

// MarshalJSON implements json.Marshaler for RegularProjection.
func (p RegularProjection) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Variance Variance `json:"variance"`
		Type     Type     `json:"type"`
	}{
		Variance: p.Variance,
		Type:     p.Type,
	})
}

// MarshalJSON implements json.Marshaler for ClassifierID.
func (id ClassifierID) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Package string `json:"package,omitempty"`
		Name    string `json:"name"`
	}{
		Package: id.Package,
		Name:    id.Name,
	})
}
