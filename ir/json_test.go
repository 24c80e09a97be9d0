package ir

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestClassType_MarshalJSON(t *testing.T) {
	ct := &ClassType{
		ID:        ClassifierID{Package: "kotlin.collections", Name: "List"},
		Arguments: []TypeProjection{Regular(Out, &ClassType{ID: ClassifierID{Package: "kotlin", Name: "Int"}})},
	}
	data, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, frag := range []string{`"kind":"class"`, `"name":"List"`, `"variance":"out"`} {
		if !strings.Contains(s, frag) {
			t.Errorf("JSON %s missing %s", s, frag)
		}
	}
}

func TestTypeAliasType_MarshalJSON(t *testing.T) {
	at := &TypeAliasType{
		ID:             ClassifierID{Package: "pkg", Name: "A"},
		Underlying:     &ClassType{ID: ClassifierID{Package: "kotlin", Name: "String"}},
		MarkedNullable: true,
	}
	data, err := json.Marshal(at)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, frag := range []string{`"kind":"typeAlias"`, `"underlying"`, `"nullable":true`} {
		if !strings.Contains(s, frag) {
			t.Errorf("JSON %s missing %s", s, frag)
		}
	}
}

func TestStarProjection_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Star)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"star":true}` {
		t.Errorf("star JSON = %s", data)
	}
}

func TestFlexibleType_MarshalJSON(t *testing.T) {
	ft := &FlexibleType{
		LowerBound: &ClassType{ID: ClassifierID{Package: "kotlin", Name: "String"}},
		UpperBound: &ClassType{ID: ClassifierID{Package: "kotlin", Name: "String"}, MarkedNullable: true},
	}
	data, err := json.Marshal(ft)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, frag := range []string{`"kind":"flexible"`, `"lowerBound"`, `"upperBound"`} {
		if !strings.Contains(s, frag) {
			t.Errorf("JSON %s missing %s", s, frag)
		}
	}
}
