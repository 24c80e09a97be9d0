package expand

import (
	"strconv"
	"strings"
	"sync"

	"github.com/nvvi9/kotlin/ir"
)

// Interner canonicalizes constructed type nodes so that structurally equal
// types share one instance and compare equal by pointer.
//
// The caches are keyed by full structural content, one cache per simple-type
// kind, and provide insert-or-return-existing semantics safe for concurrent
// expansions. Flexible types are not interned; they are plain pairs of interned
// simple types.
type Interner struct {
	mu         sync.Mutex
	classTypes map[string]*ir.ClassType
	aliasTypes map[string]*ir.TypeAliasType
	paramTypes map[string]*ir.TypeParameterType
}

// NewInterner returns an empty interner. Its lifetime is scoped by the caller,
// typically one compilation or commonization session.
func NewInterner() *Interner {
	return &Interner{
		classTypes: make(map[string]*ir.ClassType),
		aliasTypes: make(map[string]*ir.TypeAliasType),
		paramTypes: make(map[string]*ir.TypeParameterType),
	}
}

// ClassType returns the canonical instance for t, registering t if the
// structure is new. The returned node must not be modified.
func (in *Interner) ClassType(t *ir.ClassType) *ir.ClassType {
	key := typeKey(t)
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.classTypes[key]; ok {
		return existing
	}
	in.classTypes[key] = t
	return t
}

// TypeAliasType returns the canonical instance for t, registering t if the
// structure is new.
func (in *Interner) TypeAliasType(t *ir.TypeAliasType) *ir.TypeAliasType {
	key := typeKey(t)
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.aliasTypes[key]; ok {
		return existing
	}
	in.aliasTypes[key] = t
	return t
}

// TypeParameterType returns the canonical instance for t, registering t if the
// structure is new.
func (in *Interner) TypeParameterType(t *ir.TypeParameterType) *ir.TypeParameterType {
	key := typeKey(t)
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.paramTypes[key]; ok {
		return existing
	}
	in.paramTypes[key] = t
	return t
}

// typeKey renders the full structural content of a type as a cache key.
func typeKey(t ir.Type) string {
	var b strings.Builder
	appendTypeKey(&b, t)
	return b.String()
}

func appendTypeKey(b *strings.Builder, t ir.Type) {
	switch t := t.(type) {
	case *ir.ClassType:
		b.WriteString("C(")
		appendIdentifierKey(b, t.ID)
		appendNullableKey(b, t.MarkedNullable)
		if t.Outer != nil {
			b.WriteByte(';')
			appendTypeKey(b, t.Outer)
		}
		appendArgumentsKey(b, t.Arguments)
		b.WriteByte(')')
	case *ir.TypeAliasType:
		b.WriteString("A(")
		appendIdentifierKey(b, t.ID)
		appendNullableKey(b, t.MarkedNullable)
		b.WriteByte(';')
		appendTypeKey(b, t.Underlying)
		appendArgumentsKey(b, t.Arguments)
		b.WriteByte(')')
	case *ir.TypeParameterType:
		b.WriteString("P(")
		b.WriteString(strconv.Itoa(t.Index))
		appendNullableKey(b, t.MarkedNullable)
		b.WriteByte(')')
	case *ir.FlexibleType:
		b.WriteString("F(")
		appendTypeKey(b, t.LowerBound)
		b.WriteByte(';')
		appendTypeKey(b, t.UpperBound)
		b.WriteByte(')')
	}
}

// appendIdentifierKey quotes the package and name fields separately, so
// identities that only differ in where the package ends cannot collide.
func appendIdentifierKey(b *strings.Builder, id ir.ClassifierID) {
	b.WriteString(strconv.Quote(id.Package))
	b.WriteByte(',')
	b.WriteString(strconv.Quote(id.Name))
}

func appendArgumentsKey(b *strings.Builder, args []ir.TypeProjection) {
	for _, arg := range args {
		b.WriteByte(';')
		switch arg := arg.(type) {
		case ir.StarProjection:
			b.WriteByte('*')
		case ir.RegularProjection:
			b.WriteString(arg.Variance.String())
			b.WriteByte(':')
			appendTypeKey(b, arg.Type)
		}
	}
}

func appendNullableKey(b *strings.Builder, nullable bool) {
	if nullable {
		b.WriteString(";?")
	}
}
