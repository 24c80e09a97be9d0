package expand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvvi9/kotlin/decl"
	"github.com/nvvi9/kotlin/ir"
)

var (
	intID      = ir.ClassifierID{Package: "kotlin", Name: "Int"}
	stringID   = ir.ClassifierID{Package: "kotlin", Name: "String"}
	listID     = ir.ClassifierID{Package: "kotlin.collections", Name: "List"}
	boxID      = ir.ClassifierID{Package: "sample", Name: "Box"}
	consumerID = ir.ClassifierID{Package: "sample", Name: "Consumer"}
	outerID    = ir.ClassifierID{Package: "sample", Name: "Outer"}
	innerID    = ir.ClassifierID{Package: "sample", Name: "Outer.Inner"}
	clsID      = ir.ClassifierID{Package: "sample", Name: "Cls"}
	clsInnerID = ir.ClassifierID{Package: "sample", Name: "Cls.Inner"}

	intListID     = ir.ClassifierID{Package: "sample", Name: "IntList"}
	myListID      = ir.ClassifierID{Package: "sample", Name: "MyList"}
	nestedListID  = ir.ClassifierID{Package: "sample", Name: "NestedList"}
	nullStrID     = ir.ClassifierID{Package: "sample", Name: "NullStr"}
	nullableOfID  = ir.ClassifierID{Package: "sample", Name: "NullableOf"}
	boxAliasID    = ir.ClassifierID{Package: "sample", Name: "BoxAlias"}
	outBoxID      = ir.ClassifierID{Package: "sample", Name: "OutBox"}
	outConsumerID = ir.ClassifierID{Package: "sample", Name: "OutConsumer"}
	t1ID          = ir.ClassifierID{Package: "sample", Name: "T1"}
	t2ID          = ir.ClassifierID{Package: "sample", Name: "T2"}
	t3ID          = ir.ClassifierID{Package: "sample", Name: "T3"}
	cycAID        = ir.ClassifierID{Package: "sample", Name: "CycA"}
	cycBID        = ir.ClassifierID{Package: "sample", Name: "CycB"}
)

func params(names ...string) []decl.TypeParameter {
	out := make([]decl.TypeParameter, len(names))
	for i, name := range names {
		out[i] = decl.TypeParameter{Name: name}
	}
	return out
}

// testRegistry declares the fixture universe shared by the expand tests.
func testRegistry(t *testing.T) *decl.Registry {
	t.Helper()

	reg := decl.NewRegistry()
	classifiers := []decl.Classifier{
		&decl.Class{ID: intID},
		&decl.Class{ID: stringID},
		&decl.Class{ID: listID, TypeParameters: []decl.TypeParameter{{Name: "E", Variance: ir.Out}}},
		&decl.Class{ID: boxID, TypeParameters: params("T")},
		&decl.Class{ID: consumerID, TypeParameters: []decl.TypeParameter{{Name: "T", Variance: ir.In}}},
		&decl.Class{ID: outerID, TypeParameters: params("O")},
		&decl.Class{ID: innerID, Outer: outerID, TypeParameters: params("I")},
		&decl.Class{ID: clsID},
		&decl.Class{ID: clsInnerID, Outer: clsID, TypeParameters: params("A", "B")},

		&decl.TypeAlias{ID: intListID,
			Underlying: decl.ClassRef(listID, decl.InvariantArg(decl.ClassRef(intID)))},
		&decl.TypeAlias{ID: myListID, TypeParameters: params("E"),
			Underlying: decl.ClassRef(listID, decl.InvariantArg(decl.ParamRef("E")))},
		&decl.TypeAlias{ID: nestedListID, TypeParameters: params("T"),
			Underlying: decl.AliasRef(myListID,
				decl.InvariantArg(decl.AliasRef(myListID, decl.InvariantArg(decl.ParamRef("T")))))},
		&decl.TypeAlias{ID: nullStrID,
			Underlying: decl.Nullable(decl.ClassRef(stringID))},
		&decl.TypeAlias{ID: nullableOfID, TypeParameters: params("T"),
			Underlying: decl.Nullable(decl.ParamRef("T"))},
		&decl.TypeAlias{ID: boxAliasID, TypeParameters: params("T"),
			Underlying: decl.ClassRef(boxID, decl.InvariantArg(decl.ParamRef("T")))},
		&decl.TypeAlias{ID: outBoxID, TypeParameters: params("T"),
			Underlying: decl.ClassRef(boxID, decl.Arg(ir.Out, decl.ParamRef("T")))},
		&decl.TypeAlias{ID: outConsumerID, TypeParameters: params("T"),
			Underlying: decl.ClassRef(consumerID, decl.Arg(ir.Out, decl.ParamRef("T")))},

		&decl.TypeAlias{ID: t1ID, TypeParameters: params("P0", "P1"),
			Underlying: decl.ClassRef(clsInnerID,
				decl.InvariantArg(decl.ParamRef("P1")), decl.InvariantArg(decl.ParamRef("P0")))},
		&decl.TypeAlias{ID: t2ID, TypeParameters: params("P0", "P1"),
			Underlying: decl.AliasRef(t1ID,
				decl.InvariantArg(decl.ParamRef("P0")), decl.InvariantArg(decl.ParamRef("P1")))},
		&decl.TypeAlias{ID: t3ID, TypeParameters: params("P0", "P1"),
			Underlying: decl.AliasRef(t2ID,
				decl.InvariantArg(decl.ParamRef("P1")), decl.InvariantArg(decl.ParamRef("P0")))},

		&decl.TypeAlias{ID: cycAID, Underlying: decl.AliasRef(cycBID)},
		&decl.TypeAlias{ID: cycBID, Underlying: decl.AliasRef(cycAID)},
	}
	for _, c := range classifiers {
		require.NoError(t, reg.Add(c))
	}
	return reg
}

func testEngine(t *testing.T) (*TypeFactory, *Expander, *Resolver) {
	t.Helper()
	factory := NewTypeFactory(nil)
	return factory, NewExpander(factory), NewResolver(testRegistry(t))
}

// expandAlias expands an alias instantiation without abbreviation, failing the
// test on any error.
func expandAlias(t *testing.T, f *TypeFactory, e *Expander, r *Resolver, id ir.ClassifierID, args ...ir.TypeProjection) ir.ClassOrAliasType {
	t.Helper()
	exp, err := f.NewExpansion(nil, id, args, r)
	require.NoError(t, err)
	out, err := e.ExpandWithoutAbbreviation(exp)
	require.NoError(t, err)
	return out
}

// unwrapAliases follows the underlying chain down to the first non-alias type.
func unwrapAliases(t ir.ClassOrAliasType) ir.ClassOrAliasType {
	for {
		alias, ok := t.(*ir.TypeAliasType)
		if !ok {
			return t
		}
		t = alias.Underlying
	}
}

func requireCode(t *testing.T, err error, code ir.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var engineErr *ir.Error
	require.ErrorAs(t, err, &engineErr)
	require.Equal(t, code, engineErr.Code)
}
