package expand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
	"module": "sample",
	"classifiers": [
		{"kind": "class", "package": "kotlin.collections", "name": "List",
		 "typeParameters": [{"name": "E", "variance": "out"}]},
		{"kind": "typeAlias", "package": "sample", "name": "MyList",
		 "typeParameters": [{"name": "E"}],
		 "underlying": {
			"kind": "class",
			"classifier": {"package": "kotlin.collections", "name": "List"},
			"arguments": [{"type": {"kind": "typeParameter", "parameter": "E"}}]
		 }},
		{"kind": "typeAlias", "package": "sample", "name": "NullableOf",
		 "typeParameters": [{"name": "T"}],
		 "underlying": {"kind": "typeParameter", "parameter": "T", "nullable": true}}
	]
}`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "declarations.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestExpand_AllAliases(t *testing.T) {
	cmd := &Cmd{File: writeDoc(t, sampleDoc)}
	require.NoError(t, cmd.Run())
}

func TestExpand_BareParameterAliasSelected(t *testing.T) {
	cmd := &Cmd{File: writeDoc(t, sampleDoc), Alias: "sample/NullableOf", NoAbbreviation: true}
	require.NoError(t, cmd.Run())
}

func TestExpand_UnknownAlias(t *testing.T) {
	cmd := &Cmd{File: writeDoc(t, sampleDoc), Alias: "sample/Nope"}
	err := cmd.Run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no type alias named")
}
