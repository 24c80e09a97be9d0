package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const bareParameterDoc = `{
	"module": "sample",
	"classifiers": [
		{"kind": "class", "package": "kotlin", "name": "Int"},
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

func TestCheck_BareParameterAlias(t *testing.T) {
	cmd := &Cmd{File: writeDoc(t, bareParameterDoc)}
	require.NoError(t, cmd.Run())
}

func TestCheck_CyclicAliasRejected(t *testing.T) {
	cmd := &Cmd{File: writeDoc(t, `{
		"module": "sample",
		"classifiers": [
			{"kind": "typeAlias", "package": "sample", "name": "A",
			 "underlying": {"kind": "typeAlias", "classifier": {"package": "sample", "name": "B"}}},
			{"kind": "typeAlias", "package": "sample", "name": "B",
			 "underlying": {"kind": "typeAlias", "classifier": {"package": "sample", "name": "A"}}}
		]
	}`)}
	err := cmd.Run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "circular type alias")
}
