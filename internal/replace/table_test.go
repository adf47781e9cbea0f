package replace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApply_SourceExamplesPath(t *testing.T) {
	in := "See .. literalinclude:: {source_examples_path}/cpp_api/quickstart_dense.cc\n"
	out := Default.Apply(in)
	require.Equal(t, "See .. literalinclude:: ../../examples/cpp_api/quickstart_dense.cc\n", out)
}

func TestApply_AllTokensAllOccurrences(t *testing.T) {
	in := "{tiledb_src_root_url}/a {tiledb_py_src_root_url}/b {tiledb_R_src_root_url} {tiledb_go_src_root_url} {tiledb_src_root_url}/c"
	out := Default.Apply(in)
	require.NotContains(t, out, "{")
	require.Equal(t, 2, strings.Count(out, "https://github.com/TileDB-Inc/TileDB/blob/dev"))
	require.Contains(t, out, "https://github.com/TileDB-Inc/TileDB-Go/blob/master")
}

func TestApply_UnknownPlaceholderUntouched(t *testing.T) {
	in := "{unknown_token} and {source_examples_path"
	require.Equal(t, in, Default.Apply(in))
}

func TestApply_EquivalentToSequentialReplace(t *testing.T) {
	docs := []string{"", "plain", "{a}{b}{a}", "x{b}y{a}z{c}"}
	tbl := MustTable(Entry{"{a}", "1"}, Entry{"{b}", "22"}, Entry{"{c}", ""})
	for _, d := range docs {
		want := d
		for _, e := range tbl.Entries() {
			want = strings.ReplaceAll(want, e.Token, e.Value)
		}
		require.Equal(t, want, tbl.Apply(d))
	}
}

func TestApply_Idempotent(t *testing.T) {
	require.Empty(t, Default.Hazards())
	in := "{source_examples_path} {tiledb_src_root_url} text"
	once := Default.Apply(in)
	require.Equal(t, once, Default.Apply(once))
}

func TestHazards_ReportsReintroducedToken(t *testing.T) {
	tbl := MustTable(Entry{"{a}", "x{b}"}, Entry{"{b}", "y"})
	require.Equal(t, []Hazard{{Token: "{a}", Introduces: "{b}"}}, tbl.Hazards())
	// Table order decides the outcome when the hazard is present.
	require.Equal(t, "xy", tbl.Apply("{a}"))
}

func TestNewTable_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := NewTable(Entry{"{a}", "1"}, Entry{"{a}", "2"})
	require.ErrorContains(t, err, "duplicate")
	_, err = NewTable(Entry{"", "1"})
	require.Error(t, err)
}

func TestYAML_PreservesOrder(t *testing.T) {
	src := "z: last\na: first\nm: middle\n"
	var tbl Table
	require.NoError(t, yaml.Unmarshal([]byte(src), &tbl))
	require.Equal(t, []Entry{{"z", "last"}, {"a", "first"}, {"m", "middle"}}, tbl.Entries())

	out, err := yaml.Marshal(tbl)
	require.NoError(t, err)
	require.Equal(t, src, string(out))
}

func TestYAML_RejectsSequence(t *testing.T) {
	var tbl Table
	require.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &tbl))
}
