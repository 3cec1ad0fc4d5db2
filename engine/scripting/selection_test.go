package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swift2d/engine/engine/core"
)

// newTestScript writes the source to a temp file and loads it. Every test
// script carries the Start/Update/Done contract.
func newTestScript(t *testing.T, body string) *Script {
	t.Helper()

	source := body + "\n\nfunction Start()\n    Done = false\nend\n\nfunction Update()\nend\n"
	path := filepath.Join(t.TempDir(), "test.lua")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	s, err := NewScript(path, nil)
	require.NoError(t, err)
	return s
}

func TestGlobalRead(t *testing.T) {
	s := newTestScript(t, `answer = 42`)

	n, err := s.Variable("answer").Int()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestFieldChaining(t *testing.T) {
	s := newTestScript(t, `config = { window = { title = "swift", scale = 2 } }`)

	title, err := s.Variable("config").Field("window").Field("title").String()
	require.NoError(t, err)
	assert.Equal(t, "swift", title)

	scale, err := s.Variable("config").Field("window").Field("scale").Int()
	require.NoError(t, err)
	assert.Equal(t, 2, scale)
}

func TestIndexingElements(t *testing.T) {
	s := newTestScript(t, `levels = { "meadow", "cave", "keep" }`)

	second, err := s.Variable("levels").At(2).String()
	require.NoError(t, err)
	assert.Equal(t, "cave", second)
}

func TestAbsentKeyFailsOnlyAtConversion(t *testing.T) {
	s := newTestScript(t, `config = {}`)

	// indexing itself never fails
	sel := s.Variable("config").Field("missing").Field("deeper")

	_, err := sel.Number()
	var merr *core.MarshalError
	require.ErrorAs(t, err, &merr)
}

func TestConversionTypeMismatch(t *testing.T) {
	s := newTestScript(t, `word = "not a number"`)

	_, err := s.Variable("word").Number()
	var merr *core.MarshalError
	require.ErrorAs(t, err, &merr)

	_, err = s.Variable("word").Bool()
	require.ErrorAs(t, err, &merr)
}

func TestSequenceConversions(t *testing.T) {
	s := newTestScript(t, "numbers = { 1, 2.5, 3 }\nwords = { \"a\", \"b\" }")

	nums, err := s.Variable("numbers").Numbers()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3}, nums)

	words, err := s.Variable("words").Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)
}

func TestTableConversion(t *testing.T) {
	s := newTestScript(t, `stats = { hp = 10, name = "slime" }`)

	m, err := s.Variable("stats").Table()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"hp": 10, "name": "slime"}, m)
}

func TestCallWithArguments(t *testing.T) {
	s := newTestScript(t, "function Scale(v, factor)\n    return v * factor\nend")

	res, err := s.Variable("Scale").Call(6, 7)
	require.NoError(t, err)

	var out float64
	require.NoError(t, res.Results(&out))
	assert.Equal(t, 42.0, out)
}

func TestCallMultiReturn(t *testing.T) {
	s := newTestScript(t, "function Split(v)\n    return math.floor(v / 10), v % 10, \"ok\"\nend")

	res, err := s.Variable("Split").Call(42)
	require.NoError(t, err)

	var tens, ones int
	var status string
	require.NoError(t, res.Results(&tens, &ones, &status))
	assert.Equal(t, 4, tens)
	assert.Equal(t, 2, ones)
	assert.Equal(t, "ok", status)
}

func TestCallZeroReturns(t *testing.T) {
	s := newTestScript(t, "function Noop()\nend")

	res, err := s.Variable("Noop").Call()
	require.NoError(t, err)

	err = res.Results(new(int))
	var merr *core.MarshalError
	assert.ErrorAs(t, err, &merr)
}

func TestCallScriptError(t *testing.T) {
	s := newTestScript(t, "function Boom()\n    error(\"kaput\")\nend")

	_, err := s.Variable("Boom").Call()
	require.Error(t, err)

	var serr *core.ScriptRuntimeError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "kaput")
}

func TestAssignValue(t *testing.T) {
	s := newTestScript(t, `function Echo() return injected end`)

	require.NoError(t, s.Variable("injected").Set("from host"))

	res, err := s.Variable("Echo").Call()
	require.NoError(t, err)

	var out string
	require.NoError(t, res.Results(&out))
	assert.Equal(t, "from host", out)
}

func TestAssignHostFunction(t *testing.T) {
	s := newTestScript(t, "function CallHost()\n    return hostAdd(19, 23)\nend")

	err := s.Variable("hostAdd").Set(Func2[float64, float64, float64](func(a, b float64) float64 {
		return a + b
	}))
	require.NoError(t, err)

	res, err := s.Variable("CallHost").Call()
	require.NoError(t, err)

	var sum float64
	require.NoError(t, res.Results(&sum))
	assert.Equal(t, 42.0, sum)
}

func TestAssignToFieldRejected(t *testing.T) {
	s := newTestScript(t, `config = {}`)

	err := s.Variable("config").Field("nested").Set(1)
	var merr *core.MarshalError
	require.ErrorAs(t, err, &merr)
}
