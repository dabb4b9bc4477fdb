package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	geomPkg   = "github.com/broady/pysig/pysiggen/provider/testdata/geom"
	brokenPkg = "github.com/broady/pysig/pysiggen/provider/testdata/broken"
	bindPoint = "bindings." + geomPkg + ".Point=Point"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, out)
}

func TestName(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"name", "int"}, "int\n"},
		{[]string{"name", "pysig.Dict[string, pysig.List[int]]"}, "Dict[str, List[int]]\n"},
		{[]string{"name", "pysig.Tuple0"}, "Tuple[()]\n"},
		{[]string{"name", "pysig.Callable[func(float64, float64)]"}, "Callable[[float, float], None]\n"},
		{[]string{"name", "--no-value-name=NoReturn", "pysig.Callable[func()]"}, "Callable[[], NoReturn]\n"},
		{[]string{"name", "pysig.Set[time.Duration]"}, "Set[datetime.timedelta]\n"},
		{
			[]string{"name", "-p", "example.com/geom", "--bind", "example.com/geom.Point=Point", "pysig.Tuple2[Point, Point]"},
			"Tuple[Point, Point]\n",
		},
		{
			[]string{"name", "-i", "g=example.com/geom", "--bind", "example.com/geom.Point=Point", "pysig.List[g.Point]"},
			"List[Point]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.args[len(tt.args)-1], func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.args...)
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestName_Errors(t *testing.T) {
	code, out, errOut := runCLI(t, "name", "--no-builtins", "pysig.List[int]")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "code: unbound_atomic")
	assert.Contains(t, errOut, "hint: bind it with Bindings.Bind")

	code, _, errOut = runCLI(t, "name", "map[string]int")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "code: unsupported_shape")
	assert.Contains(t, errOut, "hint: use pysig.Dict or pysig.Set")

	code, _, _ = runCLI(t, "name", "--bind", "Point=Point", "int")
	assert.Equal(t, 1, code)
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	code, out, errOut := runCLI(t, "gen", dir, "-p", geomPkg, "--set", bindPoint, "--manifest")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "✓ geom.pyi")
	assert.Contains(t, out, "✓ signatures.json")

	stub, err := os.ReadFile(filepath.Join(dir, "geom.pyi"))
	require.NoError(t, err)
	assert.Contains(t, string(stub), "def Origin() -> Tuple[()]: ...")
	assert.FileExists(t, filepath.Join(dir, "signatures.json"))
}

func TestGen_Stdout(t *testing.T) {
	code, out, errOut := runCLI(t, "gen", "--stdout", "-p", geomPkg, "-m", "geometry", "-s", bindPoint)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "# geometry.pyi\n# Code generated by pysig. DO NOT EDIT.\n")
	assert.Contains(t, out, "def scale(points: List[Point], by: float) -> List[Point]:")
}

func TestGen_Config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pysig.toml")
	content := "module = \"geometry\"\n" +
		"out_dir = " + quote(filepath.Join(dir, "stubs")) + "\n" +
		"packages = [" + quote(geomPkg) + "]\n" +
		"[bindings]\n" + quote(geomPkg+".Point") + " = \"Point\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	code, _, errOut := runCLI(t, "gen", "-c", cfgPath)
	require.Equal(t, 0, code, errOut)
	assert.FileExists(t, filepath.Join(dir, "stubs", "geometry.pyi"))
}

func TestCheck(t *testing.T) {
	code, out, errOut := runCLI(t, "check", "-p", geomPkg, "-s", bindPoint)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "  Bounds(pts: List[Point]) -> Tuple[Point, Point]\n")
	assert.Contains(t, out, "✓ geom: 6 functions\n")

	code, out, errOut = runCLI(t, "check", "-q", "-p", geomPkg, "-s", bindPoint)
	require.Equal(t, 0, code, errOut)
	assert.Empty(t, out)
}

func TestCheck_Failures(t *testing.T) {
	code, _, errOut := runCLI(t, "check", "-p", geomPkg)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "code: unbound_atomic")

	code, _, errOut = runCLI(t, "check", "-p", brokenPkg)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "function Pair")
	assert.Contains(t, errOut, "function Variadic")

	code, _, errOut = runCLI(t, "check")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "code: invalid_config")

	code, _, _ = runCLI(t, "check", "-p", geomPkg, "-s", "colour=blue")
	assert.Equal(t, 1, code)
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "pysig:")
}

func quote(s string) string {
	return `"` + filepath.ToSlash(s) + `"`
}
