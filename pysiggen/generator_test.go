package pysiggen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
	"github.com/broady/pysig/pysiggen/provider"
	"github.com/broady/pysig/pysiggen/python"
	"github.com/broady/pysig/pysiggen/sink"
)

const geomPkg = "github.com/broady/pysig/pysiggen/provider/testdata/geom"

type Vec struct{ X, Y float64 }

func vecBindings() *python.Bindings {
	return python.Builtins().Bind(ir.GoIdentifier{Name: "Vec", Package: reflect.TypeFor[Vec]().PkgPath()}, "Vec")
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		name   string
		nameOf func(*python.Bindings) (string, error)
		want   string
	}{
		{"int", NameOf[int], "int"},
		{"List", NameOf[pysig.List[int]], "List[int]"},
		{"Set", NameOf[pysig.Set[string]], "Set[str]"},
		{"Dict", NameOf[pysig.Dict[string, float64]], "Dict[str, float]"},
		{"Tuple0", NameOf[pysig.Tuple0], "Tuple[()]"},
		{"Tuple3", NameOf[pysig.Tuple3[int, string, bool]], "Tuple[int, str, bool]"},
		{"Callable", NameOf[pysig.Callable[func(int, int) bool]], "Callable[[int, int], bool]"},
		{"Callable no result", NameOf[pysig.Callable[func(Vec)]], "Callable[[Vec], None]"},
		{"nested", NameOf[pysig.List[pysig.Dict[string, Vec]]], "List[Dict[str, Vec]]"},
		{"duration", NameOf[pysig.Dict[string, time.Duration]], "Dict[str, datetime.timedelta]"},
	}
	b := vecBindings()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.nameOf(b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName_Errors(t *testing.T) {
	_, err := NameOf[pysig.List[Vec]](python.Builtins())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeUnboundAtomic, pysig.CodeOf(err))

	_, err = NameOf[[]int](python.Builtins())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeUnsupportedShape, pysig.CodeOf(err))

	_, err = NameOf[*pysig.List[int]](python.Builtins())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeUnsupportedShape, pysig.CodeOf(err))
	assert.Contains(t, errors.GetAllHints(err), "declare a named type and bind it")

	_, err = NameOf[pysig.Dict[string, *pysig.Set[int]]](python.Builtins())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeUnsupportedShape, pysig.CodeOf(err))

	// an empty table binds nothing, not even builtins
	_, err = NameOf[int](python.NewBindings())
	assert.Equal(t, pysig.CodeUnboundAtomic, pysig.CodeOf(err))
}

func TestNameOf_NilBindingsUseBuiltins(t *testing.T) {
	got, err := NameOf[pysig.Dict[string, pysig.List[int]]](nil)
	require.NoError(t, err)
	assert.Equal(t, "Dict[str, List[int]]", got)
}

type Box[T any] struct{ V T }

func TestNameOf_GenericAtomicSharesBinding(t *testing.T) {
	pkg := reflect.TypeFor[Vec]().PkgPath()

	td, err := provider.ParseTypeExpr("pg.Box[int]", provider.ExprOptions{
		Imports: map[string]string{"pg": pkg},
	})
	require.NoError(t, err)
	box, ok := td.(*ir.AtomicDescriptor)
	require.True(t, ok, "got %T", td)

	b := python.Builtins().Bind(box.ID, "Box")

	got, err := NameOf[pysig.List[Box[int]]](b)
	require.NoError(t, err)
	assert.Equal(t, "List[Box]", got)

	got, err = NameOf[pysig.Dict[string, Box[Vec]]](b)
	require.NoError(t, err)
	assert.Equal(t, "Dict[str, Box]", got)
}

func geometryModule() *pysig.Module {
	return pysig.NewModule("geometry").
		WithDoc("Planar helpers.").
		Def("scale", func(points pysig.List[Vec], by float64) pysig.List[Vec] { return points },
			pysig.Doc("Scale every point."), pysig.Args("points", "by")).
		Def("centroid", func(ctx context.Context, points pysig.List[Vec]) (Vec, error) { return Vec{}, nil },
			pysig.Args("points")).
		Def("each", func(points pysig.List[Vec], fn pysig.Callable[func(Vec) bool]) {})
}

func TestFromModule_Generate(t *testing.T) {
	res, err := FromModule(geometryModule()).
		Bind(reflect.TypeFor[Vec]().PkgPath()+".Vec", "Vec").
		WithManifest().
		Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.FunctionsGenerated)
	require.Len(t, res.Files, 2)

	stub := string(res.Content["geometry.pyi"])
	t.Logf("Generated:\n%s", stub)
	for _, want := range []string{
		`"""Planar helpers."""`,
		"def centroid(points: List[Vec]) -> Vec: ...",
		"def each(arg0: List[Vec], arg1: Callable[[Vec], bool]) -> None: ...",
		"def scale(points: List[Vec], by: float) -> List[Vec]:\n    \"\"\"Scale every point.\"\"\"\n    ...\n",
	} {
		assert.Contains(t, stub, want)
	}

	var manifest struct {
		Functions []struct {
			Signature string `json:"signature"`
		} `json:"functions"`
	}
	require.NoError(t, json.Unmarshal(res.Content[python.ManifestFile], &manifest))
	require.Len(t, manifest.Functions, 3)
	assert.Equal(t, "centroid(points: List[Vec]) -> Vec", manifest.Functions[0].Signature)
}

func TestFromModule_Options(t *testing.T) {
	var b = python.NewBindings().
		Bind(ir.GoIdentifier{Name: "Vec", Package: reflect.TypeFor[Vec]().PkgPath()}, "geometry.Vec").
		BindBuiltin("float64", "float").
		BindBuiltin("bool", "bool")

	res, err := FromModule(geometryModule()).
		Module("geo").
		WithBindings(b).
		NoValueName("NoReturn").
		WithoutDocstrings().
		Frontmatter("# frontmatter").
		Generate(context.Background())
	require.NoError(t, err)

	stub := string(res.Content["geo.pyi"])
	assert.Contains(t, stub, "import geometry\n")
	assert.Contains(t, stub, "# frontmatter\n")
	assert.Contains(t, stub, "def each(arg0: List[geometry.Vec], arg1: Callable[[geometry.Vec], bool]) -> NoReturn: ...")
	assert.NotContains(t, stub, `"""`)
}

func TestFromModule_Errors(t *testing.T) {
	m := geometryModule().Def("raw", func(m map[string]int) {})

	_, err := FromModule(m).Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "function raw")
	assert.Equal(t, pysig.CodeUnsupportedShape, pysig.CodeOf(err))

	// Vec is not bound
	_, err = FromModule(geometryModule()).Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeUnboundAtomic, pysig.CodeOf(err))
	for _, fn := range []string{"centroid", "each", "scale"} {
		assert.Contains(t, err.Error(), "function "+fn)
	}

	_, err = FromModule(geometryModule()).Module("not-valid").Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeInvalidConfig, pysig.CodeOf(err))

	_, err = (&Generator{cfg: Config{Provider: ProviderReflection}}).Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeInvalidConfig, pysig.CodeOf(err))
}

func TestFromPackages_ToDir(t *testing.T) {
	dir := t.TempDir()
	res, err := FromPackages(geomPkg).
		Bind(geomPkg+".Point", "Point").
		ToDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, res.FunctionsGenerated)

	content, err := os.ReadFile(filepath.Join(dir, "geom.pyi"))
	require.NoError(t, err)
	stub := string(content)
	t.Logf("Generated:\n%s", stub)

	for _, want := range []string{
		"import datetime\nfrom typing import Callable, Dict, List, Set, Tuple\n",
		"def Blob(arg0: bytes, b: int) -> object: ...",
		"def Bounds(pts: List[Point]) -> Tuple[Point, Point]: ...",
		"def Each(pts: List[Point], fn: Callable[[Point, int], bool], every: datetime.timedelta) -> None: ...",
		"def Histogram(words: Set[str]) -> Dict[str, int]:\n    \"\"\"Histogram counts words.\"\"\"\n",
		"def Origin() -> Tuple[()]: ...",
		"def scale(points: List[Point], by: float) -> List[Point]:\n    \"\"\"Scale multiplies every point by a factor.\n",
	} {
		assert.Contains(t, stub, want)
	}
	assert.NotContains(t, stub, "Internal")
}

func TestFromConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "pysig.toml"))
	require.NoError(t, err)

	mem := sink.NewMemorySink()
	res, err := FromConfig(cfg).ToSink(context.Background(), mem)
	require.NoError(t, err)

	assert.Equal(t, []string{"geometry.pyi", "signatures.json"}, mem.Paths())
	assert.Len(t, res.Files, 2)

	stub := string(mem.Get("geometry.pyi"))
	assert.Contains(t, stub, "import numpy\n")
	assert.Contains(t, stub, "def scale(points: List[Point], by: numpy.float64) -> List[Point]:")
	assert.Contains(t, stub, "-> NoReturn: ...")
}

func TestGenerator_Schema(t *testing.T) {
	schema, err := FromPackages(geomPkg).AllExported().Module("geometry").Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "geometry", schema.Module)
	assert.NotNil(t, schema.FindFunction("Undocumented"))

	_, err = FromPackages().Schema(context.Background())
	require.Error(t, err)
	assert.Equal(t, pysig.CodeInvalidConfig, pysig.CodeOf(err))
}

func TestGenerator_Config(t *testing.T) {
	g := FromPackages("a", "b").Dir("src").NoValueName("NoReturn")
	cfg := g.Config()
	assert.Equal(t, ProviderSource, cfg.Provider)
	assert.Equal(t, []string{"a", "b"}, cfg.Packages)
	assert.Equal(t, "src", cfg.Dir)
	assert.Equal(t, "NoReturn", cfg.NoValueName)
	assert.Equal(t, 4, cfg.IndentSize)

	assert.Equal(t, ProviderReflection, FromModule(pysig.NewModule("m")).Config().Provider)
}

func TestGenerator_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := pysig.NewModule("m").Def("f", func(int) {}, pysig.Args("a", "b"))

	_, err := FromModule(m).WithLogger(zap.New(core)).Generate(context.Background())
	require.NoError(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "EXTRA_PARAM_NAMES", warnings[0].ContextMap()["code"])
	assert.Equal(t, 1, logs.FilterMessage("generated stubs").Len())
}

func TestGenerator_NoManifestByDefault(t *testing.T) {
	res, err := FromModule(geometryModule()).
		Bind(reflect.TypeFor[Vec]().PkgPath()+".Vec", "Vec").
		Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	for path := range res.Content {
		assert.True(t, strings.HasSuffix(path, ".pyi"), path)
	}
}
