package pysig

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Module is the registry of Go functions exposed to one Python module.
// The generator reads it to produce documentation; nothing here is
// invoked at runtime.
type Module struct {
	mu     sync.RWMutex
	name   string
	doc    string
	funcs  map[string]Function
	logger *zap.Logger
}

// Function is a registered function.
type Function struct {
	// Name is the Python-visible name.
	Name string

	// Type is the Go func type.
	Type reflect.Type

	// Doc is the docstring body, may be empty.
	Doc string

	// ParamNames are the Python argument names in order. Missing names
	// are rendered as arg0, arg1, ...
	ParamNames []string
}

// NewModule creates an empty module registry.
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		funcs: make(map[string]Function),
	}
}

// Name returns the Python module name.
func (m *Module) Name() string { return m.name }

// Doc returns the module docstring.
func (m *Module) Doc() string { return m.doc }

// WithDoc sets the module docstring.
// It returns the module for chaining.
func (m *Module) WithDoc(doc string) *Module {
	m.doc = doc
	return m
}

// WithLogger sets the logger used for registration warnings.
// If not set, registration is silent.
func (m *Module) WithLogger(logger *zap.Logger) *Module {
	m.logger = logger
	return m
}

// DefOption customizes a registered function.
type DefOption func(*Function)

// Doc sets the docstring of a registered function.
func Doc(doc string) DefOption {
	return func(f *Function) { f.Doc = doc }
}

// Args sets the Python argument names of a registered function.
func Args(names ...string) DefOption {
	return func(f *Function) { f.ParamNames = names }
}

// Def registers fn under name. fn must be a func value or a nil func of the
// desired type, e.g. (func(pysig.List[int]) int)(nil).
// Registering the same name twice replaces the earlier entry.
func (m *Module) Def(name string, fn any, opts ...DefOption) *Module {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		panic(fmt.Sprintf("pysig: Def(%q) requires a func, got %T", name, fn))
	}

	f := Function{Name: name, Type: t}
	for _, opt := range opts {
		opt(&f)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.funcs[name]; exists && m.logger != nil {
		m.logger.Warn("duplicate function registration",
			zap.String("module", m.name),
			zap.String("function", name))
	}
	m.funcs[name] = f
	return m
}

// Functions returns all registered functions sorted by name.
func (m *Module) Functions() []Function {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Function, 0, len(m.funcs))
	for _, f := range m.funcs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
