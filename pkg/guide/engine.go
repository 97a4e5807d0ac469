package guide

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract, the seam guide generation renders through. Hosts running that
// engine can hand it in directly; the embedded pongo2 engine covers everyone
// else.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// EngineOption configures the embedded engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	baseDir string
	files   fs.FS
	ext     string
	globals map[string]any
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithTemplatesFS loads templates from an fs.FS, usually an embedded bundle.
func WithTemplatesFS(files fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.files = files
	}
}

// WithExtension overrides the default .tpl template extension.
func WithExtension(ext string) EngineOption {
	return func(cfg *engineConfig) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.ext = trimmed
	}
}

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) EngineOption {
	return func(cfg *engineConfig) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithRendererOptions accepts goliatone/go-template construction options so
// call sites configured for that engine keep working unchanged; the embedded
// engine takes no further configuration from them.
func WithRendererOptions(_ ...gotemplatepkg.Option) EngineOption {
	return func(*engineConfig) {}
}

// Engine renders pongo2 templates behind the TemplateRenderer contract.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	ext         string
}

var _ TemplateRenderer = (*Engine)(nil)

// NewEngine constructs the embedded template engine.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{ext: ".tpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("guide: engine needs a template dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("guide: create template loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("formwidgets", loaders...),
		templates:   make(map[string]*pongo2.Template),
		ext:         cfg.ext,
	}
	if err := engine.GlobalContext(cfg.globals); err != nil {
		return nil, fmt.Errorf("guide: apply globals: %w", err)
	}
	return engine, nil
}

// Render treats name as inline template content when it contains template
// markers, and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template file. The configured extension
// is appended when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("guide: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

// RenderString executes inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("guide: engine is nil")
	}
	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("guide: parse template string: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter installs a template filter. Filter names are global to the
// process; registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("guide: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("guide: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("guide: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := templateContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(ctx)
	return nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("guide: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, path string, data any, out []io.Writer) (string, error) {
	ctx, err := templateContext(data)
	if err != nil {
		return "", fmt.Errorf("guide: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("guide: execute template %q: %w", path, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// templateContext projects data onto pongo2's context shape. Values go
// through a JSON round trip so structs and typed slices arrive as plain maps
// and slices; functions pass through untouched.
func templateContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return contextFromMap(map[string]any(v))
	case map[string]any:
		return contextFromMap(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m := map[string]any{}
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		return contextFromMap(m)
	}
}

func contextFromMap(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := contextValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func contextValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Kind() == reflect.Func {
		return value, nil
	}
	switch v := value.(type) {
	case string, bool, int, int64, float64:
		return v, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
