package result

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Format names a registered output rendering.
type Format string

const (
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
)

// RenderFunc renders a Result into its textual representation.
type RenderFunc func(Result) ([]byte, error)

// FormatSpec describes a renderer implementation registered at runtime.
type FormatSpec struct {
	Format      Format
	Description string
	Render      RenderFunc
}

var (
	registryMu sync.RWMutex
	registry   = map[Format]FormatSpec{}
)

// RegisterFormat adds a renderer implementation to the registry.
func RegisterFormat(spec FormatSpec) error {
	name := Format(strings.ToLower(strings.TrimSpace(string(spec.Format))))
	if name == "" {
		return fmt.Errorf("output format name is required")
	}
	if spec.Render == nil {
		return fmt.Errorf("format %q is missing a renderer", name)
	}

	spec.Format = name

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		return fmt.Errorf("output format %q already registered", name)
	}
	registry[name] = spec
	return nil
}

// MustRegisterFormat adds a renderer to the registry and panics if registration fails.
func MustRegisterFormat(spec FormatSpec) {
	if err := RegisterFormat(spec); err != nil {
		panic(err)
	}
}

// ParseFormat validates the provided format string.
func ParseFormat(raw string) (Format, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", fmt.Errorf("unsupported format %q", raw)
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	format := Format(trimmed)
	if _, exists := registry[format]; exists {
		return format, nil
	}

	names := make([]string, 0, len(registry))
	for key := range registry {
		names = append(names, string(key))
	}
	sort.Strings(names)

	return "", fmt.Errorf("unsupported format %q (available: %s)", raw, strings.Join(names, ", "))
}

// Render resolves the requested format and renders the Result with the
// registered implementation.
func Render(format Format, res Result) ([]byte, error) {
	registryMu.RLock()
	spec, ok := registry[format]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unregistered output format: %s", format)
	}
	return spec.Render(res)
}

// Formats returns the registered renderers sorted by format name.
func Formats() []FormatSpec {
	registryMu.RLock()
	defer registryMu.RUnlock()

	specs := make([]FormatSpec, 0, len(registry))
	for _, spec := range registry {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Format < specs[j].Format
	})
	return specs
}
