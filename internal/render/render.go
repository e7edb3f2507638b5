// Package render expands environment references in the YAML config before
// it is parsed, e.g. {{ env "SHELL_MCP_LISTEN" }} or {{ envOr "X" "default" }}.
package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// missingEnv collects variables referenced through env that are unset.
type missingEnv map[string]struct{}

func (m missingEnv) names() []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func funcMap(missing missingEnv) template.FuncMap {
	return template.FuncMap{
		"env": func(key string) string {
			value, ok := os.LookupEnv(key)
			if !ok {
				missing[key] = struct{}{}
			}
			return value
		},
		"envOr": func(key, def string) string {
			if value, ok := os.LookupEnv(key); ok {
				return value
			}
			return def
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"quote": func(value string) string {
			return fmt.Sprintf("%q", value)
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// RenderFile loads and renders a YAML template file.
func RenderFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return RenderBytes(path, raw)
}

// RenderBytes renders a YAML template from raw bytes. Referencing an unset
// variable through env is an error; envOr supplies a fallback instead.
func RenderBytes(name string, raw []byte) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		name = "config"
	}
	missing := missingEnv{}
	tmpl, err := template.New(name).Funcs(funcMap(missing)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{}); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing.names(), ", "))
	}
	return buf.Bytes(), nil
}
