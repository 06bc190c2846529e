package loader

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix of option environment variables.
const DefaultEnvPrefix = "TSCHART_"

// EnvLoader loads options from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "TSCHART_")
	mapping map[string]string // Env var -> option path; "" skips the variable
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "TSCHART_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the shortcuts for common options.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"TSCHART_WIDTH":     "canvas.width",
		"TSCHART_HEIGHT":    "canvas.height",
		"TSCHART_MARGIN":    "canvas.margin",
		"TSCHART_TITLE":     "annotations.title",
		"TSCHART_CAPTION":   "annotations.caption",
		"TSCHART_TYPE":      "marks.type",
		"TSCHART_BRUSH":     "widgets.brush",
		"TSCHART_LOG_LEVEL": "",
	}
}

// Load reads environment variables and returns an options map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	options := make(map[string]any)

	env := l.environ()
	sort.Strings(env)
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			// TSCHART_AXES_X_LABEL becomes axes.xLabel.
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(options, path, l.parseValue(value))
	}

	return options, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, path string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = path
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToPath converts TSCHART_AXES_X_LABEL to axes.xLabel.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return ""
	}

	// First part is the store, the rest form the key in camelCase.
	key := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			key += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + key
}

// parseValue attempts to parse the string value into an appropriate type.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	// Arrays and objects, e.g. TSCHART_MARGIN=[10,20,30,40].
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// ExpandEnvInString expands environment variables in a string.
// Supports both $VAR and ${VAR} syntax.
func ExpandEnvInString(s string) string {
	return os.ExpandEnv(s)
}
