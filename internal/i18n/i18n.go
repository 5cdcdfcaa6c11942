// Package i18n resolves user-facing message templates against per-language
// YAML catalogs. Keys are the English templates themselves, so a missing
// catalog (or a missing entry) degrades to plain English output.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translator renders a message template with optional fmt arguments.
type Translator interface {
	T(template string, args ...any) string
}

// Passthrough formats templates without translation.
type Passthrough struct{}

func (Passthrough) T(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// Catalog is a file-backed Translator for one language.
type Catalog struct {
	entries map[string]string
}

// Load reads <dir>/<lang>.yml. A missing file is not an error: the returned
// catalog simply translates nothing.
func Load(dir, lang string) (*Catalog, error) {
	c := &Catalog{entries: map[string]string{}}
	if lang == "" {
		return c, nil
	}
	path := filepath.Join(dir, strings.ToLower(lang)+".yml")
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c.entries); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) T(template string, args ...any) string {
	msg := template
	if translated, ok := c.entries[template]; ok && translated != "" {
		msg = translated
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
