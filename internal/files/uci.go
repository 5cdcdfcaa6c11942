// Package files reads and writes UCI-style option groups under the router's
// config root (normally /etc/config). Only the subset accelctl needs is
// implemented: named sections with single-value options.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Store abstracts UCI option access with idempotent writes.
type Store interface {
	// Get returns the option value, or def when the file, section, or
	// option is absent.
	Get(pkg, section, option, def string) string
	// Set writes the option in place, creating the section if needed.
	Set(pkg, section, option, value string) error
}

type store struct{ dir string }

// New returns a filesystem-backed store rooted at dir.
func New(dir string) Store { return &store{dir: dir} }

func (s *store) path(pkg string) string { return filepath.Join(s.dir, pkg) }

func (s *store) Get(pkg, section, option, def string) string {
	content, err := os.ReadFile(s.path(pkg))
	if err != nil {
		return def
	}
	block, ok := sectionBlock(string(content), section)
	if !ok {
		return def
	}
	re := regexp.MustCompile(`(?m)^\s*option\s+` + regexp.QuoteMeta(option) + `\s+'([^']*)'\s*$`)
	m := re.FindStringSubmatch(block)
	if m == nil {
		return def
	}
	return m[1]
}

func (s *store) Set(pkg, section, option, value string) error {
	path := s.path(pkg)
	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	content := string(b)

	if _, ok := sectionBlock(content, section); !ok {
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += fmt.Sprintf("\nconfig %s '%s'\n", pkg, section)
	}
	content = setInSection(content, section, option, value)
	return os.WriteFile(path, []byte(content), 0o644)
}

// sectionBlock extracts the body of the named section.
func sectionBlock(content, section string) (string, bool) {
	start := sectionStart(section).FindStringIndex(content)
	if start == nil {
		return "", false
	}
	rest := content[start[1]:]
	if next := anySection().FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return rest, true
}

func sectionStart(section string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^config\s+\S+\s+'` + regexp.QuoteMeta(section) + `'\s*$`)
}

func anySection() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^config\s`)
}

// setInSection replaces or appends one option line inside the named section.
func setInSection(content, section, option, value string) string {
	loc := sectionStart(section).FindStringIndex(content)
	if loc == nil {
		return content
	}
	start := loc[1]
	end := len(content)
	if next := anySection().FindStringIndex(content[start:]); next != nil {
		end = start + next[0]
	}
	before := content[:start]
	block := content[start:end]
	after := content[end:]

	line := fmt.Sprintf("\toption %s '%s'", option, value)
	re := regexp.MustCompile(`(?m)^\s*option\s+` + regexp.QuoteMeta(option) + `\s+'[^']*'\s*$`)
	if re.MatchString(block) {
		block = re.ReplaceAllString(block, line)
	} else {
		if !strings.HasSuffix(block, "\n") {
			block += "\n"
		}
		block += line + "\n"
	}
	return before + block + after
}
