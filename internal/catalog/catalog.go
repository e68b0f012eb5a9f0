// Package catalog loads the rule catalog consumed by the scorer: weak-word
// substitutions, measurable-result patterns, action verbs, and role keywords.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the builtin catalog used when none is configured.
const DefaultName = "default"

// Catalog is the immutable reference data for one scoring run.
// Build it with LoadBuiltin, LoadFile, Load or Parse; the compiled tables
// are populated once and never modified afterwards.
type Catalog struct {
	Name               string       `json:"name" yaml:"name"`
	Version            int          `json:"version" yaml:"version"`
	Description        string       `json:"description,omitempty" yaml:"description,omitempty"`
	WeakWords          WeakWords    `json:"weak_words" yaml:"weak_words"`
	MeasurablePatterns []string     `json:"measurable_patterns" yaml:"measurable_patterns"`
	ActionVerbs        []string     `json:"action_verbs" yaml:"action_verbs"`
	RoleKeywords       RoleKeywords `json:"role_keywords,omitempty" yaml:"role_keywords,omitempty"`

	measurable []*regexp.Regexp
	verbs      []string
	weak       []WeakWord
}

// Parse decodes and compiles a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadBuiltin loads a built-in catalog by name.
func LoadBuiltin(name string) (*Catalog, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadBuiltin: unknown catalog %q: %w", name, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadBuiltin: parse %q: %w", name, err)
	}
	return c, nil
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: parse %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Load resolves ref as a file path when it has a YAML extension or a path
// separator, and as a builtin name otherwise. An empty ref selects DefaultName.
func Load(ref string) (*Catalog, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = DefaultName
	}
	ext := strings.ToLower(filepath.Ext(ref))
	if ext == ".yaml" || ext == ".yml" || strings.ContainsRune(ref, os.PathSeparator) {
		return LoadFile(ref)
	}
	return LoadBuiltin(ref)
}

// List returns the names of all available built-in catalogs.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

func (c *Catalog) compile() error {
	if len(c.MeasurablePatterns) == 0 {
		return fmt.Errorf("measurable_patterns: at least one pattern required")
	}
	if len(c.ActionVerbs) == 0 {
		return fmt.Errorf("action_verbs: at least one verb required")
	}

	c.measurable = make([]*regexp.Regexp, 0, len(c.MeasurablePatterns))
	for i, p := range c.MeasurablePatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("measurable_patterns[%d]: %w", i, err)
		}
		c.measurable = append(c.measurable, re)
	}

	seen := make(map[string]bool, len(c.ActionVerbs))
	c.verbs = make([]string, 0, len(c.ActionVerbs))
	for _, v := range c.ActionVerbs {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		c.verbs = append(c.verbs, v)
	}

	c.weak = make([]WeakWord, 0, len(c.WeakWords))
	for _, w := range c.WeakWords {
		c.weak = append(c.weak, WeakWord{Phrase: strings.ToLower(w.Phrase), Suggestion: w.Suggestion})
	}
	return nil
}

// Measurable returns the compiled, case-insensitive measurable-result patterns.
func (c *Catalog) Measurable() []*regexp.Regexp { return c.measurable }

// Verbs returns the distinct lowercased action verbs in file order.
func (c *Catalog) Verbs() []string { return c.verbs }

// Weak returns the weak-word table with lowercased phrases, in file order.
func (c *Catalog) Weak() []WeakWord { return c.weak }

// Roles returns the catalog role names in file order.
func (c *Catalog) Roles() []string {
	roles := make([]string, 0, len(c.RoleKeywords))
	for _, r := range c.RoleKeywords {
		roles = append(roles, r.Role)
	}
	return roles
}
