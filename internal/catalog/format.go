package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format renders the catalog as a human-readable summary.
func Format(c *Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Catalog: %s (v%d)\n\n", c.Name, c.Version)
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(c.Description))
	}

	if len(c.WeakWords) > 0 {
		b.WriteString("### Weak words\n\n")
		for _, w := range c.WeakWords {
			fmt.Fprintf(&b, "- %q -> %q\n", w.Phrase, w.Suggestion)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Measurable patterns\n\n")
	for _, p := range c.MeasurablePatterns {
		fmt.Fprintf(&b, "- `%s`\n", p)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### Action verbs (%d)\n\n", len(c.Verbs()))
	b.WriteString(strings.Join(c.Verbs(), ", "))
	b.WriteString("\n\n")

	if len(c.RoleKeywords) > 0 {
		b.WriteString("### Role keywords\n\n")
		for _, r := range c.RoleKeywords {
			fmt.Fprintf(&b, "- %s: %s\n", r.Role, strings.Join(r.Keywords, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// MarshalYAML returns the catalog in its on-disk YAML form.
func MarshalYAML(c *Catalog) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("catalog.MarshalYAML: %w", err)
	}
	return out, nil
}
