package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// WeakWord pairs a low-impact phrase with a stronger replacement.
type WeakWord struct {
	Phrase     string `json:"phrase"`
	Suggestion string `json:"suggestion"`
}

// WeakWords is an ordered phrase -> suggestion mapping. In YAML and JSON it is
// a plain mapping; document order is kept because the first matches are
// reported.
type WeakWords []WeakWord

// RoleKeyword maps a role name to its suggested keywords.
type RoleKeyword struct {
	Role     string   `json:"role"`
	Keywords []string `json:"keywords"`
}

// RoleKeywords is an ordered role -> keywords mapping, encoded as a mapping in
// YAML and JSON. Order breaks ties in keyword lookup: the first matching role
// wins.
type RoleKeywords []RoleKeyword

// UnmarshalYAML decodes a mapping node, keeping key order and rejecting
// duplicate phrases.
func (w *WeakWords) UnmarshalYAML(node *yaml.Node) error {
	out := WeakWords{}
	err := eachPair(node, "weak_words", func(key string, value *yaml.Node) error {
		var suggestion string
		if err := value.Decode(&suggestion); err != nil {
			return fmt.Errorf("weak_words[%q]: %w", key, err)
		}
		out = append(out, WeakWord{Phrase: key, Suggestion: suggestion})
		return nil
	})
	if err != nil {
		return err
	}
	*w = out
	return nil
}

// MarshalYAML encodes the table back into an ordered mapping.
func (w WeakWords) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, ww := range w {
		node.Content = append(node.Content, scalar(ww.Phrase), scalar(ww.Suggestion))
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node, keeping key order and rejecting
// duplicate roles.
func (r *RoleKeywords) UnmarshalYAML(node *yaml.Node) error {
	out := RoleKeywords{}
	err := eachPair(node, "role_keywords", func(key string, value *yaml.Node) error {
		var kws []string
		if err := value.Decode(&kws); err != nil {
			return fmt.Errorf("role_keywords[%q]: %w", key, err)
		}
		out = append(out, RoleKeyword{Role: strings.ToLower(key), Keywords: kws})
		return nil
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

// MarshalYAML encodes the table back into an ordered mapping.
func (r RoleKeywords) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, rk := range r {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, kw := range rk.Keywords {
			seq.Content = append(seq.Content, scalar(kw))
		}
		node.Content = append(node.Content, scalar(rk.Role), seq)
	}
	return node, nil
}

// MarshalJSON encodes the table as a JSON object in table order.
func (w WeakWords) MarshalJSON() ([]byte, error) {
	return marshalObject(len(w), func(i int) (string, any) { return w[i].Phrase, w[i].Suggestion })
}

// UnmarshalJSON decodes a JSON object, keeping key order and rejecting
// duplicate phrases.
func (w *WeakWords) UnmarshalJSON(data []byte) error {
	out := WeakWords{}
	err := eachMember(data, "weak_words", func(key string, value json.RawMessage) error {
		var suggestion string
		if err := json.Unmarshal(value, &suggestion); err != nil {
			return fmt.Errorf("weak_words[%q]: %w", key, err)
		}
		out = append(out, WeakWord{Phrase: key, Suggestion: suggestion})
		return nil
	})
	if err != nil {
		return err
	}
	*w = out
	return nil
}

// MarshalJSON encodes the table as a JSON object in table order.
func (r RoleKeywords) MarshalJSON() ([]byte, error) {
	return marshalObject(len(r), func(i int) (string, any) {
		kws := r[i].Keywords
		if kws == nil {
			kws = []string{}
		}
		return r[i].Role, kws
	})
}

// UnmarshalJSON decodes a JSON object, keeping key order and rejecting
// duplicate roles.
func (r *RoleKeywords) UnmarshalJSON(data []byte) error {
	out := RoleKeywords{}
	err := eachMember(data, "role_keywords", func(key string, value json.RawMessage) error {
		var kws []string
		if err := json.Unmarshal(value, &kws); err != nil {
			return fmt.Errorf("role_keywords[%q]: %w", key, err)
		}
		out = append(out, RoleKeyword{Role: strings.ToLower(key), Keywords: kws})
		return nil
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

func marshalObject(n int, member func(i int) (string, any)) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i := 0; i < n; i++ {
		key, value := member(i)
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// eachMember walks the members of a JSON object in document order. Keys are
// compared case-insensitively for duplicates, as in YAML.
func eachMember(data []byte, table string, fn func(key string, value json.RawMessage) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%s: expected an object", table)
	}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
		key := strings.TrimSpace(tok.(string))
		if key == "" {
			return fmt.Errorf("%s: empty key", table)
		}
		norm := strings.ToLower(key)
		if seen[norm] {
			return fmt.Errorf("%s: duplicate key %q", table, key)
		}
		seen[norm] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%s[%q]: %w", table, key, err)
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}
	return nil
}

func eachPair(node *yaml.Node, table string, fn func(key string, value *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: line %d: expected a mapping", table, node.Line)
	}
	seen := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		var key string
		if err := k.Decode(&key); err != nil {
			return fmt.Errorf("%s: line %d: %w", table, k.Line, err)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s: line %d: empty key", table, k.Line)
		}
		norm := strings.ToLower(key)
		if prev, dup := seen[norm]; dup {
			return fmt.Errorf("%s: line %d: duplicate key %q (first defined on line %d)", table, k.Line, key, prev)
		}
		seen[norm] = k.Line
		if err := fn(key, v); err != nil {
			return err
		}
	}
	return nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
