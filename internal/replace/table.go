// Package replace rewrites placeholder tokens in raw document text before the
// rendering engine parses it.
package replace

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry maps one placeholder token to its literal replacement.
type Entry struct {
	Token string
	Value string
}

// Table is an ordered set of entries with unique tokens. The zero value is empty.
type Table struct {
	entries []Entry
}

// NewTable builds a table, rejecting empty or duplicate tokens.
func NewTable(entries ...Entry) (Table, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Token == "" {
			return Table{}, fmt.Errorf("replacement token must not be empty")
		}
		if _, dup := seen[e.Token]; dup {
			return Table{}, fmt.Errorf("duplicate replacement token %q", e.Token)
		}
		seen[e.Token] = struct{}{}
		out = append(out, e)
	}
	return Table{entries: out}, nil
}

// MustTable is NewTable for package-level defaults.
func MustTable(entries ...Entry) Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the entries in table order.
func (t Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.entries) }

// Apply replaces every non-overlapping occurrence of each token, one entry at a
// time in table order, each pass operating on the previous pass's result.
func (t Table) Apply(text string) string {
	for _, e := range t.entries {
		text = strings.ReplaceAll(text, e.Token, e.Value)
	}
	return text
}

// Hazard describes a replacement value that reintroduces another token, which
// makes the result depend on table order.
type Hazard struct {
	Token      string
	Introduces string
}

// Hazards lists every entry whose value contains some token of the table.
func (t Table) Hazards() []Hazard {
	var out []Hazard
	for _, e := range t.entries {
		for _, other := range t.entries {
			if strings.Contains(e.Value, other.Token) {
				out = append(out, Hazard{Token: e.Token, Introduces: other.Token})
			}
		}
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping, keeping document order.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: text replacements must be a mapping", node.Line)
	}
	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: text replacement entries must be scalar", k.Line)
		}
		entries = append(entries, Entry{Token: k.Value, Value: v.Value})
	}
	nt, err := NewTable(entries...)
	if err != nil {
		return err
	}
	*t = nt
	return nil
}

// MarshalYAML encodes the table as an ordered mapping.
func (t Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Token},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}
	return node, nil
}
