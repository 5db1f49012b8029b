package grammar

import (
	"encoding/json"
)

// Atom variants marshal to JSON objects carrying a "kind" discriminator so
// that the tree stays self-describing (larkc -j output). Unmarshalling is
// intentionally not provided: the model is produced by langdef, not loaded.

func (g *Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Exp  *Expansion
	}{"group", g.Exp})
}

func (m *Maybe) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Exp  *Expansion
	}{"maybe", m.Exp})
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string `json:"kind"`
		Text     string
		IsRegexp bool   `json:",omitempty"`
		Caseless bool   `json:",omitempty"`
		Flags    string `json:",omitempty"`
	}{"literal", l.Text, l.IsRegexp, l.Caseless, l.Flags})
}

func (r *Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Lo, Hi string
	}{"range", r.Lo, r.Hi})
}

func (r *Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string
		Ref  RefKind
	}{"ref", r.Name, r.Kind})
}

func (c *Call) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string
		Args []Atom
	}{"call", c.Name, c.Args})
}
