package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Catalog is the complete mapping of activity name to Activity.
//
// Go maps do not keep insertion order, so the catalog stores activities in the
// order the server emitted them. That order is the one every renderer uses.
type Catalog struct {
	activities []Activity
	index      map[string]int
}

// NewCatalog builds a catalog from activities in the given order.
// A later activity with a name already present replaces the earlier entry in place.
func NewCatalog(activities ...Activity) Catalog {
	var c Catalog
	for _, a := range activities {
		c.put(a)
	}
	return c
}

func (c *Catalog) put(a Activity) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	a = a.clone()
	if i, ok := c.index[a.Name]; ok {
		c.activities[i] = a
		return
	}
	c.index[a.Name] = len(c.activities)
	c.activities = append(c.activities, a)
}

// Len returns the number of activities.
func (c Catalog) Len() int { return len(c.activities) }

// Activities returns a copy of the activities in catalog order.
func (c Catalog) Activities() []Activity {
	out := make([]Activity, 0, len(c.activities))
	for _, a := range c.activities {
		out = append(out, a.clone())
	}
	return out
}

// Names returns the activity names in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.activities))
	for _, a := range c.activities {
		out = append(out, a.Name)
	}
	return out
}

// Get returns the activity with the given name.
func (c Catalog) Get(name string) (Activity, bool) {
	i, ok := c.index[name]
	if !ok {
		return Activity{}, false
	}
	return c.activities[i].clone(), true
}

// MarshalJSON encodes the catalog as a JSON object keyed by activity name,
// preserving catalog order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c.activities {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		a.Participants = participants
		body, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keyed by activity name, keeping the
// key order of the document.
func (c *Catalog) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("catalog: expected JSON object")
	}

	out := Catalog{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: unexpected key token %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("catalog: activity %q: %w", name, err)
		}
		a.Name = name
		out.put(a)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
