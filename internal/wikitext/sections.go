package wikitext

import (
	"bytes"
	"encoding/json"
)

// Sections is an insertion-ordered mapping from section title to normalized
// body text. The zero value is empty and ready to use.
type Sections struct {
	names []string
	body  map[string]string
}

// NewSections returns an empty section mapping.
func NewSections() *Sections {
	return &Sections{body: make(map[string]string)}
}

// Add appends a section. Adding an existing name overwrites its text without
// changing its position.
func (s *Sections) Add(name, text string) {
	if s.body == nil {
		s.body = make(map[string]string)
	}
	if _, exists := s.body[name]; !exists {
		s.names = append(s.names, name)
	}
	s.body[name] = text
}

// Get returns the text for name and whether the section exists.
func (s *Sections) Get(name string) (string, bool) {
	text, ok := s.body[name]
	return text, ok
}

// Names returns the section titles in document order.
func (s *Sections) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of sections.
func (s *Sections) Len() int {
	return len(s.names)
}

// MarshalJSON emits the sections as a JSON object preserving document order.
func (s *Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.body[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
