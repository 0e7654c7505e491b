package sections

import "strings"

// Document is the canonical section model: an ordered mapping from section
// name to section content. Order is the order in which names were first set.
// The zero value is ready to use.
type Document struct {
	names   []string
	content map[string]string
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{content: map[string]string{}}
}

// Set stores content under name. Overwriting an existing name keeps its
// original position.
func (d *Document) Set(name, content string) {
	if d.content == nil {
		d.content = map[string]string{}
	}
	if _, ok := d.content[name]; !ok {
		d.names = append(d.names, name)
	}
	d.content[name] = content
}

// Get returns the content stored under name.
func (d *Document) Get(name string) (string, bool) {
	if d == nil || d.content == nil {
		return "", false
	}
	v, ok := d.content[name]
	return v, ok
}

// Has reports whether name is a key.
func (d *Document) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Len returns the number of sections.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Names returns the section names in order. The slice is a copy.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.names...)
}

// Values returns the section contents in order.
func (d *Document) Values() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.names))
	for _, n := range d.names {
		out = append(out, d.content[n])
	}
	return out
}

// Joined concatenates every section's content with a single space, in order.
// Scorers search this text rather than individual sections.
func (d *Document) Joined() string {
	return strings.Join(d.Values(), " ")
}

// Clone returns an independent copy.
func (d *Document) Clone() *Document {
	out := NewDocument()
	if d == nil {
		return out
	}
	for _, n := range d.names {
		out.Set(n, d.content[n])
	}
	return out
}

// Section is one name/content pair, used when the model is handed to
// exporters or serialized.
type Section struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Sections returns the model as an ordered slice of pairs.
func (d *Document) Sections() []Section {
	if d == nil {
		return nil
	}
	out := make([]Section, 0, len(d.names))
	for _, n := range d.names {
		out = append(out, Section{Name: n, Content: d.content[n]})
	}
	return out
}
