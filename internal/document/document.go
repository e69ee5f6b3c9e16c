// Package document parses overview files: an optional YAML-ish frontmatter
// block followed by a markdown body split into ## sections. Parsing never
// fails; malformed input degrades to whatever structure can be recovered.
package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is one heading-delimited span of body text.
type Section struct {
	Heading string
	Body    string
}

// field is a single frontmatter entry. The display key keeps the original
// spelling; norm is the case/separator-insensitive lookup key.
type field struct {
	display string
	norm    string
	values  []string
	list    bool
}

// Document is a parsed overview file. Preamble is the body text before the
// first ## heading, verbatim. Sections appear in source order.
type Document struct {
	fields   []field
	Preamble string
	Sections []Section
}

// Parse builds a Document from raw text. It accepts any input: a missing or
// malformed frontmatter block yields an empty mapping, text with no headings
// becomes a single-preamble document with zero sections.
func Parse(raw string) *Document {
	doc := &Document{}

	body := raw
	if block, rest, ok := splitFrontmatter(raw); ok {
		doc.fields = parseFrontmatter(block)
		body = rest
	}

	lines := strings.Split(body, "\n")
	var buf strings.Builder
	cur := -1 // -1 while still in the preamble
	flush := func() {
		if cur < 0 {
			doc.Preamble = buf.String()
		} else {
			doc.Sections[cur].Body = buf.String()
		}
		buf.Reset()
	}
	for i, line := range lines {
		if h, ok := headingText(line); ok {
			flush()
			doc.Sections = append(doc.Sections, Section{Heading: h})
			cur = len(doc.Sections) - 1
			continue
		}
		buf.WriteString(line)
		if i < len(lines)-1 {
			buf.WriteByte('\n')
		}
	}
	flush()

	return doc
}

// splitFrontmatter separates the frontmatter block (between leading ---
// delimiter lines) from the rest of the text. ok is false when there is no
// complete block, in which case the whole input is body.
func splitFrontmatter(raw string) (block, rest string, ok bool) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", "", false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	// No closing delimiter.
	return "", "", false
}

// headingText reports whether line starts a section ("## " plus text).
func headingText(line string) (string, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	h := strings.TrimSpace(line[3:])
	if h == "" {
		return "", false
	}
	return h, true
}

// parseFrontmatter decodes the block through yaml.Node so that key order and
// scalar-vs-sequence shape survive. Invalid YAML falls back to a line scan.
func parseFrontmatter(block string) []field {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(block), &node); err != nil {
		return scanFrontmatter(block)
	}
	if len(node.Content) == 0 {
		return nil
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		// Valid YAML but not a mapping (a bare string, a list): nothing usable.
		return nil
	}

	var out []field
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Value == "" {
			continue
		}
		f := field{display: k.Value, norm: normalizeKey(k.Value)}
		switch v.Kind {
		case yaml.ScalarNode:
			if v.Tag != "!!null" {
				if s := strings.TrimSpace(v.Value); s != "" {
					f.values = []string{s}
				}
			}
		case yaml.SequenceNode:
			f.list = true
			for _, c := range v.Content {
				if c.Kind == yaml.ScalarNode && c.Tag != "!!null" {
					f.values = append(f.values, strings.TrimSpace(c.Value))
				}
			}
		default:
			continue
		}
		out = append(out, f)
	}
	return out
}

// scanFrontmatter is the best-effort fallback for blocks yaml rejects:
// "key: value" lines plus "- item" continuations; anything else is skipped.
func scanFrontmatter(block string) []field {
	var out []field
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "- ") {
			if len(out) == 0 {
				continue
			}
			last := &out[len(out)-1]
			last.list = true
			if item := strings.TrimSpace(trimmed[2:]); item != "" {
				last.values = append(last.values, item)
			}
			continue
		}
		k, v, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		f := field{display: key, norm: normalizeKey(key)}
		if val := strings.TrimSpace(v); val != "" {
			f.values = []string{val}
		}
		out = append(out, f)
	}
	return out
}

// normalizeKey lowercases and strips underscores, hyphens, and spaces so
// that Next_action, "next action", and NEXT-ACTION all collide.
func normalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(key))
}

// Get returns the frontmatter value for key, looked up case- and
// separator-insensitively. Sequence-valued and empty fields return def.
func (d *Document) Get(key, def string) string {
	for i := range d.fields {
		f := &d.fields[i]
		if f.norm != normalizeKey(key) {
			continue
		}
		if f.list || len(f.values) == 0 || f.values[0] == "" {
			return def
		}
		return f.values[0]
	}
	return def
}

// GetList returns the sequence value for key, or nil for scalar or missing
// fields.
func (d *Document) GetList(key string) []string {
	for i := range d.fields {
		f := &d.fields[i]
		if f.norm != normalizeKey(key) {
			continue
		}
		if !f.list {
			return nil
		}
		out := make([]string, len(f.values))
		copy(out, f.values)
		return out
	}
	return nil
}

// SetField sets key to a scalar value, keeping the original spelling and
// position when the key already exists (first match after normalization).
func (d *Document) SetField(key, value string) {
	norm := normalizeKey(key)
	for i := range d.fields {
		if d.fields[i].norm == norm {
			d.fields[i].values = []string{value}
			d.fields[i].list = false
			return
		}
	}
	d.fields = append(d.fields, field{display: key, norm: norm, values: []string{value}})
}

// Keys returns the display form of every frontmatter key, in order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.display
	}
	return out
}

// HasFrontmatter reports whether any frontmatter fields were parsed.
func (d *Document) HasFrontmatter() bool {
	return len(d.fields) > 0
}

// Section returns the body of the first section whose heading matches
// case-insensitively, or "" when absent. Callers cannot distinguish a
// missing section from an empty one.
func (d *Document) Section(heading string) string {
	for _, s := range d.Sections {
		if strings.EqualFold(s.Heading, heading) {
			return s.Body
		}
	}
	return ""
}

// SetSection replaces the body of the first case-insensitive heading match,
// or appends a new section at the end. Bodies are normalized to end with a
// newline so the render stays well-formed.
func (d *Document) SetSection(heading, body string) {
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	for i := range d.Sections {
		if strings.EqualFold(d.Sections[i].Heading, heading) {
			d.Sections[i].Body = body
			return
		}
	}
	d.Sections = append(d.Sections, Section{Heading: strings.TrimSpace(heading), Body: body})
}

// SetSectionAt replaces the body of the section at index i, with the same
// trailing-newline normalization as SetSection. Duplicate headings are
// legal, so callers holding a section index must write through it rather
// than looking the heading up again. Out-of-range indexes are ignored.
func (d *Document) SetSectionAt(i int, body string) {
	if i < 0 || i >= len(d.Sections) {
		return
	}
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	d.Sections[i].Body = body
}

// Title returns the first "# " heading in the preamble, or "".
func (d *Document) Title() string {
	for _, line := range strings.Split(d.Preamble, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// Render serializes the document back to text: frontmatter block (only when
// non-empty, insertion order), preamble, then each section. Parsing the
// result yields a document semantically equal to d.
func (d *Document) Render() string {
	var b strings.Builder
	if len(d.fields) > 0 {
		b.WriteString("---\n")
		for _, f := range d.fields {
			switch {
			case f.list:
				b.WriteString(f.display + ":\n")
				for _, v := range f.values {
					b.WriteString("- " + v + "\n")
				}
			case len(f.values) > 0 && f.values[0] != "":
				b.WriteString(f.display + ": " + f.values[0] + "\n")
			default:
				b.WriteString(f.display + ":\n")
			}
		}
		b.WriteString("---\n")
	}
	b.WriteString(d.Preamble)
	for _, s := range d.Sections {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString("## " + s.Heading + "\n")
		b.WriteString(s.Body)
	}
	return b.String()
}
