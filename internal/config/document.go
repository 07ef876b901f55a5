package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	ioutils "github.com/handiism/pls/internal/io"
)

// ErrNotScalar is returned by Document.Set when the key names a table or a
// dotted key rather than a plain top-level value.
var ErrNotScalar = errors.New("not a top-level scalar")

// ParseError reports malformed TOML.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "document"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %v", where, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type itemKind int

const (
	itemTrivia itemKind = iota
	itemKeyValue
	itemHeader
)

// item is one syntactic unit of the source text. Concatenating the text of
// every item reproduces the source exactly.
type item struct {
	kind itemKind
	raw  string

	// key-value items: raw == prefix + value + suffix
	key    string // top-level key of the entry
	simple bool   // the key has a single part (no dots)
	prefix string // indentation, key, '=' and following blanks
	value  string // value text as written
	suffix string // trailing blanks, comment and line break

	// header items
	name string
}

func (it *item) text() string {
	if it.kind == itemKeyValue {
		return it.prefix + it.value + it.suffix
	}
	return it.raw
}

// Document is a TOML document that keeps the source text of every entry.
//
// Reads are answered from a decoded view of the document. Writes through
// Set patch only the value text of the affected entry, so comments, blank
// lines, key order, quoting and spacing of everything else survive a save
// unchanged. This matters because config files are edited by hand and
// re-saved by the program over and over.
//
// Example:
//
//	doc, _ := config.ParseDocument("# my show\nname = \"Bleach\"\nnext = 'ep1.mkv' # keep\n")
//	_ = doc.Set("next", "ep2.mkv")
//	fmt.Print(doc.String())
//	// # my show
//	// name = "Bleach"
//	// next = 'ep2.mkv' # keep
type Document struct {
	items []*item
	tree  map[string]any
}

// Table is a read-only view of a TOML table.
type Table struct {
	name   string
	values map[string]any
}

// ParseDocument parses TOML text. It fails with *ParseError when the text is
// not valid TOML.
func ParseDocument(text string) (*Document, error) {
	tree := map[string]any{}
	if err := toml.Unmarshal([]byte(text), &tree); err != nil {
		perr := &ParseError{Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	doc := &Document{tree: tree}
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			doc.items = append(doc.items, &item{kind: itemTrivia, raw: line})

		case strings.HasPrefix(trimmed, "["):
			name, err := headerName(trimmed)
			if err != nil {
				return nil, &ParseError{Line: i + 1, Err: err}
			}
			doc.items = append(doc.items, &item{kind: itemHeader, raw: line, name: name})

		default:
			start := i
			entry := line
			for !isCompleteEntry(entry) {
				i++
				if i >= len(lines) {
					return nil, &ParseError{Line: start + 1, Err: errors.New("unterminated value")}
				}
				entry += lines[i]
			}
			it, err := splitEntry(entry)
			if err != nil {
				return nil, &ParseError{Line: start + 1, Err: err}
			}
			doc.items = append(doc.items, it)
		}
	}

	return doc, nil
}

// LoadDocument reads and parses the file at path.
func LoadDocument(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := ParseDocument(string(data))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Save writes the document to path atomically.
func (d *Document) Save(fs afero.Fs, path string) error {
	if err := ioutils.WriteFileAtomic(fs, path, []byte(d.String())); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// String serializes the document. Text that was never mutated is returned
// exactly as parsed.
func (d *Document) String() string {
	var b strings.Builder
	for _, it := range d.items {
		b.WriteString(it.text())
	}
	return b.String()
}

// Get returns the decoded top-level value for key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.tree[key]
	return v, ok
}

// GetString returns the top-level value for key if it is a string.
func (d *Document) GetString(key string) (string, bool) {
	v, ok := d.tree[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetStringSlice returns the string members of the top-level array at key.
// Members of other types are dropped; skipped reports how many.
func (d *Document) GetStringSlice(key string) (values []string, skipped int, ok bool) {
	v, ok := d.tree[key]
	if !ok {
		return nil, 0, false
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, 0, false
	}
	values = make([]string, 0, len(arr))
	for _, member := range arr {
		s, isString := member.(string)
		if !isString {
			skipped++
			continue
		}
		values = append(values, s)
	}
	return values, skipped, true
}

// GetTable returns the table stored at the top-level key.
func (d *Document) GetTable(key string) (*Table, bool) {
	v, ok := d.tree[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return &Table{name: key, values: m}, true
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	seen := map[string]bool{}
	var keys []string
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	inRoot := true
	for _, it := range d.items {
		switch it.kind {
		case itemHeader:
			inRoot = false
			first, _, _ := strings.Cut(it.name, ".")
			add(first)
		case itemKeyValue:
			if inRoot {
				add(it.key)
			}
		}
	}
	return keys
}

// Set stores value under the top-level key.
//
// An existing entry keeps its key text, spacing and trailing comment; only
// the value text is replaced, and not at all when the new value equals the
// current one. A missing key is appended after the last top-level entry.
// Supported values are strings, booleans, numbers, times and arrays of
// those.
func (d *Document) Set(key string, value any) error {
	if _, isMap := value.(map[string]any); isMap {
		return fmt.Errorf("set %q: %w", key, ErrNotScalar)
	}

	encoded, decoded, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	lastRootEntry := -1
	firstHeader := -1
	for i, it := range d.items {
		if it.kind == itemHeader {
			firstHeader = i
			break
		}
		if it.kind != itemKeyValue {
			continue
		}
		lastRootEntry = i
		if it.key != key {
			continue
		}
		if !it.simple {
			return fmt.Errorf("set %q: %w", key, ErrNotScalar)
		}
		if reflect.DeepEqual(d.tree[key], decoded) {
			return nil
		}
		it.value = encoded
		d.tree[key] = decoded
		return nil
	}

	if _, exists := d.tree[key]; exists {
		// Defined by a table header further down.
		return fmt.Errorf("set %q: %w", key, ErrNotScalar)
	}

	entry := &item{
		kind:   itemKeyValue,
		key:    key,
		simple: true,
		prefix: quoteKey(key) + " = ",
		value:  encoded,
		suffix: "\n",
	}

	pos := len(d.items)
	switch {
	case lastRootEntry >= 0:
		pos = lastRootEntry + 1
	case firstHeader >= 0:
		pos = firstHeader
		// Keep comments written directly above a header attached to it.
		for pos > 0 && isComment(d.items[pos-1]) {
			pos--
		}
	}

	if pos > 0 {
		prev := d.items[pos-1]
		if !strings.HasSuffix(prev.text(), "\n") {
			if prev.kind == itemKeyValue {
				prev.suffix += "\n"
			} else {
				prev.raw += "\n"
			}
		}
	}

	d.items = append(d.items, nil)
	copy(d.items[pos+1:], d.items[pos:])
	d.items[pos] = entry
	d.tree[key] = decoded
	return nil
}

// Name returns the table's key.
func (t *Table) Name() string {
	return t.name
}

// Get returns the value stored under key in the table.
func (t *Table) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (t *Table) GetString(key string) (string, bool) {
	s, ok := t.values[key].(string)
	return s, ok
}

// Keys returns the table's keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isComment(it *item) bool {
	return it.kind == itemTrivia && strings.HasPrefix(strings.TrimSpace(it.raw), "#")
}

// isCompleteEntry reports whether text holds one whole key-value entry.
func isCompleteEntry(text string) bool {
	m := map[string]any{}
	return toml.Unmarshal([]byte(text), &m) == nil && len(m) == 1
}

// splitEntry cuts a complete key-value entry into prefix, value and suffix.
func splitEntry(text string) (*item, error) {
	parts, pos, err := scanKey(text, 0)
	if err != nil {
		return nil, err
	}
	if pos >= len(text) || text[pos] != '=' {
		return nil, errors.New("expected '=' after key")
	}
	pos++
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
		pos++
	}

	prefix, rest := text[:pos], text[pos:]
	body := strings.TrimRight(rest, "\r\n")
	lineEnd := rest[len(body):]

	value := strings.TrimRight(body, " \t")
	// The value ends before the first '#' that starts a comment. A '#'
	// inside a string or array leaves an undecodable prefix.
	for i := 0; i < len(body); i++ {
		if body[i] != '#' {
			continue
		}
		candidate := strings.TrimRight(body[:i], " \t")
		if candidate != "" && isCompleteEntry("v = "+candidate) {
			value = candidate
			break
		}
	}

	return &item{
		kind:   itemKeyValue,
		key:    parts[0],
		simple: len(parts) == 1,
		prefix: prefix,
		value:  value,
		suffix: body[len(value):] + lineEnd,
	}, nil
}

// headerName returns the dotted name of a [table] or [[array]] header line.
func headerName(line string) (string, error) {
	pos := 1
	if strings.HasPrefix(line, "[[") {
		pos = 2
	}
	parts, _, err := scanKey(line, pos)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, "."), nil
}

// scanKey reads a possibly dotted, possibly quoted key starting at pos and
// returns its decoded parts and the position after it and any blanks.
func scanKey(s string, pos int) ([]string, int, error) {
	var parts []string
	for {
		pos = skipBlanks(s, pos)
		if pos >= len(s) {
			return nil, pos, errors.New("missing key")
		}

		var raw string
		switch s[pos] {
		case '"':
			end := pos + 1
			for end < len(s) && s[end] != '"' {
				if s[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(s) {
				return nil, pos, errors.New("unterminated quoted key")
			}
			raw = s[pos : end+1]
			pos = end + 1
		case '\'':
			end := strings.IndexByte(s[pos+1:], '\'')
			if end < 0 {
				return nil, pos, errors.New("unterminated quoted key")
			}
			raw = s[pos : pos+end+2]
			pos += end + 2
		default:
			end := pos
			for end < len(s) && isBareKeyChar(s[end]) {
				end++
			}
			if end == pos {
				return nil, pos, fmt.Errorf("unexpected %q in key", s[pos])
			}
			raw = s[pos:end]
			pos = end
		}

		part, err := decodeKey(raw)
		if err != nil {
			return nil, pos, err
		}
		parts = append(parts, part)

		pos = skipBlanks(s, pos)
		if pos < len(s) && s[pos] == '.' {
			pos++
			continue
		}
		return parts, pos, nil
	}
}

func decodeKey(raw string) (string, error) {
	if raw[0] != '"' && raw[0] != '\'' {
		return raw, nil
	}
	m := map[string]any{}
	if err := toml.Unmarshal([]byte(raw+" = 0"), &m); err != nil {
		return "", fmt.Errorf("decode key %s: %w", raw, err)
	}
	for k := range m {
		return k, nil
	}
	return "", fmt.Errorf("decode key %s: empty", raw)
}

func skipBlanks(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func quoteKey(key string) string {
	bare := key != ""
	for i := 0; i < len(key); i++ {
		if !isBareKeyChar(key[i]) {
			bare = false
			break
		}
	}
	if bare {
		return key
	}
	encoded, _, err := encodeValue(key)
	if err != nil {
		return fmt.Sprintf("%q", key)
	}
	return encoded
}

// encodeValue renders value as TOML value text and returns it together
// with the value as the decoder would produce it.
func encodeValue(value any) (string, any, error) {
	b, err := toml.Marshal(map[string]any{"v": value})
	if err != nil {
		return "", nil, err
	}
	line := strings.TrimRight(string(b), "\r\n")
	_, encoded, found := strings.Cut(line, "=")
	if !found || strings.Contains(line, "\n") {
		return "", nil, fmt.Errorf("cannot encode %T inline", value)
	}
	encoded = strings.TrimSpace(encoded)

	m := map[string]any{}
	if err := toml.Unmarshal([]byte("v = "+encoded), &m); err != nil {
		return "", nil, err
	}
	return encoded, m["v"], nil
}
