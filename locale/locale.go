// Package locale supplies localized names for months and days of the week.
//
// The default Catalog is built from YAML tables embedded in the binary, one
// per language, and exposed both through the TextProvider interface and as a
// golang.org/x/text message catalog for label translation and number
// formatting.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/roach88/almanac/calendar"
)

//go:embed tables/*.yaml
var tables embed.FS

// Field identifies the kind of value a text describes.
type Field int

const (
	MonthOfYear Field = iota + 1
	DayOfWeek
)

// String returns the table key prefix, "month" or "weekday".
func (f Field) String() string {
	switch f {
	case MonthOfYear:
		return "month"
	case DayOfWeek:
		return "weekday"
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// valid reports whether value is in range for f.
func (f Field) valid(value int) bool {
	switch f {
	case MonthOfYear:
		return value >= 1 && value <= 12
	case DayOfWeek:
		return value >= 1 && value <= 7
	}
	return false
}

// Style selects the length of a text.
type Style int

const (
	Full Style = iota
	Short
	Narrow
)

// String returns "full", "short" or "narrow".
func (s Style) String() string {
	switch s {
	case Full:
		return "full"
	case Short:
		return "short"
	case Narrow:
		return "narrow"
	}
	return "Style(" + strconv.Itoa(int(s)) + ")"
}

// ParseStyle parses the output of Style.String.
func ParseStyle(s string) (Style, error) {
	for _, st := range []Style{Full, Short, Narrow} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown text style %q (expected full, short or narrow)", s)
}

// TextProvider supplies localized text for a field value. It returns false
// when the value is out of range or no text exists for the language.
type TextProvider interface {
	TextFor(field Field, value int, style Style, tag language.Tag) (string, bool)
}

// MonthName returns the name of m from p.
func MonthName(p TextProvider, m calendar.Month, style Style, tag language.Tag) (string, bool) {
	return p.TextFor(MonthOfYear, int(m), style, tag)
}

// DayOfWeekName returns the name of d from p.
func DayOfWeekName(p TextProvider, d calendar.DayOfWeek, style Style, tag language.Tag) (string, bool) {
	return p.TextFor(DayOfWeek, int(d), style, tag)
}

// dictionary is a flat key/value table that also serves as a
// catalog.Dictionary.
type dictionary struct {
	entries map[string]string
}

func (d *dictionary) Lookup(key string) (string, bool) {
	if value, ok := d.entries[key]; ok {
		// \x02 marks a raw string message.
		return "\x02" + value, true
	}
	return "", false
}

func parseDictionary(data []byte) (*dictionary, error) {
	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &dictionary{entries: entries}, nil
}

// Catalog is the default TextProvider. It is safe for concurrent use once
// built.
type Catalog struct {
	cat     catalog.Catalog
	tags    []language.Tag
	dicts   []*dictionary
	matcher language.Matcher
}

// Default returns a Catalog over the embedded tables with English as the
// fallback language.
func Default() (*Catalog, error) {
	return NewFromFS(tables, "tables", "en")
}

// NewFromFS reads every <lang>.yaml file in dir and builds a Catalog.
// fallback must name one of the files.
func NewFromFS(fsys fs.FS, dir, fallback string) (*Catalog, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback language %q: %w", fallback, err)
	}

	c := &Catalog{}
	byName := map[string]catalog.Dictionary{}
	for _, file := range files {
		if file.IsDir() || path.Ext(file.Name()) != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(file.Name(), ".yaml")
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", file.Name(), err)
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		dict, err := parseDictionary(data)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", file.Name(), err)
		}
		byName[name] = dict
		if tag == fallbackTag {
			// The matcher prefers the first tag when nothing fits.
			c.tags = slices.Insert(c.tags, 0, tag)
			c.dicts = slices.Insert(c.dicts, 0, dict)
		} else {
			c.tags = append(c.tags, tag)
			c.dicts = append(c.dicts, dict)
		}
	}
	if len(c.tags) == 0 || c.tags[0] != fallbackTag {
		return nil, fmt.Errorf("no table for fallback language %q in %s", fallback, dir)
	}

	c.cat, err = catalog.NewFromMap(byName, catalog.Fallback(fallbackTag))
	if err != nil {
		return nil, err
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Languages returns the languages with a table, fallback first.
func (c *Catalog) Languages() []language.Tag { return slices.Clone(c.tags) }

// Match returns the supported language closest to tag and whether the match
// is usable. An unusable match still returns the fallback language.
func (c *Catalog) Match(tag language.Tag) (language.Tag, bool) {
	_, i, conf := c.matcher.Match(tag)
	return c.tags[i], conf != language.No
}

func (c *Catalog) dictFor(tag language.Tag) (*dictionary, bool) {
	_, i, conf := c.matcher.Match(tag)
	if conf == language.No {
		return nil, false
	}
	return c.dicts[i], true
}

func key(field Field, style Style, value int) string {
	return field.String() + "." + style.String() + "." + strconv.Itoa(value)
}

// TextFor implements TextProvider.
func (c *Catalog) TextFor(field Field, value int, style Style, tag language.Tag) (string, bool) {
	if !field.valid(value) {
		return "", false
	}
	d, ok := c.dictFor(tag)
	if !ok {
		return "", false
	}
	text, ok := d.entries[key(field, style, value)]
	return text, ok
}

// Parsable pairs a text with the value it names.
type Parsable struct {
	Text  string
	Value int
}

// ParsableTextFor lists every text for field in the given styles, longest
// first so that a prefix never shadows a longer match. Texts naming more than
// one value, such as the English narrow "M" for March and May, are left out.
func (c *Catalog) ParsableTextFor(field Field, tag language.Tag, styles ...Style) []Parsable {
	d, ok := c.dictFor(tag)
	if !ok {
		return nil
	}
	values := map[string]int{}
	conflicted := map[string]bool{}
	for _, style := range styles {
		for v := 1; field.valid(v); v++ {
			text, ok := d.entries[key(field, style, v)]
			if !ok {
				continue
			}
			if prev, seen := values[text]; seen && prev != v {
				conflicted[text] = true
			}
			values[text] = v
		}
	}

	var out []Parsable
	for text, v := range values {
		if !conflicted[text] {
			out = append(out, Parsable{Text: text, Value: v})
		}
	}
	slices.SortFunc(out, func(a, b Parsable) int {
		if n := len(b.Text) - len(a.Text); n != 0 {
			return n
		}
		return strings.Compare(a.Text, b.Text)
	})
	return out
}

// ParseText returns the value named by text, ignoring case.
func (c *Catalog) ParseText(field Field, text string, tag language.Tag, styles ...Style) (int, bool) {
	fold := cases.Fold()
	want := fold.String(text)
	for _, p := range c.ParsableTextFor(field, tag, styles...) {
		if fold.String(p.Text) == want {
			return p.Value, true
		}
	}
	return 0, false
}

// Printer returns a message printer for tag that translates keys found in
// the tables, such as "label.day_of_week".
func (c *Catalog) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(c.cat))
}

// Label translates a label key like "day_of_week". Languages without a
// table get the fallback language's label.
func (c *Catalog) Label(tag language.Tag, name string) string {
	matched, _ := c.Match(tag)
	return c.Printer(matched).Sprintf(message.Key("label."+name, name))
}

// FormatNumber formats n with the digit grouping of tag.
func (c *Catalog) FormatNumber(tag language.Tag, n int64) string {
	return c.Printer(tag).Sprintf("%d", n)
}
