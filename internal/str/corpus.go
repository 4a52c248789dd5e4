//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import (
	"bytes"
	"encoding/json"
	"fmt"
	"gopkg.in/yaml.v3"
)

//
// THE GLOSSED DOCUMENT
//

// Document - everything a loader hands over: schema, language order, and the corpus itself
type Document struct {
	Name  string                `json:"-" yaml:"-"`
	Title string                `json:"title" yaml:"title"`
	Langs map[string]LangSchema `json:"langs" yaml:"langs"`
	Order []string              `json:"order" yaml:"order"`
	Sents Corpus                `json:"sents" yaml:"sents"`
	Dicts []AutoDict            `json:"dicts,omitempty" yaml:"dicts,omitempty"`
}

// Schema - per-language tier declarations keyed by language id
type Schema map[string]LangSchema

// LangSchema - one language's display name, ordered tiers, and translation-line labels
type LangSchema struct {
	ID    string     `json:"id" yaml:"id"`
	Name  string     `json:"name" yaml:"name"`
	Lines []TierDecl `json:"lines" yaml:"lines"`
	Trans []string   `json:"trans" yaml:"trans"`
}

// TierDecl - a "morph" tier carries one label per table row; a "simple" tier carries one label
type TierDecl struct {
	Type   string   `json:"type" yaml:"type"`
	Labels []string `json:"labels" yaml:"labels"`
}

// Corpus - the lines in reading order
type Corpus []Line

// Line - one line of text in every language that has it, plus its editorial notes
type Line struct {
	Blobs map[string]LineBlob `json:"langs" yaml:"langs"`
	Notes map[string]string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// UnmarshalJSON - accepts {"langs": {...}, "notes": {...}} and also the bare language map that older exports wrote
func (l *Line) UnmarshalJSON(b []byte) error {
	type wrapped struct {
		Blobs map[string]LineBlob `json:"langs"`
		Notes map[string]string   `json:"notes"`
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}

	if _, ok := probe["langs"]; ok {
		var w wrapped
		if err := json.Unmarshal(b, &w); err != nil {
			return err
		}
		l.Blobs, l.Notes = w.Blobs, w.Notes
		return nil
	}

	l.Notes = nil
	l.Blobs = make(map[string]LineBlob, len(probe))
	for k, raw := range probe {
		var lb LineBlob
		if err := json.Unmarshal(raw, &lb); err != nil {
			return err
		}
		l.Blobs[k] = lb
	}
	return nil
}

// LineBlob - one language's words, free translations, and footnotes for a line
type LineBlob struct {
	Words     []Word              `json:"words" yaml:"words"`
	Trans     map[string]string   `json:"trans,omitempty" yaml:"trans,omitempty"`
	Footnotes map[string]LineBlob `json:"footnotes,omitempty" yaml:"footnotes,omitempty"`
}

// Word - tier renderings index-aligned with the language's schema, plus footnote and note references
type Word struct {
	Lines     []TierRendering `json:"lines" yaml:"lines"`
	Footnotes []string        `json:"footnotes,omitempty" yaml:"footnotes,omitempty"`
	Notes     []string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AutoDict - fill blank morpheme cells on one column from the cells on another
type AutoDict struct {
	Lang   string            `json:"lang" yaml:"lang"`
	Source int               `json:"source" yaml:"source"`
	Target int               `json:"target" yaml:"target"`
	Data   map[string]string `json:"data" yaml:"data"`
}

//
// TIER RENDERINGS
//

// TierRendering - either plain text or a morpheme table (rows of cells); the zero value means "absent"
type TierRendering struct {
	Text  string
	Table [][]string
}

// TextTier - a simple tier entry
func TextTier(s string) TierRendering {
	return TierRendering{Text: s}
}

// MorphTier - a morph tier entry; one row per table column label
func MorphTier(rows ...[]string) TierRendering {
	return TierRendering{Table: rows}
}

// IsAbsent - the tier does not apply to this word
func (t TierRendering) IsAbsent() bool {
	return t.Text == "" && len(t.Table) == 0
}

// IsTable - a morph-tier entry
func (t TierRendering) IsTable() bool {
	return len(t.Table) != 0
}

func (t TierRendering) MarshalJSON() ([]byte, error) {
	switch {
	case t.IsTable():
		return json.Marshal(t.Table)
	case t.Text != "":
		return json.Marshal(t.Text)
	default:
		return []byte("null"), nil
	}
}

func (t *TierRendering) UnmarshalJSON(b []byte) error {
	const (
		FAIL = "tier rendering must be a string or a list of lists of strings: %s"
	)
	*t = TierRendering{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &t.Text)
	case '[':
		return json.Unmarshal(b, &t.Table)
	default:
		return fmt.Errorf(FAIL, string(b))
	}
}

func (t TierRendering) MarshalYAML() (interface{}, error) {
	switch {
	case t.IsTable():
		return t.Table, nil
	case t.Text != "":
		return t.Text, nil
	default:
		return nil, nil
	}
}

func (t *TierRendering) UnmarshalYAML(n *yaml.Node) error {
	const (
		FAIL = "line %d: tier rendering must be a string or a list of lists of strings"
	)
	*t = TierRendering{}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		t.Text = n.Value
		return nil
	case yaml.SequenceNode:
		return n.Decode(&t.Table)
	default:
		return fmt.Errorf(FAIL, n.Line)
	}
}

//
// CONVENIENCE
//

// Schema - the document's language declarations as a Schema
func (d *Document) Schema() Schema {
	return Schema(d.Langs)
}

// TierCount - number of tiers declared for the language; a word's renderings may not go past it
func (ls LangSchema) TierCount() int {
	return len(ls.Lines)
}
