//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

//
// THE PRESENTATION TREE
//

// Tree - the corpus in display order; built once and read-only afterwards
type Tree struct {
	Lines []LineNode
}

// LineNode - one corpus line: the languages that have it, in display order, and its sorted notes
type LineNode struct {
	Index int
	Langs []LangNode
	Notes []NoteNode
}

// LangNode - one language's block for a line
type LangNode struct {
	Lang      string
	Words     []WordNode
	Trans     []TransNode
	Footnotes []FootnoteNode
}

type WordNode struct {
	Refs  []Ref
	Tiers []TierNode
}

type RefKind int

const (
	RefFootnote RefKind = iota
	RefNote
)

// Ref - a footnote or note reference as the word declared it
type Ref struct {
	Kind RefKind
	ID   string
}

// Marker - "[id]" for a footnote, "[n-id]" for a note
func (r Ref) Marker() string {
	if r.Kind == RefNote {
		return "[n-" + r.ID + "]"
	}
	return "[" + r.ID + "]"
}

type TierKind int

const (
	TierSimple TierKind = iota
	TierMorph
)

// TierNode - a present tier of a word; Segments for a simple tier, Rows for a morph tier
type TierNode struct {
	Index    int
	Kind     TierKind
	Segments []Cell
	Rows     [][]Cell
}

// Cell - a run of text; Abbrev marks a grammatical label that gets the smallcaps style
type Cell struct {
	Text   string
	Abbrev bool
}

// TransNode - Index is the key from the blob's translation mapping
type TransNode struct {
	Index string
	Text  string
}

type FootnoteNode struct {
	ID    string
	Words []WordNode
	Trans []TransNode
}

type NoteNode struct {
	ID   string
	Text string
}

//
// ABBREVIATIONS
//

var (
	smallcaps = regexp.MustCompile(`^[A-Z.0-9]+$`)
	abbrevrun = regexp.MustCompile(`[A-Z0-9]+(?:\.[A-Z0-9]+)*`)
)

// IsAbbreviation - "PL", "3SG", "N.DEF" are grammatical labels; "run" and "the" are not
func IsAbbreviation(s string) bool {
	return smallcaps.MatchString(s)
}

// Segment - split running text so that each embedded grammatical label stands alone
func Segment(s string) []Cell {
	// "run.3SG" ==> [{run. false} {3SG true}]
	// "Paris" ==> [{Paris false}]: a capital that touches other letters is not a label

	var (
		cells []Cell
		last  int
	)

	plain := func(t string) {
		if t == "" {
			return
		}
		if n := len(cells); n > 0 && !cells[n-1].Abbrev {
			cells[n-1].Text += t
			return
		}
		cells = append(cells, Cell{Text: t})
	}

	for _, loc := range abbrevrun.FindAllStringIndex(s, -1) {
		a, b := loc[0], loc[1]
		if r, _ := utf8.DecodeLastRuneInString(s[:a]); a > 0 && alnum(r) {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(s[b:]); b < len(s) && alnum(r) {
			continue
		}
		plain(s[last:a])
		cells = append(cells, Cell{Text: s[a:b], Abbrev: true})
		last = b
	}
	plain(s[last:])
	return cells
}

func alnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

//
// LANGUAGE IDS
//

// a language id is a class name and the stem of every tag beneath it ("grc", "grc-0", "grc-0-1")
var langid = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// the styling classes that sit beside the tags in a class attribute
var styleclasses = map[string]struct{}{
	"control":      {},
	"controls":     {},
	"display":      {},
	"footnotes":    {},
	"line":         {},
	"morphs":       {},
	"notes":        {},
	"ref":          {},
	"word":         {},
	vv.SMALLCAPS:   {},
	vv.TAGFOOTNOTE: {},
	vv.TAGNOTE:     {},
	vv.TAGTRANS:    {},
}

func langidproblem(id string) string {
	const (
		BADCHR = "language id %q must be letters, digits or '_' and may not start with a digit"
		TAKEN  = "language id %q is already a styling class"
	)
	if !langid.MatchString(id) {
		return fmt.Sprintf(BADCHR, id)
	}
	if _, ok := styleclasses[id]; ok {
		return fmt.Sprintf(TAKEN, id)
	}
	return ""
}

// ValidLangID - nil, or an ErrSchemaMismatch saying why the id cannot name a language
func ValidLangID(id string) error {
	if p := langidproblem(id); p != "" {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, p)
	}
	return nil
}

//
// BUILDING
//

// Build - walk the corpus in reading order and the languages in the supplied order; any structural
// problem aborts the whole build since a partial display would break the footnote numbering
func Build(corpus str.Corpus, schema str.Schema, order []string) (*Tree, error) {
	for _, lang := range order {
		be := BuildError{Lang: lang, Line: -1, Word: -1, Tier: -1}
		if p := langidproblem(lang); p != "" {
			return nil, be.at(ErrSchemaMismatch, p)
		}
		if _, ok := schema[lang]; !ok {
			return nil, be.at(ErrSchemaMismatch, "language has no tier schema")
		}
	}

	tree := &Tree{Lines: make([]LineNode, 0, len(corpus))}
	for li, line := range corpus {
		ln := LineNode{Index: li}
		for _, lang := range order {
			blob, ok := line.Blobs[lang]
			if !ok {
				continue
			}
			loc := BuildError{Lang: lang, Line: li, Word: -1, Tier: -1}
			lnode, err := buildlang(blob, schema[lang], line.Notes, loc)
			if err != nil {
				return nil, err
			}
			ln.Langs = append(ln.Langs, lnode)
		}

		for _, id := range gen.SortedKeys(line.Notes) {
			ln.Notes = append(ln.Notes, NoteNode{ID: id, Text: line.Notes[id]})
		}
		tree.Lines = append(tree.Lines, ln)
	}
	return tree, nil
}

// buildlang - one language's words, translations, and footnote table for a line
func buildlang(blob str.LineBlob, ls str.LangSchema, notes map[string]string, loc BuildError) (LangNode, error) {
	ln := LangNode{Lang: loc.Lang}

	var err error
	ln.Words, err = buildwords(blob.Words, ls, blob.Footnotes, notes, false, loc)
	if err != nil {
		return ln, err
	}

	ln.Trans, err = buildtrans(blob.Trans, ls, loc)
	if err != nil {
		return ln, err
	}

	for _, id := range gen.SortedKeys(blob.Footnotes) {
		fb := blob.Footnotes[id]
		floc := loc
		floc.Footnote = id
		if len(fb.Footnotes) > 0 {
			return ln, floc.at(ErrNestedFootnote, "a footnote cannot carry footnotes of its own")
		}
		fn := FootnoteNode{ID: id}
		fn.Words, err = buildwords(fb.Words, ls, nil, nil, true, floc)
		if err != nil {
			return ln, err
		}
		fn.Trans, err = buildtrans(fb.Trans, ls, floc)
		if err != nil {
			return ln, err
		}
		ln.Footnotes = append(ln.Footnotes, fn)
	}
	return ln, nil
}

func buildwords(words []str.Word, ls str.LangSchema, footnotes map[string]str.LineBlob, notes map[string]string, infootnote bool, loc BuildError) ([]WordNode, error) {
	const (
		NEST = "words inside a footnote cannot reference %ss"
	)

	wnn := make([]WordNode, 0, len(words))
	for wi, w := range words {
		wloc := loc
		wloc.Word = wi

		var wn WordNode
		for _, id := range w.Footnotes {
			rloc := wloc
			rloc.Ref = id
			if infootnote {
				return nil, rloc.at(ErrNestedFootnote, fmt.Sprintf(NEST, vv.TAGFOOTNOTE))
			}
			if _, ok := footnotes[id]; !ok {
				return nil, rloc.at(ErrDanglingReference, "no such footnote in this line")
			}
			wn.Refs = append(wn.Refs, Ref{Kind: RefFootnote, ID: id})
		}
		for _, id := range w.Notes {
			rloc := wloc
			rloc.Ref = id
			if infootnote {
				return nil, rloc.at(ErrNestedFootnote, fmt.Sprintf(NEST, vv.TAGNOTE))
			}
			if _, ok := notes[id]; !ok {
				return nil, rloc.at(ErrDanglingReference, "no such note in this line")
			}
			wn.Refs = append(wn.Refs, Ref{Kind: RefNote, ID: id})
		}

		for ti, tr := range w.Lines {
			if tr.IsAbsent() {
				continue
			}
			tloc := wloc
			tloc.Tier = ti
			tn, err := buildtier(ti, tr, ls, tloc)
			if err != nil {
				return nil, err
			}
			wn.Tiers = append(wn.Tiers, tn)
		}
		wnn = append(wnn, wn)
	}
	return wnn, nil
}

func buildtier(ti int, tr str.TierRendering, ls str.LangSchema, loc BuildError) (TierNode, error) {
	const (
		BOUND = "the schema declares %d tier(s)"
		KIND  = "%s tier holds %s"
		ROWS  = "table has %d rows but the tier declares %d label(s)"
		TYPE  = "unknown tier type %q"
	)

	if ti >= ls.TierCount() {
		return TierNode{}, loc.at(ErrSchemaMismatch, fmt.Sprintf(BOUND, ls.TierCount()))
	}
	decl := ls.Lines[ti]

	switch decl.Type {
	case vv.TIERMORPH:
		if !tr.IsTable() {
			return TierNode{}, loc.at(ErrSchemaMismatch, fmt.Sprintf(KIND, decl.Type, "text"))
		}
		if len(tr.Table) > len(decl.Labels) {
			return TierNode{}, loc.at(ErrSchemaMismatch, fmt.Sprintf(ROWS, len(tr.Table), len(decl.Labels)))
		}
		tn := TierNode{Index: ti, Kind: TierMorph, Rows: make([][]Cell, len(tr.Table))}
		for r, row := range tr.Table {
			tn.Rows[r] = make([]Cell, len(row))
			for c, txt := range row {
				tn.Rows[r][c] = Cell{Text: txt, Abbrev: IsAbbreviation(txt)}
			}
		}
		return tn, nil
	case vv.TIERSIMPLE, vv.TIERTEXT:
		if tr.IsTable() {
			return TierNode{}, loc.at(ErrSchemaMismatch, fmt.Sprintf(KIND, decl.Type, "a table"))
		}
		return TierNode{Index: ti, Kind: TierSimple, Segments: Segment(tr.Text)}, nil
	default:
		return TierNode{}, loc.at(ErrSchemaMismatch, fmt.Sprintf(TYPE, decl.Type))
	}
}

// buildtrans - translation keys run "1".."n" against the n labels of the schema
func buildtrans(trans map[string]string, ls str.LangSchema, loc BuildError) ([]TransNode, error) {
	const (
		NOLABEL = "translation %q has no label (the schema declares %d)"
	)
	var tnn []TransNode
	for _, k := range gen.NaturallySortedKeys(trans) {
		if i, err := strconv.Atoi(k); err != nil || i < 1 || i > len(ls.Trans) || strconv.Itoa(i) != k {
			return nil, loc.at(ErrSchemaMismatch, fmt.Sprintf(NOLABEL, k, len(ls.Trans)))
		}
		tnn = append(tnn, TransNode{Index: k, Text: trans[k]})
	}
	return tnn, nil
}
