//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"io"
	"strconv"
	"strings"
)

//
// THE TAB-SEPARATED AUTHORING FORMAT
//
// %META
// title	The Odyssey
// %LANG	grc
// name	Ancient Greek
// %TRANS
// English
// %LINES
// morph	morphs
// morph	gloss
// text	translit
// %TEXT
// %LINE
// grc	ἄνδρ-α	man-ACC.SG	andra	1 n-a
// grc-T1	Tell me of the man
// grc-F1	πολύ-τροπον	much-turned	polytropon
// NOTE	a	the first word of the poem
// %DICT	grc	1	2
// ἄνδρ	man
//
// Blank lines and lines beginning with '#' are ignored. A word row is a specifier followed by one
// column per declared %LINES row and an optional trailing column of space-separated references
// ("1" is footnote 1; "n-a" is note a). Specifiers are LANG, LANG-Tn (translation n), LANG-Fn
// (footnote n), and LANG-Fn-Tn.
//

// ErrSyntax - a document could not be parsed; test with errors.Is()
var ErrSyntax = errors.New("syntax error")

const (
	morphseparators = "<>/-="
	notespecifier   = "NOTE"
	noteprefix      = "n-"
	linetypetrans   = "trans"
)

// SyntaxError - where a TSV document went wrong
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s on line %d: %s\n\t%s", ErrSyntax, e.Line, e.Msg, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

type tsvline struct {
	no   int
	text string
	cols []string
	head string
}

func (l tsvline) fail(f string, a ...any) error {
	return &SyntaxError{Line: l.no, Text: strings.TrimSpace(l.text), Msg: fmt.Sprintf(f, a...)}
}

type tsvblock struct {
	head   tsvline
	lines  []tsvline
	blocks []tsvblock
}

var nesting = map[string][]string{
	"":      {"META", "TEXT", "DICT"},
	"DICT":  {},
	"LANG":  {"TRANS", "LINES"},
	"LINE":  {},
	"LINES": {},
	"META":  {"LANG"},
	"TEXT":  {"LINE"},
	"TRANS": {},
}

// group - a header, the plain lines under it, then any child blocks it may contain
func group(lns []tsvline) (tsvblock, []tsvline) {
	blk := tsvblock{head: lns[0]}
	rem := lns[1:]
	for len(rem) > 0 && rem[0].head == "" {
		blk.lines = append(blk.lines, rem[0])
		rem = rem[1:]
	}
	for len(rem) > 0 && contains(nesting[blk.head.head], rem[0].head) {
		var b tsvblock
		b, rem = group(rem)
		blk.blocks = append(blk.blocks, b)
	}
	return blk, rem
}

func contains(sl []string, s string) bool {
	for _, x := range sl {
		if x == s {
			return true
		}
	}
	return false
}

func (b tsvblock) dict() (map[string]string, error) {
	d := make(map[string]string, len(b.lines))
	for _, l := range b.lines {
		if len(l.cols) != 2 {
			return nil, l.fail("expected 2 columns (KEY VAL) but found %d", len(l.cols))
		}
		if _, dup := d[l.cols[0]]; dup {
			return nil, l.fail("key '%s' specified multiple times", l.cols[0])
		}
		d[l.cols[0]] = l.cols[1]
	}
	return d, nil
}

// LoadTSV - parse the tab-separated authoring format
func LoadTSV(r io.Reader, name string) (*str.Document, error) {
	lns := []tsvline{{no: 0}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), vv.MAXDOCSIZE)

	n := 0
	for sc.Scan() {
		n++
		t := sc.Text()
		if strings.TrimSpace(t) == "" || strings.HasPrefix(t, "#") {
			continue
		}
		l := tsvline{no: n, text: t, cols: strings.Split(strings.TrimSpace(t), "\t")}
		if strings.HasPrefix(l.cols[0], "%") {
			l.head = strings.TrimPrefix(l.cols[0], "%")
			if _, ok := nesting[l.head]; !ok || l.head == "" {
				return nil, l.fail("unknown header '%s'", l.cols[0])
			}
		}
		lns = append(lns, l)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	root, rem := group(lns)
	if len(rem) > 0 {
		return nil, rem[0].fail("unexpected header '%%%s'", rem[0].head)
	}

	doc := &str.Document{Name: name, Langs: make(map[string]str.LangSchema)}
	cols := make(map[string][]string)

	for _, b := range root.blocks {
		if b.head.head != "META" {
			continue
		}
		for _, l := range b.lines {
			if len(l.cols) == 2 && l.cols[0] == "title" {
				doc.Title = l.cols[1]
			}
		}
		for _, lb := range b.blocks {
			ls, lc, err := tsvlang(lb)
			if err != nil {
				return nil, err
			}
			if _, dup := doc.Langs[ls.ID]; dup {
				return nil, lb.head.fail("language '%s' declared twice", ls.ID)
			}
			doc.Order = append(doc.Order, ls.ID)
			doc.Langs[ls.ID] = ls
			cols[ls.ID] = lc
		}
	}

	for _, b := range root.blocks {
		switch b.head.head {
		case "TEXT":
			for _, lb := range b.blocks {
				line, err := tsvsentence(lb, doc.Langs, cols)
				if err != nil {
					return nil, err
				}
				doc.Sents = append(doc.Sents, line)
			}
		case "DICT":
			d, err := tsvdict(b, doc.Langs, cols)
			if err != nil {
				return nil, err
			}
			doc.Dicts = append(doc.Dicts, d)
		}
	}
	return doc, nil
}

// tsvlang - a %LANG block; consecutive morph rows of %LINES share one tier. Also returns the
// type of every authoring column in order.
func tsvlang(b tsvblock) (str.LangSchema, []string, error) {
	var ls str.LangSchema
	if len(b.head.cols) != 2 {
		return ls, nil, b.head.fail("expected 2 columns (%%LANG ID) but found %d", len(b.head.cols))
	}
	ls.ID = b.head.cols[1]
	if err := gls.ValidLangID(ls.ID); err != nil {
		return ls, nil, b.head.fail("%s", err.Error())
	}

	d, err := b.dict()
	if err != nil {
		return ls, nil, err
	}
	nm, ok := d["name"]
	if !ok {
		return ls, nil, b.head.fail("language '%s' has no name", ls.ID)
	}
	ls.Name = nm

	var coltypes []string
	for _, sb := range b.blocks {
		switch sb.head.head {
		case "TRANS":
			for _, l := range sb.lines {
				ls.Trans = append(ls.Trans, l.cols[0])
			}
		case "LINES":
			for _, l := range sb.lines {
				if len(l.cols) != 2 {
					return ls, nil, l.fail("expected 2 columns (TYPE LABEL) but found %d", len(l.cols))
				}
				ty, lb := l.cols[0], l.cols[1]
				switch ty {
				case vv.TIERMORPH:
					if n := len(ls.Lines); n > 0 && ls.Lines[n-1].Type == vv.TIERMORPH {
						ls.Lines[n-1].Labels = append(ls.Lines[n-1].Labels, lb)
					} else {
						ls.Lines = append(ls.Lines, str.TierDecl{Type: vv.TIERMORPH, Labels: []string{lb}})
					}
				case vv.TIERTEXT, vv.TIERSIMPLE, linetypetrans:
					ls.Lines = append(ls.Lines, str.TierDecl{Type: vv.TIERSIMPLE, Labels: []string{lb}})
				default:
					return ls, nil, l.fail("line type must be one of 'text', 'morph', 'trans'")
				}
				coltypes = append(coltypes, ty)
			}
		}
	}
	return ls, coltypes, nil
}

// specifier - "grc", "grc-T1", "grc-F2", "grc-F2-T1"
func specifier(l tsvline, langs map[string]str.LangSchema) (lang string, footnote string, trans string, err error) {
	parts := strings.Split(l.cols[0], "-")
	if _, ok := langs[parts[0]]; !ok {
		return "", "", "", l.fail("unknown language '%s'", parts[0])
	}

	pop := func(prefix string) string {
		if len(parts) < 2 {
			return ""
		}
		last := parts[len(parts)-1]
		if !strings.HasPrefix(last, prefix) {
			return ""
		}
		num := strings.TrimPrefix(last, prefix)
		if num == "" {
			num = "1"
		}
		if i, e := strconv.Atoi(num); e != nil || i < 1 {
			return ""
		}
		parts = parts[:len(parts)-1]
		return strings.TrimLeft(num, "0")
	}

	trans = pop("T")
	footnote = pop("F")
	if len(parts) != 1 {
		return "", "", "", l.fail("unable to interpret specifier '%s'", l.cols[0])
	}
	return parts[0], footnote, trans, nil
}

// tsvsentence - a %LINE block becomes one corpus line
func tsvsentence(b tsvblock, langs map[string]str.LangSchema, cols map[string][]string) (str.Line, error) {
	line := str.Line{Blobs: make(map[string]str.LineBlob)}

	for _, l := range b.lines {
		if l.cols[0] == notespecifier {
			if len(l.cols) != 3 {
				return line, l.fail("expected 3 columns (NOTE ID TEXT) but found %d", len(l.cols))
			}
			if line.Notes == nil {
				line.Notes = make(map[string]string)
			}
			if _, dup := line.Notes[l.cols[1]]; dup {
				return line, l.fail("note '%s' specified multiple times", l.cols[1])
			}
			line.Notes[l.cols[1]] = l.cols[2]
			continue
		}

		lang, fn, tr, err := specifier(l, langs)
		if err != nil {
			return line, err
		}

		blob := line.Blobs[lang]
		target := blob
		if fn != "" {
			target = blob.Footnotes[fn]
		}

		if tr != "" {
			if len(l.cols) != 2 {
				return line, l.fail("expected 2 columns (SPECIFIER TEXT) but found %d", len(l.cols))
			}
			if target.Trans == nil {
				target.Trans = make(map[string]string)
			}
			target.Trans[tr] = l.cols[1]
		} else {
			w, err := tsvword(l, cols[lang])
			if err != nil {
				return line, err
			}
			target.Words = append(target.Words, w)
		}

		if fn != "" {
			if blob.Footnotes == nil {
				blob.Footnotes = make(map[string]str.LineBlob)
			}
			blob.Footnotes[fn] = target
		} else {
			blob = target
		}
		line.Blobs[lang] = blob
	}
	return line, nil
}

// tsvword - one word row; runs of morph columns are split into aligned morphemes
func tsvword(l tsvline, coltypes []string) (str.Word, error) {
	var w str.Word
	vals := l.cols[1:]
	if len(vals) < 1 || len(vals) > len(coltypes)+1 {
		return w, l.fail("expected between 2 and %d columns but found %d", len(coltypes)+2, len(l.cols))
	}
	if len(vals) == len(coltypes)+1 {
		for _, ref := range strings.Fields(vals[len(vals)-1]) {
			if strings.HasPrefix(ref, noteprefix) {
				w.Notes = append(w.Notes, strings.TrimPrefix(ref, noteprefix))
			} else {
				w.Footnotes = append(w.Footnotes, ref)
			}
		}
		vals = vals[:len(coltypes)]
	}
	for len(vals) < len(coltypes) {
		vals = append(vals, "")
	}

	var run []string
	start := 0
	flush := func(end int) error {
		if len(run) == 0 {
			return nil
		}
		tbl, err := alignmorphs(l, start+1, end, run)
		if err != nil {
			return err
		}
		w.Lines = append(w.Lines, str.TierRendering{Table: tbl})
		run = nil
		return nil
	}

	for i, ty := range coltypes {
		if ty == vv.TIERMORPH {
			if len(run) == 0 {
				start = i
			}
			run = append(run, vals[i])
			continue
		}
		if err := flush(i); err != nil {
			return w, err
		}
		w.Lines = append(w.Lines, str.TextTier(vals[i]))
	}
	if err := flush(len(coltypes)); err != nil {
		return w, err
	}

	// trailing absent tiers carry no information
	for len(w.Lines) > 0 && w.Lines[len(w.Lines)-1].IsAbsent() {
		w.Lines = w.Lines[:len(w.Lines)-1]
	}
	return w, nil
}

// splitmorph - "ἄνδρ-α" ==> ["ἄνδρ", "-", "α"]
func splitmorph(s string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, r := range s {
		if strings.ContainsRune(morphseparators, r) {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			out = append(out, string(r))
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func isseparator(s string) bool {
	return len(s) > 0 && strings.Trim(s, morphseparators) == ""
}

// alignmorphs - turn the columns of one morph tier into table rows. Each row starts with the
// separator (if any) that precedes the first morpheme and then alternates morpheme, separator.
func alignmorphs(l tsvline, first int, last int, columns []string) ([][]string, error) {
	type morpheme struct {
		fields []string
		prefix string
		suffix string
	}

	where := fmt.Sprintf("columns %d through %d", first, last)

	split := make([][]string, len(columns))
	width := 0
	empty := true
	for i, c := range columns {
		split[i] = splitmorph(c)
		if len(split[i]) > width {
			width = len(split[i])
		}
		if c != "" {
			empty = false
		}
	}
	if empty {
		return nil, nil
	}
	for i := range split {
		if len(split[i]) == 0 {
			split[i] = make([]string, width)
		}
		if len(split[i]) != width {
			return nil, l.fail("%s do not all have the same number of morphemes", where)
		}
	}

	var (
		morphs []morpheme
		sep    string
	)
	for pos := 0; pos < width; pos++ {
		seen := make(map[string]bool)
		col := make([]string, len(split))
		anysep := false
		for i := range split {
			col[i] = split[i][pos]
			if col[i] != "" {
				seen[col[i]] = true
				if isseparator(col[i]) {
					anysep = true
				}
			}
		}

		switch {
		case len(seen) == 1 && anysep:
			sep += col[firstnonempty(col)]
		case len(seen) > 1 && anysep:
			return nil, l.fail("%s do not have the same morpheme separators", where)
		default:
			morphs = append(morphs, morpheme{fields: col, prefix: sep})
			sep = ""
		}
	}
	if sep != "" {
		if len(morphs) == 0 {
			return nil, l.fail("%s have morpheme separators but no morphemes", where)
		}
		morphs[len(morphs)-1].suffix = sep
	}

	rows := make([][]string, len(columns))
	for i := range rows {
		row := []string{""}
		for _, m := range morphs {
			row[len(row)-1] += m.prefix
			row = append(row, m.fields[i], m.suffix)
		}
		rows[i] = row
	}
	return rows, nil
}

func firstnonempty(sl []string) int {
	for i, s := range sl {
		if s != "" {
			return i
		}
	}
	return 0
}

// tsvdict - "%DICT LANG SOURCE TARGET" followed by KEY VAL rows; SOURCE and TARGET count authoring columns from 1
func tsvdict(b tsvblock, langs map[string]str.LangSchema, cols map[string][]string) (str.AutoDict, error) {
	var ad str.AutoDict
	h := b.head
	if len(h.cols) != 4 {
		return ad, h.fail("expected 4 columns (%%DICT LANG SOURCE TARGET) but found %d", len(h.cols))
	}
	ad.Lang = h.cols[1]
	ls, ok := langs[ad.Lang]
	if !ok {
		return ad, h.fail("unknown language '%s'", ad.Lang)
	}

	var err error
	if ad.Source, err = strconv.Atoi(h.cols[2]); err != nil {
		return ad, h.fail("expected an integer but got '%s' in column SOURCE (3)", h.cols[2])
	}
	if ad.Target, err = strconv.Atoi(h.cols[3]); err != nil {
		return ad, h.fail("expected an integer but got '%s' in column TARGET (4)", h.cols[3])
	}
	for _, c := range []int{ad.Source, ad.Target} {
		if c < 1 || c > len(cols[ad.Lang]) {
			return ad, h.fail("language %s (%s) has no column %d", ls.Name, ad.Lang, c)
		}
	}

	ad.Data, err = b.dict()
	return ad, err
}
