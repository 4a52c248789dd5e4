//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"sort"
	"strings"
)

//
// TAG VOCABULARY: the renderer and the control panel must both come through here
//

// LangTag - the tag on a language's container
func LangTag(lang string) string { return lang }

// TierTag - a simple tier paragraph: "{lang}-{tier}"
func TierTag(lang string, tier int) string { return fmt.Sprintf("%s-%d", lang, tier) }

// RowTag - one row of a morph tier table: "{lang}-{tier}-{row}"
func RowTag(lang string, tier int, row int) string { return fmt.Sprintf("%s-%d-%d", lang, tier, row) }

// TransTag - a translation paragraph: "trans-{lang}-{index}"
func TransTag(lang string, idx string) string { return fmt.Sprintf("%s-%s-%s", vv.TAGTRANS, lang, idx) }

// RenderOptions - WithFootnotes adds reference markers, the footnote tables, and the notes block
type RenderOptions struct {
	WithFootnotes bool
}

// Markup - the rendered display plus every tag that appears in it
type Markup struct {
	Root *Node
	Tags []string
}

func (m Markup) HTML() string {
	return m.Root.HTML()
}

type renderer struct {
	opt  RenderOptions
	tags map[string]struct{}
}

// Render - a pure function of the tree and the options
func Render(tree *Tree, opt RenderOptions) Markup {
	// containment is what makes a language toggle hide a whole block:
	//	div.display
	//		div.line
	//			div.lang-line {lang}
	//				div.word > p.ref, table > tbody > tr.{lang}-{i}-{j} > td, p.{lang}-{i}
	//				p.trans trans-{lang}-{k}
	//				table.footnotes > tbody > tr.footnote > td.fn-id, td
	//			div.notes > p.note

	r := renderer{opt: opt, tags: make(map[string]struct{})}
	root := el("div", "display")
	for _, ln := range tree.Lines {
		root.Add(r.line(ln))
	}

	m := Markup{Root: root, Tags: make([]string, 0, len(r.tags))}
	for t := range r.tags {
		m.Tags = append(m.Tags, t)
	}
	sort.Strings(m.Tags)
	return m
}

func (r *renderer) tag(n *Node, tags ...string) *Node {
	for _, t := range tags {
		r.tags[t] = struct{}{}
	}
	return n.Tag(tags...)
}

func (r *renderer) line(ln LineNode) *Node {
	n := el("div", "line").Set("data-line", fmt.Sprintf("%d", ln.Index))
	for _, lg := range ln.Langs {
		n.Add(r.lang(lg))
	}

	if r.opt.WithFootnotes && len(ln.Notes) > 0 {
		nb := el("div", "notes")
		for _, nt := range ln.Notes {
			p := el("p")
			p.Text = Ref{Kind: RefNote, ID: nt.ID}.Marker() + " " + nt.Text
			nb.Add(r.tag(p, vv.TAGNOTE))
		}
		n.Add(nb)
	}
	return n
}

func (r *renderer) lang(lg LangNode) *Node {
	n := r.tag(el("div", "lang-line"), LangTag(lg.Lang))
	for _, w := range lg.Words {
		n.Add(r.word(lg.Lang, w))
	}
	for _, t := range lg.Trans {
		n.Add(r.trans(lg.Lang, t))
	}

	if r.opt.WithFootnotes && len(lg.Footnotes) > 0 {
		tb := el("tbody")
		for _, fn := range lg.Footnotes {
			body := el("td", "fn-body")
			for _, w := range fn.Words {
				body.Add(r.word(lg.Lang, w))
			}
			for _, t := range fn.Trans {
				body.Add(r.trans(lg.Lang, t))
			}
			id := el("td", "fn-id")
			id.Text = Ref{Kind: RefFootnote, ID: fn.ID}.Marker()
			tb.Add(r.tag(el("tr"), vv.TAGFOOTNOTE).Add(id, body))
		}
		n.Add(el("table", "footnotes").Add(tb))
	}
	return n
}

func (r *renderer) word(lang string, w WordNode) *Node {
	n := el("div", "word")

	if r.opt.WithFootnotes && len(w.Refs) > 0 {
		mk := make([]string, len(w.Refs))
		for i, ref := range w.Refs {
			mk[i] = ref.Marker()
		}
		p := el("p", "ref")
		p.Text = strings.Join(mk, "")
		n.Add(p)
	}

	for _, t := range w.Tiers {
		switch t.Kind {
		case TierMorph:
			tb := el("tbody")
			for j, row := range t.Rows {
				tr := r.tag(el("tr"), RowTag(lang, t.Index, j))
				for _, c := range row {
					td := el("td")
					if c.Abbrev {
						td.Class = append(td.Class, vv.SMALLCAPS)
					}
					td.Text = c.Text
					tr.Add(td)
				}
				tb.Add(tr)
			}
			n.Add(el("table", "morphs").Add(tb))
		default:
			p := r.tag(el("p"), TierTag(lang, t.Index))
			for _, c := range t.Segments {
				if c.Abbrev {
					sp := el("span", vv.SMALLCAPS)
					sp.Text = c.Text
					p.Add(sp)
				} else {
					p.Add(txt(c.Text))
				}
			}
			n.Add(p)
		}
	}
	return n
}

func (r *renderer) trans(lang string, t TransNode) *Node {
	p := r.tag(el("p", vv.TAGTRANS), TransTag(lang, t.Index))
	p.Text = t.Text
	return p
}
