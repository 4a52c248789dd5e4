//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"sort"
)

// ColumnIndex - authoring column n (counting from 1 across every declared label) ==> tier index and
// table row; row is -1 for a simple tier; ok is false if the language has no such column
func ColumnIndex(ls str.LangSchema, col int) (tier int, row int, ok bool) {
	n := 0
	for t, decl := range ls.Lines {
		if decl.Type == vv.TIERMORPH {
			for r := range decl.Labels {
				n++
				if n == col {
					return t, r, true
				}
			}
			continue
		}
		n++
		if n == col {
			return t, -1, true
		}
	}
	return -1, -1, false
}

// firstcolumn - the authoring column of a tier's first row
func firstcolumn(ls str.LangSchema, tier int) int {
	n := 1
	for t := 0; t < tier && t < len(ls.Lines); t++ {
		if ls.Lines[t].Type == vv.TIERMORPH {
			n += len(ls.Lines[t].Labels)
		} else {
			n++
		}
	}
	return n
}

// eachword - every word of a language, footnote words included
func eachword(doc *str.Document, lang string, fn func(w *str.Word)) {
	for i := range doc.Sents {
		blob, ok := doc.Sents[i].Blobs[lang]
		if !ok {
			continue
		}
		for j := range blob.Words {
			fn(&blob.Words[j])
		}
		for _, k := range sortedfootnotes(blob.Footnotes) {
			fb := blob.Footnotes[k]
			for j := range fb.Words {
				fn(&fb.Words[j])
			}
		}
	}
}

func sortedfootnotes(m map[string]str.LineBlob) []string {
	kk := make([]string, 0, len(m))
	for k := range m {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}

// ApplyDicts - fill empty cells of each dictionary's target row from its source row; returns the number of cells filled
func ApplyDicts(doc *str.Document) int {
	filled := 0
	for _, d := range doc.Dicts {
		filled += applydict(doc, d)
	}
	return filled
}

func applydict(doc *str.Document, d str.AutoDict) int {
	ls, ok := doc.Langs[d.Lang]
	if !ok {
		return 0
	}
	st, sr, ok1 := ColumnIndex(ls, d.Source)
	tt, tr, ok2 := ColumnIndex(ls, d.Target)

	// only rows of the same morph tier line up cell for cell
	if !ok1 || !ok2 || st != tt || sr == -1 || tr == -1 {
		return 0
	}

	filled := 0
	eachword(doc, d.Lang, func(w *str.Word) {
		if st >= len(w.Lines) || !w.Lines[st].IsTable() {
			return
		}
		tbl := w.Lines[st].Table
		if sr >= len(tbl) || tr >= len(tbl) {
			return
		}
		src, trg := tbl[sr], tbl[tr]
		for c := range src {
			if c >= len(trg) {
				break
			}
			if src[c] == "" || trg[c] != "" {
				continue
			}
			if v := d.Data[src[c]]; v != "" {
				trg[c] = v
				filled++
			}
		}
	})
	return filled
}
