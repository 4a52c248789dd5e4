//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"sort"
	"strings"
)

// Unglossed - morphemes present in authoring column From whose cell in column To is empty
type Unglossed struct {
	Lang   string
	Name   string
	From   int
	To     int
	Morphs []string
}

func (u Unglossed) String() string {
	return fmt.Sprintf("Entries on line %d without corresponding entry on line %d: %s", u.From, u.To, strings.Join(u.Morphs, " "))
}

// FindUnglossed - every half-glossed morpheme in the document, grouped by language and column pair
func FindUnglossed(doc *str.Document) []Unglossed {
	langs := gen.Unique(append(append([]string{}, doc.Order...), gen.SortedKeys(doc.Langs)...))

	var found []Unglossed
	for _, lang := range langs {
		ls, ok := doc.Langs[lang]
		if !ok {
			continue
		}

		miss := make(map[[2]int]map[string]struct{})
		eachword(doc, lang, func(w *str.Word) {
			for t, tr := range w.Lines {
				if !tr.IsTable() {
					continue
				}
				base := firstcolumn(ls, t)
				width := 0
				for _, row := range tr.Table {
					width = max(width, len(row))
				}
				for c := 0; c < width; c++ {
					cells := make([]string, len(tr.Table))
					complete := true
					for r, row := range tr.Table {
						if c < len(row) {
							cells[r] = row[c]
						}
						if cells[r] == "" {
							complete = false
						}
					}
					if complete {
						continue
					}
					for i := range cells {
						if cells[i] == "" {
							continue
						}
						for j := range cells {
							if i == j || cells[j] != "" {
								continue
							}
							k := [2]int{base + i, base + j}
							if miss[k] == nil {
								miss[k] = make(map[string]struct{})
							}
							miss[k][cells[i]] = struct{}{}
						}
					}
				}
			}
		})

		keys := make([][2]int, 0, len(miss))
		for k := range miss {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i][0] != keys[j][0] {
				return keys[i][0] < keys[j][0]
			}
			return keys[i][1] < keys[j][1]
		})

		name := ls.Name
		if name == "" {
			name = lang
		}
		for _, k := range keys {
			found = append(found, Unglossed{Lang: lang, Name: name, From: k[0], To: k[1], Morphs: gen.SortedKeys(miss[k])})
		}
	}
	return found
}
