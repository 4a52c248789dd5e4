//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"strconv"
)

// Control - one visibility toggle
type Control struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// ControlGroup - a language toggle followed by its tier and translation toggles
type ControlGroup struct {
	Lang  Control   `json:"lang"`
	Tiers []Control `json:"tiers"`
	Trans []Control `json:"trans"`
}

// ControlSet - the whole panel; Extras holds the footnote and note toggles
type ControlSet struct {
	Groups []ControlGroup `json:"groups"`
	Extras []Control      `json:"extras,omitempty"`
}

// BuildControls - one toggle for every tag the renderer can emit under this schema
func BuildControls(schema str.Schema, order []string, opt RenderOptions) ControlSet {
	var cs ControlSet
	for _, lang := range order {
		ls, ok := schema[lang]
		if !ok {
			continue
		}

		name := ls.Name
		if name == "" {
			name = lang
		}
		g := ControlGroup{Lang: Control{Tag: LangTag(lang), Label: name}}

		for i, decl := range ls.Lines {
			switch decl.Type {
			case vv.TIERMORPH:
				for j := range decl.Labels {
					g.Tiers = append(g.Tiers, Control{Tag: RowTag(lang, i, j), Label: label(decl.Labels, j, i)})
				}
			default:
				g.Tiers = append(g.Tiers, Control{Tag: TierTag(lang, i), Label: label(decl.Labels, 0, i)})
			}
		}

		for k, lb := range ls.Trans {
			g.Trans = append(g.Trans, Control{Tag: TransTag(lang, strconv.Itoa(k+1)), Label: lb})
		}
		cs.Groups = append(cs.Groups, g)
	}

	if opt.WithFootnotes {
		cs.Extras = []Control{
			{Tag: vv.TAGFOOTNOTE, Label: "footnotes"},
			{Tag: vv.TAGNOTE, Label: "notes"},
		}
	}
	return cs
}

func label(labels []string, j int, tier int) string {
	if j < len(labels) && labels[j] != "" {
		return labels[j]
	}
	return fmt.Sprintf("tier %d", tier+1)
}

// Tags - every control tag in panel order
func (cs ControlSet) Tags() []string {
	var tt []string
	cs.each(func(c Control) { tt = append(tt, c.Tag) })
	return tt
}

func (cs ControlSet) each(fn func(c Control)) {
	for _, g := range cs.Groups {
		fn(g.Lang)
		for _, c := range g.Tiers {
			fn(c)
		}
		for _, c := range g.Trans {
			fn(c)
		}
	}
	for _, c := range cs.Extras {
		fn(c)
	}
}

// Node - the panel as checkboxes; every box starts checked and names its tag in data-tag
func (cs ControlSet) Node() *Node {
	box := func(c Control) *Node {
		in := el("input").Set("type", "checkbox").Set("checked", "").Set("data-tag", c.Tag)
		return el("label", "control").Add(in, txt(c.Label))
	}

	panel := el("div", "controls")
	for _, g := range cs.Groups {
		gp := el("div", "control-group").Add(box(g.Lang))
		sub := el("div", "control-tiers")
		for _, c := range g.Tiers {
			sub.Add(box(c))
		}
		for _, c := range g.Trans {
			sub.Add(box(c))
		}
		panel.Add(gp.Add(sub))
	}

	if len(cs.Extras) > 0 {
		ex := el("div", "control-group")
		for _, c := range cs.Extras {
			ex.Add(box(c))
		}
		panel.Add(ex)
	}
	return panel
}
