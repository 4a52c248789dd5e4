//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"html"
	"os"
	"text/template"
)

// GlossPage - title, control panel, and display; a live page talks to the server, an inline page carries its own CSS and JS
func GlossPage(g *vlt.GlossedDoc, cc *str.CurrentConfiguration, live bool) (string, error) {
	tmpl, err := template.New("page").Parse(vv.GLOSSPAGE)
	if err != nil {
		return "", err
	}

	lv := "no"
	if live {
		lv = "yes"
	}

	subs := map[string]interface{}{
		"title":    html.EscapeString(g.Title()),
		"doc":      html.EscapeString(g.Doc.Name),
		"live":     lv,
		"inline":   !live,
		"controls": g.Controls.Node().HTML(),
		"display":  g.HTML(),
	}
	if !live {
		css, e := StyleSheet(cc)
		if e != nil {
			return "", e
		}
		subs["css"] = css
		subs["js"] = vv.MULTIGLOSSJS
	}

	var b bytes.Buffer
	if err = tmpl.Execute(&b, subs); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ExportPage - write one self-contained page that needs no server
func ExportPage(path string, g *vlt.GlossedDoc, cc *str.CurrentConfiguration) error {
	p, err := GlossPage(g, cc, false)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(p), vv.WRITEPERMS)
}
