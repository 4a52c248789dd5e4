//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/lnch"
	"github.com/e-gun/MultiGlossServer/internal/mm"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/labstack/echo/v4"
	"html"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"text/template"
	"time"
)

//
// ROUTING
//

// RtFrontpage - send the html for "/": every document plus the uptime and route counters
func RtFrontpage(c echo.Context) error {
	const (
		UPSTR    = "[%v] MGS uptime: %v [%s]"
		PADDING  = " ----------------- "
		STATTMPL = "%s: %d"
		RESPTMPL = "responses: 200=%d 403=%d 404=%d 500=%d other=%d; blacklisted: %d"
		SPACER   = "    "
	)

	ReadUUIDCookie(c)

	gc := lnch.GitCommit
	if gc == "" {
		gc = "UNKNOWN"
	}
	ver := fmt.Sprintf("Version: %s [git: %s] %s: %s - %s", vv.VERSION+lnch.VersSuppl, gc, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// t() will give the uptime
	var mem runtime.MemStats

	t := func(up time.Duration) string {
		runtime.ReadMemStats(&mem)
		heap := fmt.Sprintf("%dM", mem.HeapAlloc/1024/1024)
		tick := fmt.Sprintf(UPSTR, time.Now().Format(time.TimeOnly), up.Truncate(time.Minute), heap)
		return PADDING + tick + PADDING
	}

	// svd() will report what requests have been made

	//      ----------------- [13:29:41] MGS uptime: 1m0s [12M] -----------------
	//
	//    GlossPage: 5
	//    Toggle: 2

	svd := func() string {
		ctr := mm.PathCounts()
		keys := gen.SortedKeys(ctr)

		var pairs []string
		for _, k := range keys {
			this := strings.TrimPrefix(k, "Rt")
			this = strings.TrimSuffix(this, "()")
			pairs = append(pairs, fmt.Sprintf(SPACER+STATTMPL, this, ctr[k]))
		}
		rs := vlt.Police.Stats()
		pairs = append(pairs, "", SPACER+fmt.Sprintf(RESPTMPL, rs.TwoHundred, rs.FourOhThree, rs.FourOhFour, rs.FiveHundred, rs.Other, rs.Blacklisted))
		return strings.Join(pairs, "\n")
	}

	var docs []string
	for _, n := range vlt.AllDocs.Names() {
		g, _ := vlt.AllDocs.GetDoc(n)
		un := 0
		for _, u := range g.Unglossed {
			un += len(u.Morphs)
		}
		langs := make([]string, len(g.Doc.Order))
		for i, l := range g.Doc.Order {
			langs[i] = html.EscapeString(g.Doc.Langs[l].Name)
		}
		p := url.PathEscape(n)
		docs = append(docs, fmt.Sprintf(vv.FRONTPAGEDOC, p, html.EscapeString(g.Title()), len(g.Doc.Sents), strings.Join(langs, ", "), p, un))
	}

	subs := map[string]interface{}{
		"name":    vv.MYNAME,
		"docs":    strings.Join(docs, "\n"),
		"version": html.EscapeString(ver),
		"ticker":  html.EscapeString(t(time.Since(Msg.Lnc)) + "\n\n" + svd()),
	}

	var b bytes.Buffer
	if err := frontpage(&b, subs); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, b.String())
}

// frontpage - fill in FRONTPAGE; a failure belongs to this request and not to the server
func frontpage(w io.Writer, subs map[string]interface{}) error {
	tmpl, err := template.New("fp").Parse(vv.FRONTPAGE)
	if err != nil {
		return fmt.Errorf("frontpage(): %w", err)
	}
	if err = tmpl.Execute(w, subs); err != nil {
		return fmt.Errorf("frontpage(): %w", err)
	}
	return nil
}
