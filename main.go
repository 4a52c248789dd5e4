//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"github.com/e-gun/MultiGlossServer/internal/ldr"
	"github.com/e-gun/MultiGlossServer/internal/lnch"
	"github.com/e-gun/MultiGlossServer/internal/mm"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/e-gun/MultiGlossServer/web"
	"github.com/pkg/profile"
	"time"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

func main() {
	// go tool pprof --pdf ./MultiGlossServer /var/folders/d8/.../cpu.pprof > profile.pdf

	//
	// [1] CONFIGURATION
	//

	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	lnch.ConfigAtLaunch()

	for _, m := range []*mm.MessageMaker{lnch.Msg, vlt.Msg, web.Msg} {
		lnch.UpdateMessageMakerWithConfig(m)
	}
	msg := lnch.Msg
	cfg := lnch.Config

	// ApplyArgs() refuses "-pc" with "-pm"
	switch {
	case cfg.ProfileCPU:
		defer profile.Start().Stop()
	case cfg.ProfileMEM:
		defer profile.Start(profile.MemProfile).Stop()
	}

	if !cfg.QuietStart {
		lnch.PrintVersion(*cfg)
		lnch.PrintBuildInfo(*cfg)
		msg.MAND(fmt.Sprintf(vv.TERMINALTEXT, vv.PROJYEAR, vv.PROJAUTH, vv.PROJMAIL))
	}

	go mm.PathInfoHub()

	//
	// [2] DOCUMENTS
	//

	start := time.Now()
	previous := time.Now()

	docs, err := ldr.LoadAll(context.Background(), *cfg)
	msg.EC(err)
	msg.Timer("A1", fmt.Sprintf("%d document(s) loaded", len(docs)), start, previous)

	if len(docs) == 0 {
		msg.CRIT(fmt.Sprintf("no documents found: looked in '%s', %d file(s), and the stores", cfg.DocDir, len(cfg.Docs)))
	}

	previous = time.Now()
	opt := gls.RenderOptions{WithFootnotes: cfg.Footnotes}
	for _, d := range docs {
		g, e := vlt.GlossDocument(d, opt)
		msg.EC(e)
		vlt.AllDocs.InsertDoc(g)
		msg.FYI(fmt.Sprintf("loaded '%s' (%d lines; %d languages)", d.Name, len(d.Sents), len(d.Order)))
	}
	msg.Timer("A2", fmt.Sprintf("%d document(s) rendered", vlt.AllDocs.Count()), start, previous)

	if cfg.WarnMorphs {
		warnmorphs()
	}

	//
	// [3] ONE-SHOT MODES
	//

	if cfg.StoreTo != "" {
		storedocs(cfg, docs)
		return
	}

	if cfg.Export != "" {
		exportfirst(cfg, docs)
		return
	}

	//
	// [4] SERVE
	//

	go msg.Ticker(vv.TICKERDELAY)

	msg.MAND(fmt.Sprintf("serving %d document(s) at http://%s:%d/", vlt.AllDocs.Count(), cfg.HostIP, cfg.HostPort))
	web.StartEchoServer()
}

// warnmorphs - the "-wm" report: every morpheme with no counterpart on a sibling line
func warnmorphs() {
	for _, n := range vlt.AllDocs.Names() {
		g, _ := vlt.AllDocs.GetDoc(n)
		for _, u := range g.Unglossed {
			lnch.Msg.WARN(fmt.Sprintf("[%s] %s (%s): %s", n, u.Lang, u.Name, u.String()))
		}
	}
}

// storedocs - the "-ss" mode: copy everything that was loaded into a SQLite store
func storedocs(cfg *str.CurrentConfiguration, docs []*str.Document) {
	db, err := ldr.OpenSQLite(cfg.StoreTo)
	lnch.Msg.EC(err)
	defer db.Close()
	lnch.Msg.EF(ldr.StoreSQLite(context.Background(), db, docs...), "storedocs()")
	lnch.Msg.MAND(fmt.Sprintf("%d document(s) stored in '%s'", len(docs), cfg.StoreTo))
}

// exportfirst - the "-ex" mode: the first document by name becomes a page that needs no server
func exportfirst(cfg *str.CurrentConfiguration, docs []*str.Document) {
	if len(docs) == 0 {
		lnch.Msg.EC(fmt.Errorf("nothing to export to '%s'", cfg.Export))
	}
	g, _ := vlt.AllDocs.GetDoc(docs[0].Name)
	lnch.Msg.EC(web.ExportPage(cfg.Export, g, cfg))
	lnch.Msg.MAND(fmt.Sprintf("'%s' written to '%s'", docs[0].Name, cfg.Export))
}
