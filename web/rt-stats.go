//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/ldr"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
)

const (
	CHRTWIDTH  = "960px"
	CHRTHEIGHT = "540px"
)

//
// ROUTING
//

// RtStats - a bar chart of the morphemes that lack a gloss; "?format=json" sends the report itself
func RtStats(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtStats()") })

	g, err := docparam(c)
	if err != nil {
		return err
	}

	if c.QueryParam("format") == "json" {
		ug := g.Unglossed
		if ug == nil {
			ug = []ldr.Unglossed{}
		}
		return gen.JSONresponse(c, ug)
	}

	var b bytes.Buffer
	if err = UnglossedChart(&b, g); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, b.String())
}

// UnglossedChart - one bar per language and pair of morph lines
func UnglossedChart(w io.Writer, g *vlt.GlossedDoc) error {
	const (
		TITLE = "Unglossed morphemes: %s"
		SUB   = "%d morpheme(s) on %d pair(s) of lines"
		XLAB  = "%s %d→%d"
		SERS  = "unglossed"
	)

	var (
		xx    []string
		bars  []opts.BarData
		total int
	)

	for _, u := range g.Unglossed {
		xx = append(xx, fmt.Sprintf(XLAB, u.Lang, u.From, u.To))
		bars = append(bars, opts.BarData{Name: u.String(), Value: len(u.Morphs)})
		total += len(u.Morphs)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: g.Title(), Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLE, g.Title()), Subtitle: fmt.Sprintf(SUB, total, len(g.Unglossed))}),
	)
	bar.SetXAxis(xx).AddSeries(SERS, bars)
	return bar.Render(w)
}
