//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"github.com/e-gun/MultiGlossServer/internal/lnch"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/labstack/echo/v4"
	"net/http"
	"net/url"
)

// GlossJSON - what "/gloss/json/:doc" sends
type GlossJSON struct {
	Doc      string         `json:"doc"`
	Title    string         `json:"title"`
	Display  string         `json:"display"`
	Controls gls.ControlSet `json:"controls"`
	Tags     []string       `json:"tags"`
	Hidden   []string       `json:"hidden"`
}

//
// ROUTING
//

// RtGlossPage - the document with its control panel; a page load starts the session's engine over
func RtGlossPage(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtGlossPage()") })

	user := ReadUUIDCookie(c)
	g, err := docparam(c)
	if err != nil {
		return err
	}

	vlt.AllSessions.OpenDoc(user, g)

	p, err := GlossPage(g, lnch.Config, true)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, p)
}

// RtGlossJSON - the rendered display and the panel as data; the session's toggles are left alone
func RtGlossJSON(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtGlossJSON()") })

	user := ReadUUIDCookie(c)
	g, err := docparam(c)
	if err != nil {
		return err
	}

	hidden := vlt.AllSessions.Hidden(user, g.Doc.Name)
	if hidden == nil {
		hidden = []string{}
	}

	jso := GlossJSON{
		Doc:      g.Doc.Name,
		Title:    g.Title(),
		Display:  g.HTML(),
		Controls: g.Controls,
		Tags:     g.Markup.Tags,
		Hidden:   hidden,
	}
	return gen.JSONresponse(c, jso)
}

// RtToggle - one toggle event over plain HTTP: "/toggle/odyssey/grc-0-1"
func RtToggle(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtToggle()") })

	user := ReadUUIDCookie(c)
	g, err := docparam(c)
	if err != nil {
		return err
	}

	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("bad tag '%s'", c.Param("tag")))
	}
	return gen.JSONresponse(c, vlt.AllSessions.Toggle(user, g, tag))
}

// docparam - the document named in the route, or a 404
func docparam(c echo.Context) (*vlt.GlossedDoc, error) {
	const (
		NF = "no such document: '%s'"
	)
	name, err := url.PathUnescape(c.Param("doc"))
	if err != nil {
		name = c.Param("doc")
	}
	g, ok := vlt.AllDocs.GetDoc(name)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(NF, name))
	}
	return g, nil
}
