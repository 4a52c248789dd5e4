//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/lnch"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"strings"
	"time"
)

var (
	Msg = lnch.NewMessageMakerWithDefaults()
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer() {
	e := NewEcho()

	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR

	// see "policerequestandresponse.go" and "wspool.go" in vlt
	go vlt.Police.Patrol()
	go vlt.WebsocketPool.WSPoolStartListening()
	go sweepsessions(vv.SESSIONSWEEP, vv.SESSIONIDLE)

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", lnch.Config.HostIP, lnch.Config.HostPort)))
}

// sweepsessions - drop the toggle state of every session idle for longer than "idle"; a returning cookie starts afresh
func sweepsessions(every time.Duration, idle time.Duration) {
	for {
		time.Sleep(every)
		if n := vlt.AllSessions.Sweep(time.Now().Add(-idle)); n > 0 {
			Msg.PEEK(fmt.Sprintf("sweepsessions(): %d session(s) dropped; %d remain", n, vlt.AllSessions.Count()))
		}
	}
}

// NewEcho - the middleware and every route; the hubs the routes talk to are started by the caller
func NewEcho() *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		last := ua[len(ua)-1]
		return buf.Write([]byte(last))
	}

	//
	// SETUP
	//

	e := echo.New()

	e.Use(vlt.Police.Middleware)

	switch lnch.Config.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if lnch.Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// MULTIGLOSS ROUTES
	//

	// [a] frontpage ("rt-frontpage.go")

	e.GET("/", RtFrontpage)

	// [b] documents ("rt-gloss.go")

	e.GET("/gloss/:doc", RtGlossPage)      // "u: /gloss/odyssey"
	e.GET("/gloss/json/:doc", RtGlossJSON) // "u: /gloss/json/odyssey"
	e.GET("/toggle/:doc/:tag", RtToggle)   // "u: /toggle/odyssey/grc-0-1"
	e.GET("/stats/:doc", RtStats)          // "u: /stats/odyssey" ("rt-stats.go")
	e.GET("/ws/:doc", RtWebsocket)         // "rt-websocket.go"

	// [c] css and js ("rt-embedding.go")

	e.GET("/emb/css/multigloss.css", RtEmbCSS)
	e.GET("/emb/js/multigloss.js", RtEmbJS)

	return e
}
