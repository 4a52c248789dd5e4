//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var (
	Upgrader = websocket.Upgrader{}
)

//
// THE ROUTE
//

// RtWebsocket - the toggle bus for one open page: tags in, ToggleReply JSON out
func RtWebsocket(c echo.Context) error {
	const (
		FAILCON = "RtWebsocket(): ws connection failed"
		CLOSED  = "RtWebsocket(): '%s' closed after %d toggle(s)"
	)

	user := ReadUUIDCookie(c)
	g, err := docparam(c)
	if err != nil {
		return err
	}

	ws, err := Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		Msg.NOTE(FAILCON)
		return nil
	}
	defer ws.Close()

	cl := &vlt.WSClient{
		ID:   user,
		Doc:  g.Doc.Name,
		Conn: ws,
		Pool: vlt.WebsocketPool,
	}

	vlt.WebsocketPool.Add <- cl
	n := cl.ReadToggles(g, &vlt.AllSessions)
	vlt.WebsocketPool.Remove <- cl
	Msg.TMI(fmt.Sprintf(CLOSED, g.Doc.Name, n))
	return nil
}
