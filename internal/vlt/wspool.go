//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/gorilla/websocket"
	"strings"
)

//
// WEBSOCKET INFRASTRUCTURE: the browser end of the toggle bus
//

// WSClient - one open page; ID is the session, Doc the document on display
type WSClient struct {
	ID   string
	Doc  string
	Conn *websocket.Conn
	Pool *WSPool
}

// WSPool - every open page; only the pool's own loop writes to the connections
type WSPool struct {
	Add       chan *WSClient
	Remove    chan *WSClient
	ClientMap map[*WSClient]bool
	JSO       chan *WSJSOut
}

// WSJSOut - a toggle reply addressed to every page a session has open on a document
type WSJSOut struct {
	ID    string
	Reply ToggleReply
}

// ReadToggles - one tag per message until the page goes away or the event budget runs out; returns the event count
func (c *WSClient) ReadToggles(g *GlossedDoc, sv *SessionVault) int {
	const (
		FAIL = `WSClient.ReadToggles() closing '%s': %s`
		DONE = `WSClient.ReadToggles() '%s' reached %d events`
	)

	c.Conn.SetReadLimit(vv.WSREADLIMIT)

	n := 0
	for n < vv.MAXTOGGLEEVENTSPERCONN {
		_, m, err := c.Conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				Msg.TMI(fmt.Sprintf(FAIL, c.ID, err.Error()))
			}
			return n
		}

		tag := strings.Trim(strings.TrimSpace(string(m)), `"`)
		if tag == "" {
			continue
		}

		c.Pool.JSO <- &WSJSOut{ID: c.ID, Reply: sv.Toggle(c.ID, g, tag)}
		n++
	}
	Msg.PEEK(fmt.Sprintf(DONE, c.ID, n))
	return n
}

// WSPoolStartListening - the WSPool will listen for activity on its various channels (only called once at launch)
func (pool *WSPool) WSPoolStartListening() {
	const (
		MSG1 = "WSPool client failed on WriteMessage()"
		MSG2 = "WSPool: %d page(s) open"
	)

	writemsg := func(jso *WSJSOut) {
		js, err := json.Marshal(jso.Reply)
		if err != nil {
			Msg.WARN(err.Error())
			return
		}
		for cl := range pool.ClientMap {
			if cl.ID != jso.ID || cl.Doc != jso.Reply.Doc {
				continue
			}
			if e := cl.Conn.WriteMessage(websocket.TextMessage, js); e != nil {
				Msg.WARN(MSG1)
				delete(pool.ClientMap, cl)
			}
		}
	}

	for {
		select {
		case cl := <-pool.Add:
			pool.ClientMap[cl] = true
			Msg.TMI(fmt.Sprintf(MSG2, len(pool.ClientMap)))
		case cl := <-pool.Remove:
			delete(pool.ClientMap, cl)
		case wrt := <-pool.JSO:
			writemsg(wrt)
		}
	}
}

// WSFillNewPool - build a new WSPool (one and only one built at app startup)
func WSFillNewPool() *WSPool {
	return &WSPool{
		Add:       make(chan *WSClient),
		Remove:    make(chan *WSClient),
		ClientMap: make(map[*WSClient]bool),
		JSO:       make(chan *WSJSOut),
	}
}
