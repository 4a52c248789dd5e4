//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/vlt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"net/http"
	"time"
)

const (
	COOKIENAME = "ID"
	COOKIELIFE = 4800 * time.Hour
)

// ReadUUIDCookie - find the ID of the client; a client without one, or with one that is not a uuid, gets a new one
func ReadUUIDCookie(c echo.Context) string {
	cookie, err := c.Cookie(COOKIENAME)
	if err != nil {
		return writeUUIDCookie(c)
	}

	if _, err = uuid.Parse(cookie.Value); err != nil {
		return writeUUIDCookie(c)
	}

	vlt.AllSessions.Touch(cookie.Value)
	return cookie.Value
}

// writeUUIDCookie - set the ID of the client
func writeUUIDCookie(c echo.Context) string {
	cookie := new(http.Cookie)
	cookie.Name = COOKIENAME
	cookie.Path = "/"
	cookie.Value = uuid.New().String()
	cookie.Expires = time.Now().Add(COOKIELIFE)
	cookie.HttpOnly = true
	c.SetCookie(cookie)
	vlt.AllSessions.InsertSess(vlt.MakeDefaultSession(cookie.Value))
	Msg.TMI(fmt.Sprintf("writeUUIDCookie() - new ID set: %s", cookie.Value))
	return cookie.Value
}
