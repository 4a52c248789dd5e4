//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
	"strings"
)

//
// RESPONSE POLICING: count response codes; an address that keeps asking for things that are not there gets refused
//

const (
	FAILSALLOWED = 8
)

// ResponseStats - a copy of the counters
type ResponseStats struct {
	TwoHundred  uint64
	FourOhThree uint64
	FourOhFour  uint64
	FiveHundred uint64
	Other       uint64
	Blacklisted int
}

type blrd struct {
	ip   string
	resp chan bool
}

type stwr struct {
	code int
	ip   string
	uri  string
}

// ResponsePolice - one goroutine owns the strike counts and the blacklist; see Patrol()
type ResponsePolice struct {
	rd    chan blrd
	wr    chan stwr
	stats chan chan ResponseStats
}

func NewResponsePolice() *ResponsePolice {
	return &ResponsePolice{
		rd:    make(chan blrd),
		wr:    make(chan stwr),
		stats: make(chan chan ResponseStats),
	}
}

// Patrol - the keeper loop; it never exits
func (rp *ResponsePolice) Patrol() {
	const (
		BLACK0 = `IP address %s was blacklisted after %d strikes; %d address(es) on the blacklist`
		STRIKE = `IP address %s received a strike: %d for URI "%s"`
	)

	var st ResponseStats
	strikes := make(map[string]int)
	blacklist := make(map[string]struct{})

	strike := func(w stwr) {
		strikes[w.ip]++
		Msg.PEEK(fmt.Sprintf(STRIKE, w.ip, w.code, w.uri))
		if strikes[w.ip] >= FAILSALLOWED {
			if _, done := blacklist[w.ip]; !done {
				blacklist[w.ip] = struct{}{}
				Msg.NOTE(fmt.Sprintf(BLACK0, w.ip, strikes[w.ip], len(blacklist)))
			}
		}
	}

	for {
		select {
		case r := <-rp.rd:
			_, bad := blacklist[r.ip]
			r.resp <- !bad
		case w := <-rp.wr:
			switch w.code {
			case http.StatusOK:
				st.TwoHundred++
			case http.StatusForbidden:
				st.FourOhThree++
			case http.StatusNotFound:
				st.FourOhFour++
				strike(w)
			case http.StatusInternalServerError:
				st.FiveHundred++
			default:
				// 101 from the websocket, 304, ...
				st.Other++
			}
		case req := <-rp.stats:
			cp := st
			cp.Blacklisted = len(blacklist)
			req <- cp
		}
	}
}

// Allowed - is this address still welcome
func (rp *ResponsePolice) Allowed(ip string) bool {
	r := blrd{ip: ip, resp: make(chan bool)}
	rp.rd <- r
	return <-r.resp
}

// Stats - a snapshot of the counters
func (rp *ResponsePolice) Stats() ResponseStats {
	req := make(chan ResponseStats)
	rp.stats <- req
	return <-req
}

// Middleware - an echo.MiddlewareFunc; the keeper must already be patrolling
func (rp *ResponsePolice) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	const (
		BLACK = `IP address %s was blacklisted: too many previous Response code errors`
	)

	return func(c echo.Context) error {
		ip := c.RealIP()
		uri := c.Request().RequestURI

		// is something like 'http://journalseek.net/' in the request?
		if strings.HasPrefix(uri, "http:") || strings.HasPrefix(uri, "https:") || !rp.Allowed(ip) {
			rp.wr <- stwr{code: http.StatusForbidden, ip: ip, uri: uri}
			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf(BLACK, ip))
		}

		// do this before reading c.Response().Status or you will always get "200"
		if err := next(c); err != nil {
			c.Error(err)
		}
		rp.wr <- stwr{code: c.Response().Status, ip: ip, uri: uri}
		return nil
	}
}
