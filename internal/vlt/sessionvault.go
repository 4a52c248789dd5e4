//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"sync"
	"time"
)

// ServerSession - one browser; toggle state lives only as long as the server does
type ServerSession struct {
	ID       string
	Launched time.Time
	Seen     time.Time
	Views    map[string]*DocState
}

// DocState - a session's on/off state for one document; the document's own Index answers visibility
type DocState struct {
	Engine *gls.Engine
	Events int
}

// ToggleReply - what the browser hears after a toggle event
type ToggleReply struct {
	Doc    string   `json:"doc"`
	Tag    string   `json:"tag"`
	On     bool     `json:"on"`
	Known  bool     `json:"known"`
	Hidden []string `json:"hidden"`
}

// MakeDefaultSession - fill in the blanks when setting up a new session
func MakeDefaultSession(id string) *ServerSession {
	// note that the vault clears every time the server restarts
	now := time.Now()
	return &ServerSession{
		ID:       id,
		Launched: now,
		Seen:     now,
		Views:    make(map[string]*DocState),
	}
}

func newdocstate(g *GlossedDoc) *DocState {
	return &DocState{Engine: gls.NewEngine(g.Controls)}
}

func (ds *DocState) reply(doc string, tag string, on bool, known bool) ToggleReply {
	r := ToggleReply{Doc: doc, Tag: tag, On: on, Known: known, Hidden: ds.Engine.Hidden()}
	if r.Hidden == nil {
		r.Hidden = []string{}
	}
	return r
}

//
// THREAD SAFE INFRASTRUCTURE: MUTEX
//

// MakeSessionVault - called only once; yields the AllSessions vault
func MakeSessionVault() SessionVault {
	return SessionVault{
		SessionMap: make(map[string]*ServerSession),
		mutex:      sync.RWMutex{},
	}
}

// SessionVault - every session; its mutex is what serializes toggle events against the engines
type SessionVault struct {
	SessionMap map[string]*ServerSession
	mutex      sync.RWMutex
}

func (sv *SessionVault) InsertSess(s *ServerSession) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	sv.SessionMap[s.ID] = s
}

func (sv *SessionVault) Delete(id string) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	delete(sv.SessionMap, id)
}

func (sv *SessionVault) IsInVault(id string) bool {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	_, b := sv.SessionMap[id]
	return b
}

func (sv *SessionVault) Count() int {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	return len(sv.SessionMap)
}

// session - caller holds the write lock; counts as activity
func (sv *SessionVault) session(id string) *ServerSession {
	s, ok := sv.SessionMap[id]
	if !ok {
		s = MakeDefaultSession(id)
		sv.SessionMap[id] = s
	}
	s.Seen = time.Now()
	return s
}

// Touch - note activity on a session, creating it if need be
func (sv *SessionVault) Touch(id string) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	sv.session(id)
}

// OpenDoc - a page load: a fresh engine with every control on
func (sv *SessionVault) OpenDoc(id string, g *GlossedDoc) ToggleReply {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	ds := newdocstate(g)
	sv.session(id).Views[g.Doc.Name] = ds
	return ds.reply(g.Doc.Name, "", true, false)
}

// Toggle - flip one tag in the session's engine for this document; unknown tags change nothing
func (sv *SessionVault) Toggle(id string, g *GlossedDoc, tag string) ToggleReply {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	s := sv.session(id)
	ds, ok := s.Views[g.Doc.Name]
	if !ok {
		ds = newdocstate(g)
		s.Views[g.Doc.Name] = ds
	}
	ds.Events++
	on, known := ds.Engine.Toggle(tag)
	return ds.reply(g.Doc.Name, tag, on, known)
}

// Hidden - the tags a session has switched off in a document; nothing if it never opened it
func (sv *SessionVault) Hidden(id string, doc string) []string {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	s, ok := sv.SessionMap[id]
	if !ok {
		return nil
	}
	if ds, ok := s.Views[doc]; ok {
		return ds.Engine.Hidden()
	}
	return nil
}

// Visible - is this node of the document's markup currently shown to the session
func (sv *SessionVault) Visible(id string, g *GlossedDoc, n *gls.Node) bool {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	s, ok := sv.SessionMap[id]
	if !ok {
		return true
	}
	ds, ok := s.Views[g.Doc.Name]
	if !ok {
		return true
	}
	return g.Index.Visible(ds.Engine, n)
}

// Sweep - forget sessions with no activity since the cutoff; returns how many went
func (sv *SessionVault) Sweep(cutoff time.Time) int {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	gone := 0
	for id, s := range sv.SessionMap {
		if s.Seen.Before(cutoff) {
			delete(sv.SessionMap, id)
			gone++
		}
	}
	return gone
}
