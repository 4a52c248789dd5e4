//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

//
// THE TOGGLE BUS
//

// Subscriber - told whenever the tag it subscribed to changes state
type Subscriber func(tag string, on bool)

// Bus - tag ==> subscribers; it knows nothing about where toggle events come from
type Bus struct {
	subs map[string][]Subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]Subscriber)}
}

func (b *Bus) Subscribe(tag string, s Subscriber) {
	b.subs[tag] = append(b.subs[tag], s)
}

// Publish - notify every subscriber of the tag; returns how many were told
func (b *Bus) Publish(tag string, on bool) int {
	for _, s := range b.subs[tag] {
		s(tag, on)
	}
	return len(b.subs[tag])
}

//
// THE ENGINE
//

// Engine - the on/off state of every control tag. Not safe for concurrent use: callers serialize toggle events.
type Engine struct {
	order []string
	on    map[string]bool
	bus   *Bus
}

// NewEngine - every control starts out on
func NewEngine(cs ControlSet) *Engine {
	e := &Engine{on: make(map[string]bool), bus: NewBus()}
	for _, t := range cs.Tags() {
		if _, dup := e.on[t]; dup {
			continue
		}
		e.order = append(e.order, t)
		e.on[t] = true
	}
	return e
}

func (e *Engine) Bus() *Bus { return e.bus }

// Known - does some control govern this tag
func (e *Engine) Known(tag string) bool {
	_, ok := e.on[tag]
	return ok
}

// On - a tag no control governs can never be off
func (e *Engine) On(tag string) bool {
	on, ok := e.on[tag]
	return !ok || on
}

// Toggle - flip one tag; an unknown tag is a no-op and reports ok == false
func (e *Engine) Toggle(tag string) (on bool, ok bool) {
	if !e.Known(tag) {
		return true, false
	}
	e.Set(tag, !e.on[tag])
	return e.on[tag], true
}

// Set - force a tag on or off; subscribers hear about it only if the state changed
func (e *Engine) Set(tag string, on bool) bool {
	was, ok := e.on[tag]
	if !ok {
		return false
	}
	if was != on {
		e.on[tag] = on
		e.bus.Publish(tag, on)
	}
	return true
}

// Hidden - the tags currently off, in panel order
func (e *Engine) Hidden() []string {
	var hh []string
	for _, t := range e.order {
		if !e.on[t] {
			hh = append(hh, t)
		}
	}
	return hh
}

// Reset - everything back on, as after a reload
func (e *Engine) Reset() {
	for _, t := range e.order {
		e.Set(t, true)
	}
}

//
// INDEX AND BOUND VIEWS
//

// Index - who contains whom in a rendered tree and which nodes carry each tag.
// Built once per tree; any number of engines may read it at the same time.
type Index struct {
	root   *Node
	parent map[*Node]*Node
	units  map[string][]*Node
}

func NewIndex(root *Node) *Index {
	x := &Index{
		root:   root,
		parent: make(map[*Node]*Node),
		units:  make(map[string][]*Node),
	}
	root.Walk(func(n *Node, p *Node) {
		x.parent[n] = p
		for _, t := range n.Tags {
			x.units[t] = append(x.units[t], n)
		}
	})
	return x
}

// Units - the nodes carrying a tag, in document order
func (x *Index) Units(tag string) []*Node {
	return x.units[tag]
}

// Visible - asks the engine directly; nothing is cached per engine
func (x *Index) Visible(e *Engine, n *Node) bool {
	for c := n; c != nil; c = x.parent[c] {
		for _, t := range c.Tags {
			if !e.On(t) {
				return false
			}
		}
	}
	return true
}

// View - the visibility of one rendered tree under an engine, kept current through the bus.
// A node is visible iff every one of its own tags is on and its container is visible:
// the language tag sits on the language container, so switching a language off hides its
// tiers and translations without touching their own toggles.
type View struct {
	engine *Engine
	idx    *Index
	off    map[*Node]int
}

// Bind - subscribe every tagged node in the tree to the engine's bus
func (e *Engine) Bind(root *Node) *View {
	return e.BindIndex(NewIndex(root))
}

// BindIndex - Bind for a tree that has already been indexed
func (e *Engine) BindIndex(x *Index) *View {
	v := &View{engine: e, idx: x, off: make(map[*Node]int)}

	for t, nn := range x.units {
		for _, n := range nn {
			if !e.On(t) {
				v.off[n]++
			}
		}
		if !e.Known(t) {
			continue
		}
		unit := nn
		e.bus.Subscribe(t, func(_ string, on bool) {
			for _, n := range unit {
				if on {
					v.off[n]--
				} else {
					v.off[n]++
				}
			}
		})
	}
	return v
}

// Units - the nodes carrying a tag, in document order
func (v *View) Units(tag string) []*Node {
	return v.idx.Units(tag)
}

// Visible - own tags all on, and every container visible
func (v *View) Visible(n *Node) bool {
	for c := n; c != nil; c = v.idx.parent[c] {
		if v.off[c] > 0 {
			return false
		}
	}
	return true
}

// VisibleSet - the visibility of every node in the tree
func (v *View) VisibleSet() map[*Node]bool {
	vs := make(map[*Node]bool, len(v.idx.parent))
	v.idx.root.Walk(func(n *Node, p *Node) {
		vs[n] = v.off[n] == 0 && (p == nil || vs[p])
	})
	return vs
}
