//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"github.com/e-gun/MultiGlossServer/internal/ldr"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"sync"
)

// GlossedDoc - a document after build and render; read-only once it is in the vault
type GlossedDoc struct {
	Doc       *str.Document
	Tree      *gls.Tree
	Markup    gls.Markup
	Index     *gls.Index
	Controls  gls.ControlSet
	Options   gls.RenderOptions
	Unglossed []ldr.Unglossed
	html      string
}

// HTML - the display markup; rendered once
func (g *GlossedDoc) HTML() string {
	return g.html
}

// Title - the document's title, or its name when it has none
func (g *GlossedDoc) Title() string {
	if g.Doc.Title != "" {
		return g.Doc.Title
	}
	return g.Doc.Name
}

// GlossDocument - build, render, and derive the control panel for one document
func GlossDocument(doc *str.Document, opt gls.RenderOptions) (*GlossedDoc, error) {
	tree, err := gls.Build(doc.Sents, doc.Schema(), doc.Order)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", doc.Name, err)
	}
	mu := gls.Render(tree, opt)
	return &GlossedDoc{
		Doc:       doc,
		Tree:      tree,
		Markup:    mu,
		Index:     gls.NewIndex(mu.Root),
		Controls:  gls.BuildControls(doc.Schema(), doc.Order, opt),
		Options:   opt,
		Unglossed: ldr.FindUnglossed(doc),
		html:      mu.HTML(),
	}, nil
}

//
// THREAD SAFE INFRASTRUCTURE: MUTEX
//

// MakeDocVault - called only once; yields the AllDocs vault
func MakeDocVault() DocVault {
	return DocVault{
		DocMap: make(map[string]*GlossedDoc),
		mutex:  sync.RWMutex{},
	}
}

// DocVault - every servable document, keyed by name
type DocVault struct {
	DocMap map[string]*GlossedDoc
	mutex  sync.RWMutex
}

func (dv *DocVault) InsertDoc(g *GlossedDoc) {
	dv.mutex.Lock()
	defer dv.mutex.Unlock()
	dv.DocMap[g.Doc.Name] = g
}

func (dv *DocVault) GetDoc(name string) (*GlossedDoc, bool) {
	dv.mutex.RLock()
	defer dv.mutex.RUnlock()
	g, ok := dv.DocMap[name]
	return g, ok
}

// Names - sorted
func (dv *DocVault) Names() []string {
	dv.mutex.RLock()
	defer dv.mutex.RUnlock()
	return gen.SortedKeys(dv.DocMap)
}

func (dv *DocVault) Count() int {
	dv.mutex.RLock()
	defer dv.mutex.RUnlock()
	return len(dv.DocMap)
}
