//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"gopkg.in/yaml.v3"
	"io"
)

// LoadJSON - the document blob: {"title": ..., "langs": {...}, "order": [...], "sents": [...]}
func LoadJSON(r io.Reader, name string) (*str.Document, error) {
	var doc str.Document
	dec := json.NewDecoder(io.LimitReader(r, vv.MAXDOCSIZE))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSyntax, name, err)
	}
	doc.Name = name
	return &doc, nil
}

// LoadYAML - the same blob written as YAML
func LoadYAML(r io.Reader, name string) (*str.Document, error) {
	var doc str.Document
	dec := yaml.NewDecoder(io.LimitReader(r, vv.MAXDOCSIZE))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSyntax, name, err)
	}
	doc.Name = name
	return &doc, nil
}

// DocumentJSON - the blob a browser or a document store receives
func DocumentJSON(doc *str.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", vv.JSONINDENT)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Prepare - NFC every string, fill in missing language ids, fold tier-type aliases, then apply the dictionaries
func Prepare(doc *str.Document) {
	nfc := gen.NFC

	doc.Title = nfc(doc.Title)
	langs := make(map[string]str.LangSchema, len(doc.Langs))
	for id, ls := range doc.Langs {
		id = nfc(id)
		if ls.ID == "" {
			ls.ID = id
		}
		ls.ID = nfc(ls.ID)
		ls.Name = nfc(ls.Name)
		for i := range ls.Trans {
			ls.Trans[i] = nfc(ls.Trans[i])
		}
		for i := range ls.Lines {
			switch ls.Lines[i].Type {
			case vv.TIERTEXT, linetypetrans:
				ls.Lines[i].Type = vv.TIERSIMPLE
			}
			for j := range ls.Lines[i].Labels {
				ls.Lines[i].Labels[j] = nfc(ls.Lines[i].Labels[j])
			}
		}
		langs[id] = ls
	}
	doc.Langs = langs

	for i := range doc.Order {
		doc.Order[i] = nfc(doc.Order[i])
	}
	if len(doc.Order) == 0 {
		doc.Order = gen.SortedKeys(doc.Langs)
	}

	for i := range doc.Sents {
		doc.Sents[i] = nfcline(doc.Sents[i])
	}
	for i := range doc.Dicts {
		d := make(map[string]string, len(doc.Dicts[i].Data))
		for k, v := range doc.Dicts[i].Data {
			d[nfc(k)] = nfc(v)
		}
		doc.Dicts[i].Data = d
		doc.Dicts[i].Lang = nfc(doc.Dicts[i].Lang)
	}

	ApplyDicts(doc)
}

func nfcmap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[gen.NFC(k)] = gen.NFC(v)
	}
	return out
}

func nfcline(l str.Line) str.Line {
	out := str.Line{Notes: nfcmap(l.Notes)}
	if l.Blobs != nil {
		out.Blobs = make(map[string]str.LineBlob, len(l.Blobs))
		for k, b := range l.Blobs {
			out.Blobs[gen.NFC(k)] = nfcblob(b)
		}
	}
	return out
}

func nfcblob(b str.LineBlob) str.LineBlob {
	out := str.LineBlob{Trans: nfcmap(b.Trans), Words: make([]str.Word, len(b.Words))}
	for i, w := range b.Words {
		nw := str.Word{
			Lines:     make([]str.TierRendering, len(w.Lines)),
			Footnotes: make([]string, len(w.Footnotes)),
			Notes:     make([]string, len(w.Notes)),
		}
		for j, tr := range w.Lines {
			nw.Lines[j] = nfctier(tr)
		}
		for j, f := range w.Footnotes {
			nw.Footnotes[j] = gen.NFC(f)
		}
		for j, n := range w.Notes {
			nw.Notes[j] = gen.NFC(n)
		}
		out.Words[i] = nw
	}
	if len(b.Footnotes) > 0 {
		out.Footnotes = make(map[string]str.LineBlob, len(b.Footnotes))
		for k, fb := range b.Footnotes {
			out.Footnotes[gen.NFC(k)] = nfcblob(fb)
		}
	}
	return out
}

func nfctier(tr str.TierRendering) str.TierRendering {
	if !tr.IsTable() {
		return str.TextTier(gen.NFC(tr.Text))
	}
	tbl := make([][]string, len(tr.Table))
	for r, row := range tr.Table {
		tbl[r] = make([]string, len(row))
		for c, cell := range row {
			tbl[r][c] = gen.NFC(cell)
		}
	}
	return str.MorphTier(tbl...)
}
