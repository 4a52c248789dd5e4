//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"bytes"
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

// the shape the authoring tool used to export: each sentence is a bare language map
const barejson = `{
  "title": "Le chat",
  "langs": {
    "fr": {"id": "fr", "name": "French", "lines": [{"type": "text", "labels": ["gloss"]}], "trans": ["English"]}
  },
  "order": ["fr"],
  "sents": [
    {"fr": {"words": [{"lines": ["run.3SG"], "footnotes": []}], "trans": {"1": "he runs"}, "footnotes": {}}}
  ]
}`

const wrappedjson = `{
  "title": "Le chat",
  "langs": {
    "fr": {"name": "French", "lines": [{"type": "morph", "labels": ["morphs", "gloss"]}, {"type": "simple", "labels": ["translit"]}]}
  },
  "order": ["fr"],
  "sents": [
    {
      "langs": {"fr": {"words": [{"lines": [[["chat", "s"], ["cat", "PL"]], null], "notes": ["a"]}]}},
      "notes": {"a": "plural"}
    }
  ]
}`

const yamldoc = `
title: Le chat
langs:
  fr:
    name: French
    lines:
      - type: morph
        labels: [morphs, gloss]
      - type: simple
        labels: [translit]
    trans: [English]
order: [fr]
sents:
  - langs:
      fr:
        words:
          - lines:
              - [[chat, s], [cat, PL]]
              - ~
            footnotes: ["1"]
        trans:
          "1": cats
        footnotes:
          "1":
            words:
              - lines: [~, "sha"]
    notes:
      a: plural
`

func TestLoadJSONBare(t *testing.T) {
	doc, err := LoadJSON(strings.NewReader(barejson), "chat")
	require.NoError(t, err)
	Prepare(doc)

	assert.Equal(t, "chat", doc.Name)
	assert.Equal(t, vv.TIERSIMPLE, doc.Langs["fr"].Lines[0].Type)
	require.Len(t, doc.Sents, 1)
	blob := doc.Sents[0].Blobs["fr"]
	assert.Equal(t, "run.3SG", blob.Words[0].Lines[0].Text)
	assert.Equal(t, map[string]string{"1": "he runs"}, blob.Trans)
	assert.Nil(t, doc.Sents[0].Notes)

	tree, err := gls.Build(doc.Sents, doc.Schema(), doc.Order)
	require.NoError(t, err)
	assert.Contains(t, gls.Render(tree, gls.RenderOptions{}).HTML(), `<p class="fr-0">run.<span class="smallcaps">3SG</span></p>`)
}

func TestLoadJSONWrapped(t *testing.T) {
	doc, err := LoadJSON(strings.NewReader(wrappedjson), "chat")
	require.NoError(t, err)
	Prepare(doc)

	assert.Equal(t, "fr", doc.Langs["fr"].ID)
	w := doc.Sents[0].Blobs["fr"].Words[0]
	require.Len(t, w.Lines, 2)
	assert.Equal(t, [][]string{{"chat", "s"}, {"cat", "PL"}}, w.Lines[0].Table)
	assert.True(t, w.Lines[1].IsAbsent())
	assert.Equal(t, map[string]string{"a": "plural"}, doc.Sents[0].Notes)
}

func TestLoadJSONRejectsGarbage(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"sents": [{"langs": {"fr": {"words": [{"lines": [42]}]}}}]}`), "bad")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = LoadJSON(strings.NewReader(`{"title": `), "bad")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLoadYAML(t *testing.T) {
	doc, err := LoadYAML(strings.NewReader(yamldoc), "chat")
	require.NoError(t, err)
	Prepare(doc)

	assert.Equal(t, "Le chat", doc.Title)
	blob := doc.Sents[0].Blobs["fr"]
	assert.Equal(t, [][]string{{"chat", "s"}, {"cat", "PL"}}, blob.Words[0].Lines[0].Table)
	assert.True(t, blob.Words[0].Lines[1].IsAbsent())
	assert.Equal(t, []string{"1"}, blob.Words[0].Footnotes)
	assert.Equal(t, "sha", blob.Footnotes["1"].Words[0].Lines[1].Text)
	assert.Equal(t, map[string]string{"1": "cats"}, blob.Trans)

	tree, err := gls.Build(doc.Sents, doc.Schema(), doc.Order)
	require.NoError(t, err)
	assert.Len(t, tree.Lines[0].Langs[0].Footnotes, 1)
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc, err := LoadYAML(strings.NewReader(yamldoc), "chat")
	require.NoError(t, err)
	Prepare(doc)

	b, err := DocumentJSON(doc)
	require.NoError(t, err)

	again, err := LoadJSON(bytes.NewReader(b), "chat")
	require.NoError(t, err)
	Prepare(again)
	assert.Equal(t, doc, again)
}

func TestWordJSONShape(t *testing.T) {
	w := str.Word{Lines: []str.TierRendering{str.TextTier("a"), {}, str.MorphTier([]string{"b"})}}
	doc := &str.Document{Sents: str.Corpus{{Blobs: map[string]str.LineBlob{"x": {Words: []str.Word{w}}}}}}
	b, err := DocumentJSON(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"a",`)
	assert.Contains(t, string(b), `null,`)
}
