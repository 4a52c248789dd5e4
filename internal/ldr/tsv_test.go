//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"errors"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/gls"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

// tsv - "|" stands in for a tab
func tsv(lines ...string) string {
	return strings.ReplaceAll(strings.Join(lines, "\n"), "|", "\t") + "\n"
}

var header = []string{
	"# the proem",
	"%META",
	"title|The Odyssey",
	"%LANG|grc",
	"name|Ancient Greek",
	"%TRANS",
	"English",
	"%LINES",
	"morph|morphs",
	"morph|gloss",
	"text|translit",
	"%LANG|en",
	"name|English",
	"%LINES",
	"text|text",
}

func odysseytsv() string {
	body := []string{
		"%TEXT",
		"%LINE",
		"grc|ἄνδρ-α|man-ACC.SG|andra|1 n-a",
		"grc|μοι|1SG.DAT|moi",
		"grc-T1|Tell me of the man",
		"grc-F1|πολύ-τροπον||polytropon",
		"",
		"en|Tell me, Muse",
		"NOTE|a|the first word of the poem",
		"%LINE",
		"en|of many ways",
		"%DICT|grc|1|2",
		"τροπον|turned",
	}
	return tsv(append(append([]string{}, header...), body...)...)
}

func TestLoadTSV(t *testing.T) {
	doc, err := LoadTSV(strings.NewReader(odysseytsv()), "odyssey")
	require.NoError(t, err)

	assert.Equal(t, "odyssey", doc.Name)
	assert.Equal(t, "The Odyssey", doc.Title)
	assert.Equal(t, []string{"grc", "en"}, doc.Order)

	grc := doc.Langs["grc"]
	assert.Equal(t, "Ancient Greek", grc.Name)
	assert.Equal(t, []string{"English"}, grc.Trans)
	assert.Equal(t, []str.TierDecl{
		{Type: vv.TIERMORPH, Labels: []string{"morphs", "gloss"}},
		{Type: vv.TIERSIMPLE, Labels: []string{"translit"}},
	}, grc.Lines)

	require.Len(t, doc.Sents, 2)
	blob := doc.Sents[0].Blobs["grc"]
	require.Len(t, blob.Words, 2)

	w := blob.Words[0]
	assert.Equal(t, [][]string{
		{"", "ἄνδρ", "-", "α", ""},
		{"", "man", "-", "ACC.SG", ""},
	}, w.Lines[0].Table)
	assert.Equal(t, "andra", w.Lines[1].Text)
	assert.Equal(t, []string{"1"}, w.Footnotes)
	assert.Equal(t, []string{"a"}, w.Notes)

	assert.Empty(t, blob.Words[1].Footnotes)
	assert.Equal(t, map[string]string{"1": "Tell me of the man"}, blob.Trans)

	fn := blob.Footnotes["1"]
	require.Len(t, fn.Words, 1)
	assert.Equal(t, [][]string{
		{"", "πολύ", "-", "τροπον", ""},
		{"", "", "-", "", ""},
	}, fn.Words[0].Lines[0].Table)

	assert.Equal(t, "Tell me, Muse", doc.Sents[0].Blobs["en"].Words[0].Lines[0].Text)
	assert.Equal(t, map[string]string{"a": "the first word of the poem"}, doc.Sents[0].Notes)
	assert.NotContains(t, doc.Sents[1].Blobs, "grc")

	require.Len(t, doc.Dicts, 1)
	assert.Equal(t, str.AutoDict{Lang: "grc", Source: 1, Target: 2, Data: map[string]string{"τροπον": "turned"}}, doc.Dicts[0])
}

func TestLoadTSVBuilds(t *testing.T) {
	doc, err := LoadTSV(strings.NewReader(odysseytsv()), "odyssey")
	require.NoError(t, err)
	Prepare(doc)

	tree, err := gls.Build(doc.Sents, doc.Schema(), doc.Order)
	require.NoError(t, err)
	m := gls.Render(tree, gls.RenderOptions{WithFootnotes: true})
	cs := gls.BuildControls(doc.Schema(), doc.Order, gls.RenderOptions{WithFootnotes: true})
	assert.Subset(t, cs.Tags(), m.Tags)
	assert.Contains(t, m.HTML(), `<td class="smallcaps">ACC.SG</td>`)
}

func TestLoadTSVSpecifiers(t *testing.T) {
	body := []string{
		"%TEXT",
		"%LINE",
		"en|a",
		"en-T|first",
		"en-F2|b",
		"en-F2-T1|b translated",
		"en-F|c",
	}
	doc, err := LoadTSV(strings.NewReader(tsv(append(append([]string{}, header...), body...)...)), "x")
	require.NoError(t, err)

	blob := doc.Sents[0].Blobs["en"]
	assert.Equal(t, map[string]string{"1": "first"}, blob.Trans)
	require.Contains(t, blob.Footnotes, "1")
	require.Contains(t, blob.Footnotes, "2")
	assert.Equal(t, "c", blob.Footnotes["1"].Words[0].Lines[0].Text)
	assert.Equal(t, map[string]string{"1": "b translated"}, blob.Footnotes["2"].Trans)
}

func TestLoadTSVErrors(t *testing.T) {
	// the offending row is always the third line of the body
	tests := []struct {
		name string
		row  string
		msg  string
	}{
		{"unknown language", "fr|x", "unknown language 'fr'"},
		{"morpheme count", "grc|ἄνδρ-α|man|andra", "do not all have the same number of morphemes"},
		{"separator mismatch", "grc|a-b|c=d|x", "do not have the same morpheme separators"},
		{"only separators", "grc|-|-|x", "have morpheme separators but no morphemes"},
		{"bad specifier", "grc-X1|x", "unable to interpret specifier"},
		{"too many columns", "en|a|b|c", "expected between 2 and 3 columns"},
		{"note shape", "NOTE|a", "expected 3 columns"},
		{"unknown header", "%WORDS", "unknown header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := append(append([]string{}, header...), "%TEXT", "%LINE", tt.row)
			_, err := LoadTSV(strings.NewReader(tsv(lines...)), "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, len(header)+3, se.Line)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestLoadTSVLanguageErrors(t *testing.T) {
	_, err := LoadTSV(strings.NewReader(tsv("%META", "%LANG|grc", "%LINES", "morph|m")), "x")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = LoadTSV(strings.NewReader(tsv("%META", "%LANG|grc", "name|Greek", "%LINES", "table|m")), "x")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = LoadTSV(strings.NewReader(tsv(append(append([]string{}, header...), "%DICT|grc|1|9")...)), "x")
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Msg, "has no column 9")
}

func TestLoadTSVRejectsUnusableLanguageIDs(t *testing.T) {
	for _, id := range []string{"old english", "en-GB", "1st", "trans", "word"} {
		_, err := LoadTSV(strings.NewReader(tsv("%META", "%LANG|"+id, "name|X", "%LINES", "text|t")), "x")
		var se *SyntaxError
		require.ErrorAs(t, err, &se, "id %q", id)
		assert.Equal(t, 2, se.Line, "id %q", id)
		assert.ErrorIs(t, err, ErrSyntax)
	}

	doc, err := LoadTSV(strings.NewReader(strings.NewReplacer("%LANG\ten\n", "%LANG\told_en\n", "\nen\t", "\nold_en\t").Replace(odysseytsv())), "odyssey")
	require.NoError(t, err)
	assert.Equal(t, []string{"grc", "old_en"}, doc.Order)
}

func TestApplyDictsAndUnglossed(t *testing.T) {
	doc, err := LoadTSV(strings.NewReader(odysseytsv()), "odyssey")
	require.NoError(t, err)

	before := FindUnglossed(doc)
	require.Len(t, before, 1)
	assert.ElementsMatch(t, []string{"πολύ", "τροπον"}, before[0].Morphs)

	assert.Equal(t, 1, ApplyDicts(doc))
	row := doc.Sents[0].Blobs["grc"].Footnotes["1"].Words[0].Lines[0].Table[1]
	assert.Equal(t, []string{"", "", "-", "turned", ""}, row)

	after := FindUnglossed(doc)
	require.Len(t, after, 1)
	assert.Equal(t, Unglossed{Lang: "grc", Name: "Ancient Greek", From: 1, To: 2, Morphs: []string{"πολύ"}}, after[0])
	assert.Equal(t, "Entries on line 1 without corresponding entry on line 2: πολύ", after[0].String())

	// applying twice changes nothing further
	assert.Equal(t, 0, ApplyDicts(doc))
}

func TestColumnIndex(t *testing.T) {
	doc, err := LoadTSV(strings.NewReader(odysseytsv()), "odyssey")
	require.NoError(t, err)
	grc := doc.Langs["grc"]

	tests := []struct {
		col, tier, row int
		ok             bool
	}{
		{1, 0, 0, true},
		{2, 0, 1, true},
		{3, 1, -1, true},
		{4, -1, -1, false},
		{0, -1, -1, false},
	}
	for _, tt := range tests {
		tier, row, ok := ColumnIndex(grc, tt.col)
		assert.Equal(t, tt.ok, ok, "column %d", tt.col)
		assert.Equal(t, tt.tier, tier, "column %d", tt.col)
		assert.Equal(t, tt.row, row, "column %d", tt.col)
	}
	assert.Equal(t, 3, firstcolumn(grc, 1))
}

func TestPrepareNormalises(t *testing.T) {
	// "ύ" written as upsilon + combining acute
	decomposed := "πολ" + "υ\u0301"
	doc := &str.Document{
		Langs: map[string]str.LangSchema{"grc": {Lines: []str.TierDecl{{Type: vv.TIERTEXT}}}},
		Sents: str.Corpus{{Blobs: map[string]str.LineBlob{"grc": {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier(decomposed)}}}}}}},
	}
	Prepare(doc)

	assert.Equal(t, "grc", doc.Langs["grc"].ID)
	assert.Equal(t, vv.TIERSIMPLE, doc.Langs["grc"].Lines[0].Type)
	assert.Equal(t, []string{"grc"}, doc.Order)

	got := doc.Sents[0].Blobs["grc"].Words[0].Lines[0].Text
	assert.Equal(t, gen.NFC(decomposed), got)
	assert.NotEqual(t, decomposed, got)
}
