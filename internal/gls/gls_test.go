//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

import (
	"errors"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// odyssey - two languages, a morph tier, footnotes referenced out of order, notes, and a sparse second line
func odyssey() (str.Corpus, str.Schema, []string) {
	schema := str.Schema{
		"grc": {
			ID:   "grc",
			Name: "Greek",
			Lines: []str.TierDecl{
				{Type: vv.TIERMORPH, Labels: []string{"morphs", "gloss"}},
				{Type: vv.TIERSIMPLE, Labels: []string{"translit"}},
			},
			Trans: []string{"English", "Literal"},
		},
		"en": {
			ID:    "en",
			Name:  "English",
			Lines: []str.TierDecl{{Type: vv.TIERTEXT, Labels: []string{"text"}}},
		},
	}

	corpus := str.Corpus{
		{
			Blobs: map[string]str.LineBlob{
				"grc": {
					Words: []str.Word{
						{
							Lines:     []str.TierRendering{str.MorphTier([]string{"ἄνδρ", "α"}, []string{"man", "ACC.SG"}), str.TextTier("andra")},
							Footnotes: []string{"2", "1"},
							Notes:     []string{"a"},
						},
						{
							Lines: []str.TierRendering{str.MorphTier([]string{"μοι"}, []string{"1SG.DAT"})},
						},
					},
					Trans: map[string]string{"2": "the man to me", "1": "Tell me of the man"},
					Footnotes: map[string]str.LineBlob{
						"2":  {Words: []str.Word{{Lines: []str.TierRendering{{}, str.TextTier("polytropon")}}}},
						"1":  {Trans: map[string]string{"1": "the first word of the poem"}},
						"10": {Words: []str.Word{{Lines: []str.TierRendering{{}, str.TextTier("Mousa")}}}},
					},
				},
				"en": {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("Tell me, Muse, of the man")}}}},
			},
			Notes: map[string]string{"b": "second note", "a": "first note"},
		},
		{
			Blobs: map[string]str.LineBlob{
				"en": {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("of many ways")}}}},
			},
		},
	}
	return corpus, schema, []string{"grc", "en"}
}

func render(t *testing.T, corpus str.Corpus, schema str.Schema, order []string, opt RenderOptions) Markup {
	t.Helper()
	tree, err := Build(corpus, schema, order)
	require.NoError(t, err)
	return Render(tree, opt)
}

func withClass(root *Node, class string) []*Node {
	var found []*Node
	root.Walk(func(n *Node, _ *Node) {
		for _, c := range n.Class {
			if c == class {
				found = append(found, n)
				return
			}
		}
	})
	return found
}

//
// ABBREVIATIONS
//

func TestIsAbbreviation(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"PL", true},
		{"3SG", true},
		{"N.DEF", true},
		{"1SG.DAT", true},
		{"run", false},
		{"the", false},
		{"Pl", false},
		{"3sg", false},
		{"", false},
		{"ACC SG", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAbbreviation(tt.cell), "cell %q", tt.cell)
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Cell
	}{
		{"label after a period", "run.3SG", []Cell{{Text: "run."}, {Text: "3SG", Abbrev: true}}},
		{"whole text is a label", "N.DEF", []Cell{{Text: "N.DEF", Abbrev: true}}},
		{"two labels", "go-PST.3PL", []Cell{{Text: "go-"}, {Text: "PST.3PL", Abbrev: true}}},
		{"capitalised word", "Paris", []Cell{{Text: "Paris"}}},
		{"capital inside a word", "iPhone", []Cell{{Text: "iPhone"}}},
		{"label between words", "the PL dogs", []Cell{{Text: "the "}, {Text: "PL", Abbrev: true}, {Text: " dogs"}}},
		{"no labels", "he runs", []Cell{{Text: "he runs"}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.in))
		})
	}
}

//
// BUILD + RENDER
//

func TestRenderSimpleTierWithTranslation(t *testing.T) {
	schema := str.Schema{
		"fr": {ID: "fr", Lines: []str.TierDecl{{Type: vv.TIERSIMPLE, Labels: []string{"gloss"}}}, Trans: []string{"English"}},
	}
	corpus := str.Corpus{
		{
			Blobs: map[string]str.LineBlob{
				"fr": {
					Words:     []str.Word{{Lines: []str.TierRendering{str.TextTier("run.3SG")}}},
					Trans:     map[string]string{"1": "he runs"},
					Footnotes: map[string]str.LineBlob{},
				},
			},
			Notes: map[string]string{},
		},
	}

	const want = `<div class="display"><div class="line" data-line="0"><div class="lang-line fr">` +
		`<div class="word"><p class="fr-0">run.<span class="smallcaps">3SG</span></p></div>` +
		`<p class="trans trans-fr-1">he runs</p>` +
		`</div></div></div>`

	for _, opt := range []RenderOptions{{WithFootnotes: true}, {WithFootnotes: false}} {
		m := render(t, corpus, schema, []string{"fr"}, opt)
		assert.Equal(t, want, m.HTML())
		assert.Equal(t, []string{"fr", "fr-0", "trans-fr-1"}, m.Tags)
		assert.Empty(t, m.Root.Find(vv.TAGFOOTNOTE))
		assert.Empty(t, withClass(m.Root, "notes"))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	corpus, schema, order := odyssey()
	opt := RenderOptions{WithFootnotes: true}

	first := render(t, corpus, schema, order, opt)
	for i := 0; i < 25; i++ {
		again := render(t, corpus, schema, order, opt)
		require.Equal(t, first.HTML(), again.HTML())
		require.Equal(t, first.Tags, again.Tags)
	}
}

func TestAbsentTierIsOmitted(t *testing.T) {
	corpus, schema, order := odyssey()
	m := render(t, corpus, schema, order, RenderOptions{WithFootnotes: true})

	// only the first main-text word and two of the three footnotes carry a transliteration
	assert.Len(t, m.Root.Find("grc-1"), 3)

	// the second word has a morph table and nothing else
	words := withClass(m.Root.Children[0].Children[0], "word")
	require.Len(t, words, 4)
	require.Len(t, words[1].Children, 1)
	assert.Equal(t, "table", words[1].Children[0].Elem)

	// the footnote whose first tier is absent gets no empty table
	for _, fnword := range words[2:] {
		for _, c := range fnword.Children {
			assert.NotEqual(t, "table", c.Elem)
		}
	}
}

func TestMorphCellsMarkAbbreviations(t *testing.T) {
	corpus, schema, order := odyssey()
	m := render(t, corpus, schema, order, RenderOptions{})

	rows := m.Root.Find("grc-0-1")
	require.Len(t, rows, 2)
	assert.Equal(t, "man", rows[0].Children[0].Text)
	assert.Empty(t, rows[0].Children[0].Class)
	assert.Equal(t, "ACC.SG", rows[0].Children[1].Text)
	assert.Equal(t, []string{vv.SMALLCAPS}, rows[0].Children[1].Class)
	assert.Equal(t, []string{vv.SMALLCAPS}, rows[1].Children[0].Class)

	for _, td := range m.Root.Find("grc-0-0")[0].Children {
		assert.Empty(t, td.Class, "cell %q", td.Text)
	}
}

func TestFootnotesSortedMarkersDeclared(t *testing.T) {
	corpus, schema, order := odyssey()
	m := render(t, corpus, schema, order, RenderOptions{WithFootnotes: true})

	var ids []string
	for _, row := range m.Root.Find(vv.TAGFOOTNOTE) {
		ids = append(ids, row.Children[0].Text)
	}
	assert.Equal(t, []string{"[1]", "[10]", "[2]"}, ids)

	refs := withClass(m.Root, "ref")
	require.Len(t, refs, 1)
	assert.Equal(t, "[2][1][n-a]", refs[0].Text)
}

func TestNotesFollowTheLine(t *testing.T) {
	corpus, schema, order := odyssey()
	m := render(t, corpus, schema, order, RenderOptions{WithFootnotes: true})

	line := m.Root.Children[0]
	last := line.Children[len(line.Children)-1]
	assert.Equal(t, []string{"notes"}, last.Class)

	var got []string
	for _, p := range m.Root.Find(vv.TAGNOTE) {
		got = append(got, p.Text)
	}
	assert.Equal(t, []string{"[n-a] first note", "[n-b] second note"}, got)
}

func TestLanguagesFollowOrder(t *testing.T) {
	corpus, schema, _ := odyssey()

	m := render(t, corpus, schema, []string{"en", "grc"}, RenderOptions{})
	first := m.Root.Children[0]
	require.Len(t, first.Children, 2)
	assert.Equal(t, []string{"en"}, first.Children[0].Tags)
	assert.Equal(t, []string{"grc"}, first.Children[1].Tags)

	// sparse: the second line only has English
	second := m.Root.Children[1]
	require.Len(t, second.Children, 1)
	assert.Equal(t, []string{"en"}, second.Children[0].Tags)

	// a language left out of the order is not shown
	m = render(t, corpus, schema, []string{"en"}, RenderOptions{})
	assert.Empty(t, m.Root.Find("grc"))
}

func TestTranslationsSortNumerically(t *testing.T) {
	schema := str.Schema{
		"la": {ID: "la", Lines: []str.TierDecl{{Type: vv.TIERSIMPLE}}, Trans: make([]string, 11)},
	}
	trans := map[string]string{}
	for _, k := range []string{"10", "2", "11", "1"} {
		trans[k] = "t" + k
	}
	corpus := str.Corpus{{Blobs: map[string]str.LineBlob{"la": {Trans: trans}}}}

	tree, err := Build(corpus, schema, []string{"la"})
	require.NoError(t, err)

	var got []string
	for _, tn := range tree.Lines[0].Langs[0].Trans {
		got = append(got, tn.Index)
	}
	assert.Equal(t, []string{"1", "2", "10", "11"}, got)
}

func TestFlatRenderingDropsReferences(t *testing.T) {
	corpus, schema, order := odyssey()
	m := render(t, corpus, schema, order, RenderOptions{WithFootnotes: false})

	assert.Empty(t, m.Root.Find(vv.TAGFOOTNOTE))
	assert.Empty(t, m.Root.Find(vv.TAGNOTE))
	assert.Empty(t, withClass(m.Root, "ref"))
	assert.NotContains(t, m.Tags, vv.TAGFOOTNOTE)
	assert.Contains(t, m.Tags, "trans-grc-2")
}

//
// BUILD ERRORS
//

func TestBuildDanglingFootnote(t *testing.T) {
	schema := str.Schema{"fr": {ID: "fr", Lines: []str.TierDecl{{Type: vv.TIERSIMPLE, Labels: []string{"gloss"}}}}}
	corpus := str.Corpus{
		{
			Blobs: map[string]str.LineBlob{
				"fr": {
					Words:     []str.Word{{Lines: []str.TierRendering{str.TextTier("chat")}, Footnotes: []string{"2"}}},
					Footnotes: map[string]str.LineBlob{"1": {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("cat")}}}}},
				},
			},
		},
	}

	tree, err := Build(corpus, schema, []string{"fr"})
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, ErrDanglingReference)

	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "2", be.Ref)
	assert.Equal(t, "fr", be.Lang)
	assert.Equal(t, 0, be.Line)
	assert.Equal(t, 0, be.Word)
	assert.Contains(t, err.Error(), `id "2"`)
}

func TestBuildErrors(t *testing.T) {
	schema := str.Schema{
		"fr": {
			ID:    "fr",
			Lines: []str.TierDecl{{Type: vv.TIERSIMPLE, Labels: []string{"gloss"}}, {Type: vv.TIERMORPH, Labels: []string{"m"}}},
			Trans: []string{"English"},
		},
	}
	word := func(tt ...str.TierRendering) str.Word { return str.Word{Lines: tt} }
	line := func(b str.LineBlob, notes map[string]string) str.Corpus {
		return str.Corpus{{}, {Blobs: map[string]str.LineBlob{"fr": b}, Notes: notes}}
	}

	tests := []struct {
		name   string
		corpus str.Corpus
		order  []string
		want   error
		check  func(t *testing.T, be *BuildError)
	}{
		{
			name:   "tier beyond schema",
			corpus: line(str.LineBlob{Words: []str.Word{word(str.TextTier("a"), str.TierRendering{}, str.TextTier("b"))}}, nil),
			want:   ErrSchemaMismatch,
			check: func(t *testing.T, be *BuildError) {
				assert.Equal(t, 1, be.Line)
				assert.Equal(t, 0, be.Word)
				assert.Equal(t, 2, be.Tier)
				assert.Equal(t, "the schema declares 2 tier(s)", be.Detail)
			},
		},
		{
			name:   "absent entries beyond schema are fine",
			corpus: line(str.LineBlob{Words: []str.Word{word(str.TextTier("a"), str.TierRendering{}, str.TierRendering{})}}, nil),
		},
		{
			name:   "table under a simple tier",
			corpus: line(str.LineBlob{Words: []str.Word{word(str.MorphTier([]string{"a"}))}}, nil),
			want:   ErrSchemaMismatch,
			check:  func(t *testing.T, be *BuildError) { assert.Equal(t, 0, be.Tier) },
		},
		{
			name:   "text under a morph tier",
			corpus: line(str.LineBlob{Words: []str.Word{word(str.TierRendering{}, str.TextTier("a"))}}, nil),
			want:   ErrSchemaMismatch,
			check:  func(t *testing.T, be *BuildError) { assert.Equal(t, 1, be.Tier) },
		},
		{
			name:   "more table rows than labels",
			corpus: line(str.LineBlob{Words: []str.Word{word(str.TierRendering{}, str.MorphTier([]string{"a"}, []string{"b"}))}}, nil),
			want:   ErrSchemaMismatch,
		},
		{
			name:   "translation without a label",
			corpus: line(str.LineBlob{Trans: map[string]string{"2": "x"}}, nil),
			want:   ErrSchemaMismatch,
		},
		{
			name:   "language missing from the schema",
			corpus: line(str.LineBlob{}, nil),
			order:  []string{"fr", "de"},
			want:   ErrSchemaMismatch,
			check:  func(t *testing.T, be *BuildError) { assert.Equal(t, "de", be.Lang) },
		},
		{
			name:   "dangling note",
			corpus: line(str.LineBlob{Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("a")}, Notes: []string{"x"}}}}, map[string]string{"y": "note"}),
			want:   ErrDanglingReference,
			check:  func(t *testing.T, be *BuildError) { assert.Equal(t, "x", be.Ref) },
		},
		{
			name: "footnote inside a footnote",
			corpus: line(str.LineBlob{Footnotes: map[string]str.LineBlob{
				"1": {Footnotes: map[string]str.LineBlob{"1a": {}}},
			}}, nil),
			want:  ErrNestedFootnote,
			check: func(t *testing.T, be *BuildError) { assert.Equal(t, "1", be.Footnote) },
		},
		{
			name: "footnote word referencing a footnote",
			corpus: line(str.LineBlob{Footnotes: map[string]str.LineBlob{
				"1": {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("a")}, Footnotes: []string{"1"}}}},
			}}, nil),
			want: ErrNestedFootnote,
		},
		{
			name: "footnote word referencing a note",
			corpus: line(str.LineBlob{Footnotes: map[string]str.LineBlob{
				"1": {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("a")}, Notes: []string{"n"}}}},
			}}, map[string]string{"n": "note"}),
			want:  ErrNestedFootnote,
			check: func(t *testing.T, be *BuildError) { assert.Equal(t, "n", be.Ref) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := tt.order
			if order == nil {
				order = []string{"fr"}
			}
			_, err := Build(tt.corpus, schema, order)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			var be *BuildError
			require.ErrorAs(t, err, &be)
			if tt.check != nil {
				tt.check(t, be)
			}
		})
	}
}

//
// CONTROLS
//

func TestControlsCoverRenderedTags(t *testing.T) {
	corpus, schema, order := odyssey()
	for _, opt := range []RenderOptions{{WithFootnotes: true}, {WithFootnotes: false}} {
		m := render(t, corpus, schema, order, opt)
		cs := BuildControls(schema, order, opt)
		assert.Subset(t, cs.Tags(), m.Tags)
	}

	// this corpus exercises every declared tier, so the match is exact
	m := render(t, corpus, schema, order, RenderOptions{WithFootnotes: true})
	cs := BuildControls(schema, order, RenderOptions{WithFootnotes: true})
	assert.ElementsMatch(t, cs.Tags(), m.Tags)
}

func TestControlsPanelOrder(t *testing.T) {
	_, schema, order := odyssey()
	cs := BuildControls(schema, order, RenderOptions{WithFootnotes: true})

	want := []string{
		"grc", "grc-0-0", "grc-0-1", "grc-1", "trans-grc-1", "trans-grc-2",
		"en", "en-0",
		vv.TAGFOOTNOTE, vv.TAGNOTE,
	}
	assert.Equal(t, want, cs.Tags())
	assert.Equal(t, "Greek", cs.Groups[0].Lang.Label)
	assert.Equal(t, "gloss", cs.Groups[0].Tiers[1].Label)
	assert.Equal(t, "Literal", cs.Groups[0].Trans[1].Label)

	h := cs.Node().HTML()
	assert.Contains(t, h, `<input type="checkbox" checked data-tag="grc-0-1">gloss</label>`)
	assert.Contains(t, h, `data-tag="trans-grc-2"`)
}

func TestBuildRejectsUnusableLanguageIDs(t *testing.T) {
	simple := str.LangSchema{Name: "X", Lines: []str.TierDecl{{Type: vv.TIERSIMPLE, Labels: []string{"text"}}}}
	corpus := func(id string) str.Corpus {
		return str.Corpus{{Blobs: map[string]str.LineBlob{id: {Words: []str.Word{{Lines: []str.TierRendering{str.TextTier("hwæt")}}}}}}}
	}

	for _, id := range []string{"old english", "ang-x", "0ang", "", "trans", "word", "line", vv.TAGNOTE} {
		_, err := Build(corpus(id), str.Schema{id: simple}, []string{id})
		require.ErrorIs(t, err, ErrSchemaMismatch, "id %q", id)
		var be *BuildError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, id, be.Lang)
		assert.ErrorIs(t, ValidLangID(id), ErrSchemaMismatch, "id %q", id)
	}

	m := render(t, corpus("old_english"), str.Schema{"old_english": simple}, []string{"old_english"}, RenderOptions{})
	assert.Contains(t, m.HTML(), `<p class="old_english-0">hwæt</p>`)
	assert.NoError(t, ValidLangID("grc"))
}

//
// TOGGLING
//

func TestToggleRoundTrip(t *testing.T) {
	corpus, schema, order := odyssey()
	opt := RenderOptions{WithFootnotes: true}
	m := render(t, corpus, schema, order, opt)
	cs := BuildControls(schema, order, opt)

	eng := NewEngine(cs)
	view := eng.Bind(m.Root)
	before := view.VisibleSet()
	for _, vis := range before {
		require.True(t, vis)
	}

	covered := func(n *Node, tag string) bool {
		for c := n; c != nil; c = view.idx.parent[c] {
			if c.HasTag(tag) {
				return true
			}
		}
		return false
	}

	for _, tag := range cs.Tags() {
		on, ok := eng.Toggle(tag)
		require.True(t, ok)
		require.False(t, on)

		during := view.VisibleSet()
		require.NotEmpty(t, view.Units(tag), "tag %q", tag)
		for _, u := range view.Units(tag) {
			assert.False(t, during[u], "tag %q", tag)
		}
		for n, vis := range during {
			if vis != before[n] {
				assert.True(t, covered(n, tag), "tag %q hid an unrelated node", tag)
			}
		}

		on, _ = eng.Toggle(tag)
		require.True(t, on)
		assert.Equal(t, before, view.VisibleSet(), "tag %q", tag)
	}
}

func TestLanguageToggleContainsTiers(t *testing.T) {
	corpus, schema, order := odyssey()
	opt := RenderOptions{WithFootnotes: true}
	m := render(t, corpus, schema, order, opt)
	eng := NewEngine(BuildControls(schema, order, opt))
	view := eng.Bind(m.Root)

	eng.Toggle("grc")
	assert.True(t, eng.On("grc-1"))
	for _, p := range view.Units("grc-1") {
		assert.False(t, view.Visible(p))
	}
	for _, row := range view.Units(vv.TAGFOOTNOTE) {
		assert.False(t, view.Visible(row))
	}
	for _, p := range view.Units("en-0") {
		assert.True(t, view.Visible(p))
	}

	// the tier toggle is independent: switching it off and the language back on leaves the tier hidden
	eng.Toggle("grc-1")
	eng.Toggle("grc")
	for _, p := range view.Units("grc-1") {
		assert.False(t, view.Visible(p))
	}
	assert.True(t, view.Visible(view.Units("grc-0-0")[0]))
	assert.Equal(t, []string{"grc-1"}, eng.Hidden())

	eng.Reset()
	assert.Empty(t, eng.Hidden())
	for _, p := range view.Units("grc-1") {
		assert.True(t, view.Visible(p))
	}
}

func TestIndexSharedByEngines(t *testing.T) {
	corpus, schema, order := odyssey()
	opt := RenderOptions{WithFootnotes: true}
	m := render(t, corpus, schema, order, opt)
	cs := BuildControls(schema, order, opt)
	idx := NewIndex(m.Root)

	a, b := NewEngine(cs), NewEngine(cs)
	view := a.BindIndex(idx)
	a.Toggle("grc")
	a.Toggle("en-0")

	m.Root.Walk(func(n *Node, _ *Node) {
		assert.Equal(t, view.Visible(n), idx.Visible(a, n))
		assert.True(t, idx.Visible(b, n))
	})
	for _, p := range idx.Units("grc-1") {
		assert.False(t, idx.Visible(a, p))
	}
	assert.Empty(t, b.Bus().subs, "an engine that was never bound holds no subscribers")
}

func TestUnknownTagIsNoop(t *testing.T) {
	corpus, schema, order := odyssey()
	m := render(t, corpus, schema, order, RenderOptions{})
	eng := NewEngine(BuildControls(schema, order, RenderOptions{}))
	view := eng.Bind(m.Root)
	before := view.VisibleSet()

	on, ok := eng.Toggle("xx-9")
	assert.False(t, ok)
	assert.True(t, on)
	assert.False(t, eng.Set("xx-9", false))
	assert.Equal(t, before, view.VisibleSet())
	assert.Empty(t, eng.Hidden())
}

func TestBusPublish(t *testing.T) {
	b := NewBus()
	var heard []bool
	b.Subscribe("fr-0", func(tag string, on bool) {
		assert.Equal(t, "fr-0", tag)
		heard = append(heard, on)
	})

	assert.Equal(t, 1, b.Publish("fr-0", false))
	assert.Equal(t, 0, b.Publish("fr-1", false))
	assert.Equal(t, 1, b.Publish("fr-0", true))
	assert.Equal(t, []bool{false, true}, heard)
}
