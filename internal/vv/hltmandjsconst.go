//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

//
// CSS, JS, AND PAGE TEMPLATES
//

const (
	// MULTIGLOSSCSS - a text/template; "bw" strips the colors
	MULTIGLOSSCSS = `
:root {
    --fg: {{if .bw}}#000{{else}}#1d2330{{end}};
    --muted: {{if .bw}}#444{{else}}#6b7385{{end}};
    --accent: {{if .bw}}#000{{else}}#2f6ea8{{end}};
    --rule: #d9dce3;
}

body { color: var(--fg); font-family: "Gentium Plus", "Noto Serif", serif; margin: 1rem 2rem; }
h1 { font-weight: normal; }
a { color: var(--accent); }

.controls { display: flex; flex-wrap: wrap; gap: 1.25rem; padding: .5rem 0 1rem 0; border-bottom: 1px solid var(--rule); }
.control-group > .control { font-weight: bold; }
.control-tiers { padding-left: 1rem; }
.control-tiers .control { display: block; font-size: 90%; }

.display { padding-top: 1rem; }
.line { padding: .5rem 0; border-bottom: 1px dotted var(--rule); }
.lang-line { display: flex; flex-wrap: wrap; align-items: flex-start; gap: .25rem 1rem; margin: .25rem 0; }
.lang-line > .trans, .lang-line > .footnotes { flex-basis: 100%; }
.word { display: inline-block; }
.word p { margin: 0; }
.word table.morphs { border-collapse: collapse; }
.word td { padding: 0; }

.ref { font-size: 70%; color: var(--accent); vertical-align: super; }
.trans { font-style: italic; margin: .25rem 0; }
.smallcaps { font-variant: small-caps; text-transform: lowercase; }

table.footnotes { font-size: 90%; color: var(--muted); }
td.fn-id { vertical-align: top; padding-right: .5rem; }
.notes { font-size: 90%; color: var(--muted); }
.note { margin: .1rem 0; }

.doclist li { margin: .25rem 0; }
.uptime { color: var(--muted); font-size: 80%; white-space: pre; }
`

	// MULTIGLOSSJS - the page keeps a stylesheet with one rule per hidden tag; nesting does the rest.
	// A live page asks the server over the websocket (or /toggle/ when that fails); an exported page decides for itself.
	MULTIGLOSSJS = `
(function() {
    const body = document.body;
    const doc = body.dataset.doc;
    const live = body.dataset.live === "yes";
    const hiddensheet = document.getElementById("hiddentags");
    const boxes = document.querySelectorAll(".controls input[data-tag]");
    let hidden = [];
    let ws = null;

    function apply(tags) {
        hidden = tags;
        hiddensheet.textContent = tags.map(function(t) {
            return ".display ." + CSS.escape(t) + " { display: none; }";
        }).join("\n");
        boxes.forEach(function(b) { b.checked = !hidden.includes(b.dataset.tag); });
    }

    function local(tag) {
        if (hidden.includes(tag)) {
            apply(hidden.filter(function(t) { return t !== tag; }));
        } else {
            apply(hidden.concat([tag]));
        }
    }

    function overhttp(tag) {
        fetch("/toggle/" + encodeURIComponent(doc) + "/" + encodeURIComponent(tag))
            .then(function(r) { return r.json(); })
            .then(function(reply) { apply(reply.hidden); })
            .catch(function() { local(tag); });
    }

    if (live && "WebSocket" in window) {
        const proto = location.protocol === "https:" ? "wss://" : "ws://";
        ws = new WebSocket(proto + location.host + "/ws/" + encodeURIComponent(doc));
        ws.onmessage = function(e) { apply(JSON.parse(e.data).hidden); };
        ws.onclose = function() { ws = null; };
    }

    boxes.forEach(function(b) {
        b.addEventListener("change", function() {
            const tag = b.dataset.tag;
            if (!live) {
                local(tag);
            } else if (ws && ws.readyState === WebSocket.OPEN) {
                ws.send(tag);
            } else {
                overhttp(tag);
            }
        });
    });

    apply([]);
})();
`

	// GLOSSPAGE - a text/template; everything substituted into it arrives already escaped
	GLOSSPAGE = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8"/>
    <title>{{.title}}</title>
    {{if .inline}}<style>{{.css}}</style>{{else}}<link rel="stylesheet" href="/emb/css/multigloss.css">{{end}}
    <style id="hiddentags"></style>
  </head>
  <body data-doc="{{.doc}}" data-live="{{.live}}">
    <h1>{{.title}}</h1>
    {{.controls}}
    {{.display}}
    {{if .inline}}<script type="text/javascript">{{.js}}</script>{{else}}<script type="text/javascript" src="/emb/js/multigloss.js"></script>{{end}}
  </body>
</html>
`

	FRONTPAGE = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8"/>
    <title>{{.name}}</title>
    <link rel="stylesheet" href="/emb/css/multigloss.css">
  </head>
  <body>
    <h1>{{.name}}</h1>
    <ul class="doclist">
{{.docs}}
    </ul>
    <p class="uptime">{{.version}}
{{.ticker}}</p>
  </body>
</html>
`

	FRONTPAGEDOC = `      <li><a href="/gloss/%s">%s</a> <span class="uptime">(%d lines; %s)</span> <a href="/stats/%s">unglossed: %d</a></li>`
)
