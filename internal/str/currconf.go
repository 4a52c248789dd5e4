//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// CurrentConfiguration - the values a launch settles on; defaults, then the config file, then MGS_* env vars, then flags
type CurrentConfiguration struct {
	BlackAndWhite bool          `json:"BlackAndWhite" env:"MGS_BW"`
	CustomCSS     bool          `json:"CustomCSS" env:"MGS_CUSTOMCSS"`
	DocDir        string        `json:"DocDir" env:"MGS_DOCDIR"`
	Docs          []string      `json:"Docs" env:"MGS_DOCS" env-separator:","`
	EchoLog       int           `json:"EchoLog" env:"MGS_ECHOLOG"` // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	Export        string        `json:"Export" env:"MGS_EXPORT"`   // write a static page for the first document and exit
	Footnotes     bool          `json:"Footnotes" env:"MGS_FOOTNOTES"`
	Gzip          bool          `json:"Gzip" env:"MGS_GZIP"`
	HostIP        string        `json:"HostIP" env:"MGS_HOST"`
	HostPort      int           `json:"HostPort" env:"MGS_PORT"`
	LogLevel      int           `json:"LogLevel" env:"MGS_LOGLEVEL"`
	ManualGC      bool          `json:"ManualGC" env:"MGS_MANUALGC"` // see MessageMaker.LogPaths()
	PGLogin       PostgresLogin `json:"PGLogin"`
	PGDocs        bool          `json:"PGDocs" env:"MGS_PGDOCS"` // also load every document in the PostgreSQL store
	ProfileCPU    bool          `json:"ProfileCPU"`
	ProfileMEM    bool          `json:"ProfileMEM"`
	QuietStart    bool          `json:"QuietStart" env:"MGS_QUIET"`
	SQLiteDB      string        `json:"SQLiteDB" env:"MGS_SQLITE"` // path to a SQLite document store
	StoreTo       string        `json:"StoreTo" env:"MGS_STORETO"` // copy every loaded document into this SQLite file and exit
	TickerActive  bool          `json:"TickerActive"`
	WarnMorphs    bool          `json:"WarnMorphs" env:"MGS_WARNMORPHS"`
}
