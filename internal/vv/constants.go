//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "MultiGloss Server"
	SHORTNAME = "MGS"
	VERSION   = "0.3.1"

	BLACKANDWHITE            = false
	CONFIGLOCATION           = "."
	CONFIGALTAPTH            = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC              = "mgs-conf.json"
	CUSTOMCSSFILENAME        = "custom-multiglossstyles.css"
	DEFAULTDOCDIR            = "glosses"
	DEFAULTECHOLOGLEVEL      = 0
	DEFAULTGOLOGLEVEL        = 0
	DEFAULTPSQLHOST          = "127.0.0.1"
	DEFAULTPSQLUSER          = "mgs_rd"
	DEFAULTPSQLPORT          = 5432
	DEFAULTPSQLDB            = "multiglossDB"
	DOCTABLE                 = "documents"
	FOOTNOTESON              = true
	JSONINDENT               = "  "
	MAXDOCSIZE               = 64 << 20 // refuse to read corpus files larger than this
	MAXECHOREQPERSECONDPERIP = 60
	MAXTOGGLEEVENTSPERCONN   = 4096 // the websocket is closed after this many events
	SERVEDFROMHOST           = "127.0.0.1"
	SERVEDFROMPORT           = 8010
	SESSIONIDLE              = 2 * time.Hour // toggle state is dropped after this long without activity
	SESSIONSWEEP             = 5 * time.Minute
	TICKERISACTIVE           = false
	TICKERDELAY              = 30 * time.Second
	TIMEOUTRD                = 15 * time.Second
	TIMEOUTWR                = 30 * time.Second
	USEGZIP                  = false
	WRITEPERMS               = 0644
	WSREADLIMIT              = 512 // bytes; a toggle event is one tag
)

// tag vocabulary shared by the renderer and the control panel
const (
	TAGFOOTNOTE = "footnote"
	TAGNOTE     = "note"
	TAGTRANS    = "trans"
	SMALLCAPS   = "smallcaps"
)

// tier types as declared in a language's schema
const (
	TIERMORPH  = "morph"
	TIERSIMPLE = "simple"
	TIERTEXT   = "text" // the authoring format's name for a simple tier
)
