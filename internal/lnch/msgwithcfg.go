//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/MultiGlossServer/internal/mm"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"runtime"
	"time"
)

// NewMessageMakerConfigured - a MessageMaker that obeys Config
func NewMessageMakerConfigured() *mm.MessageMaker {
	m := NewMessageMakerWithDefaults()
	configure(m, Config)
	return m
}

// NewMessageMakerWithDefaults - what launch uses before Config has been read
func NewMessageMakerWithDefaults() *mm.MessageMaker {
	return &mm.MessageMaker{
		Lnc:  time.Now(),
		Clr:  "",
		LLvl: vv.DEFAULTGOLOGLEVEL,
		LNm:  vv.MYNAME,
		SNm:  vv.SHORTNAME,
		Ver:  vv.VERSION,
		Win:  runtime.GOOS == "windows",
	}
}

// UpdateMessageMakerWithConfig - the launch MessageMaker learns the settings ConfigAtLaunch settled on
func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	configure(m, Config)
}

func configure(m *mm.MessageMaker, cc *str.CurrentConfiguration) {
	m.BW = cc.BlackAndWhite
	m.GC = cc.ManualGC
	m.LLvl = cc.LogLevel
	m.Tick = cc.TickerActive
}
