//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"runtime"
)

// injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"'; main.go hands them over

var GitCommit string
var VersSuppl string
var BuildDate string

// VersionLine - "[MGS] MultiGloss Server (v0.3.1) [git: 64974732] [gl=3; el=0]" before colorizing
func VersionLine(cc str.CurrentConfiguration) string {
	const (
		SN = "[C1%sC0] "
		GC = " [C4git: C4%sC0]"
		LL = " [C6gl=%d; el=%dC0]"
		ME = "C5%sC0 (C2v%sC0)"
	)
	gc := ""
	if GitCommit != "" {
		gc = fmt.Sprintf(GC, GitCommit)
	}
	return fmt.Sprintf(SN, vv.SHORTNAME) + fmt.Sprintf(ME, vv.MYNAME, vv.VERSION+VersSuppl) + gc + fmt.Sprintf(LL, cc.LogLevel, cc.EchoLog)
}

func PrintVersion(cc str.CurrentConfiguration) {
	fmt.Println(Msg.ColStyle(VersionLine(cc)))
}

func PrintBuildInfo(cc str.CurrentConfiguration) {
	// 	Built:	2024-03-02@11:40:19		Golang:	go1.24.1
	//	System:	darwin-arm64			Docs:	glosses
	const (
		BD = "\tS1Built:S0\tC3%sC0\t"
		GV = "\tS1Golang:S0\tC3%sC0\n"
		SY = "\tS1System:S0\tC3%s-%sC0\t"
		DD = "\t\tS1Docs:S0\tC3%sC0"
	)

	bi := ""
	if BuildDate != "" {
		bi = fmt.Sprintf(BD, BuildDate)
	}
	bi += fmt.Sprintf(GV, runtime.Version())
	bi += fmt.Sprintf(SY, runtime.GOOS, runtime.GOARCH)
	bi += fmt.Sprintf(DD, cc.DocDir)
	fmt.Println(Msg.ColStyle(bi))
}
