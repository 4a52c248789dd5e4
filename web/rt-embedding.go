//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/lnch"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/labstack/echo/v4"
	"net/http"
	"os"
	"text/template"
)

//
// ROUTES
//

// RtEmbCSS - send "multigloss.css" after building it as per the configuration
func RtEmbCSS(c echo.Context) error {
	css, err := StyleSheet(lnch.Config)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=UTF-8", []byte(css))
}

// RtEmbJS - send "multigloss.js"
func RtEmbJS(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJavaScriptCharsetUTF8, []byte(vv.MULTIGLOSSJS))
}

// StyleSheet - the custom CSS file if one is configured and readable; otherwise the built-in one
func StyleSheet(cc *str.CurrentConfiguration) (string, error) {
	const (
		FAIL = "could not read CSS file '%s'; using default instead"
	)

	if cc.CustomCSS {
		uh, _ := os.UserHomeDir()
		f := fmt.Sprintf(vv.CONFIGALTAPTH, uh) + vv.CUSTOMCSSFILENAME
		b, err := os.ReadFile(f)
		if err == nil {
			return string(b), nil
		}
		Msg.CRIT(fmt.Sprintf(FAIL, f))
	}

	tmpl, err := template.New("css").Parse(vv.MULTIGLOSSCSS)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	if err = tmpl.Execute(&b, map[string]interface{}{"bw": cc.BlackAndWhite}); err != nil {
		return "", err
	}
	return b.String(), nil
}
