//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// c.JSONPretty() is a waste of memory and cycles unless you are debugging and want to inspect the json manually
	return c.JSON(http.StatusOK, jsr)
}
