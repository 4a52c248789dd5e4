//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"golang.org/x/text/unicode/norm"
)

//
// STRINGS and []RUNE
//

// NFC - composed unicode: "ά" arrives in a corpus as either one or two code points; always store one
func NFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

