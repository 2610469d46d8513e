package sales

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var jpDateRe = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)

// NormalizeDate rewrites "2022年10月29日 04時55分" as "2022/10/29".
// Input without a year/month/day triple is returned unchanged.
func NormalizeDate(s string) string {
	m := jpDateRe.FindStringSubmatch(width.Fold.String(s))
	if m == nil {
		return s
	}
	return m[1] + "/" + pad2(m[2]) + "/" + pad2(m[3])
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// CleanAmount drops the yen sign, whitespace and thousands separators from a price cell.
// "¥ 1,234" becomes "1234". Full-width forms are folded first.
func CleanAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '¥' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, width.Fold.String(s))
}
