package sales

import (
	"net/url"
	"regexp"
)

// GatePattern matches the path of a monthly sales page, e.g. /sales/2023/1.
const GatePattern = `^/sales/\d{4}/\d{1,2}/?$`

var gateRe = regexp.MustCompile(GatePattern)

// ShouldActivate reports whether path is a monthly sales page.
func ShouldActivate(path string) bool {
	return gateRe.MatchString(path)
}

// CheckURL applies ShouldActivate to the path of rawURL.
func CheckURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if !ShouldActivate(u.Path) {
		return ErrNotSalesPage
	}
	return nil
}
