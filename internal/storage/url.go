package storage

import (
	"fmt"
	"net/url"
)

// ClipURL builds the public gateway URL of a file stored under cid:
// https://{cid}.{gatewayDomain}/{name}
func ClipURL(cid, gatewayDomain, name string) string {
	return fmt.Sprintf("https://%s.%s/%s", cid, gatewayDomain, url.PathEscape(name))
}
