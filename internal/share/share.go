package share

import "strings"

// DefaultComposerURL is the warpcast cast composer
const DefaultComposerURL = "https://warpcast.com/~/compose"

// ComposeURL builds the composer deep link that embeds clipURL.
// clipURL is not validated.
func ComposeURL(composerURL, clipURL string) string {
	return composerURL + "?embeds[]=" + EncodeURIComponent(clipURL)
}

// Service builds share links against a configured composer
type Service struct {
	composerURL string
}

// NewService creates a share service, falling back to the warpcast composer
func NewService(composerURL string) *Service {
	if composerURL == "" {
		composerURL = DefaultComposerURL
	}
	return &Service{composerURL: composerURL}
}

// Link returns the composer deep link for clipURL
func (s *Service) Link(clipURL string) string {
	return ComposeURL(s.composerURL, clipURL)
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent escapes s the way browsers' encodeURIComponent does:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
// url.QueryEscape differs on space and on ! ' ( ) *.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
