package gift

import (
	"fmt"
	"net/url"
	"time"
)

// Glyph is the decoration used for a result in the archive.
type Glyph struct {
	Name  string
	Icon  string
	Label string
}

var glyphs = []Glyph{
	{Name: "present", Icon: "🎁", Label: "プレゼント"},
	{Name: "candy", Icon: "🍬", Label: "キャンディ"},
	{Name: "socks", Icon: "🧦", Label: "くつした"},
}

// GiftGlyph picks a glyph from the sum of the id's character codes so the
// same result always gets the same decoration, wherever it sits in a list.
func GiftGlyph(id string) Glyph {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return glyphs[sum%len(glyphs)]
}

// ShareText is the message posted when a result is shared.
func ShareText(r DiagnosticResult) string {
	return fmt.Sprintf("私のAWS Identity 2025は「%s」でした！\n%s\n\n#AWSIdentityGift2025 #AWS",
		r.Service.ServiceName, r.Catchphrase)
}

// ShareURL builds a tweet intent link carrying the share text and a link.
func ShareURL(text, link string) string {
	q := url.Values{}
	q.Set("text", text)
	if link != "" {
		q.Set("url", link)
	}
	return "https://twitter.com/intent/tweet?" + q.Encode()
}

// FormatTimestamp renders t the way results are dated on screen.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006年1月2日 15:04")
}

// FormatShortTimestamp renders t compactly for list rows.
func FormatShortTimestamp(t time.Time) string {
	return t.Local().Format("1月2日 15:04")
}
