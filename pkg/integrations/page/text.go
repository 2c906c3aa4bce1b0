package page

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// inlineElements do not separate words when their tags are dropped.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "data": true, "dfn": true, "em": true, "font": true, "i": true,
	"kbd": true, "mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true,
}

// DocumentText decodes body to UTF-8 and returns the text to scan.
//
// The charset comes from a BOM, the Content-Type header or an HTML meta tag.
// Without one, valid UTF-8 is kept as is and anything else is read as
// windows-1252. Bytes that do not decode become U+FFFD. HTML documents
// are reduced to their text content with script, style, noscript and template
// elements removed; text on either side of a block-level tag is kept apart by
// whitespace. Other bodies are returned as decoded text.
func DocumentText(body []byte, contentType string) string {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	enc, _, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		decoded = body
	}
	text := strings.ToValidUTF8(string(decoded), "\uFFFD")

	if !isHTML(contentType) {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(separateBlocks(text)))
	if err != nil {
		return text
	}
	doc.Find("script, style, noscript, template").Remove()
	return doc.Text()
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// separateBlocks copies the markup token by token, adding a space after
// every tag that is not an inline element. Stray tags the parser would drop
// still leave their space behind.
func separateBlocks(text string) []byte {
	var b bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return b.Bytes()
		}
		b.Write(z.Raw())
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); !inlineElements[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}
