package page

import (
	"strings"
	"testing"
)

func TestDocumentText(t *testing.T) {
	tests := []struct {
		name        string
		body        []byte
		contentType string
		contains    string
		excludes    string
	}{
		{
			name:        "html strips markup",
			body:        []byte(`<p>No longer <em>maintained</em></p>`),
			contentType: "text/html; charset=utf-8",
			contains:    "No longer maintained",
			excludes:    "<em>",
		},
		{
			name:        "html drops scripts and styles",
			body:        []byte(`<html><head><style>.deprecated{}</style><script>deprecated()</script></head><body>hello</body></html>`),
			contentType: "text/html",
			contains:    "hello",
			excludes:    "deprecated",
		},
		{
			name:        "plain text kept verbatim",
			body:        []byte("<not> html"),
			contentType: "text/plain",
			contains:    "<not> html",
		},
		{
			name:        "latin1 declared",
			body:        []byte("Projet d\xe9pr\xe9ci\xe9"),
			contentType: "text/plain; charset=iso-8859-1",
			contains:    "Projet déprécié",
		},
		{
			name:        "invalid utf-8 tolerated",
			body:        []byte("ok \xff\xfe no longer maintained"),
			contentType: "text/plain; charset=utf-8",
			contains:    "no longer maintained",
		},
		{
			name:     "sniffed html",
			body:     []byte(`<!DOCTYPE html><html><body><p>tool is deprecated</p></body></html>`),
			contains: "tool is deprecated",
			excludes: "<p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DocumentText(tt.body, tt.contentType)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("DocumentText() = %q, want it to contain %q", got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("DocumentText() = %q, should not contain %q", got, tt.excludes)
			}
		})
	}
}

func TestDocumentTextSeparatesBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"table cells", `<table><tr><td>Status: archived</td><td>deprecated</td></tr></table>`, "Status: archived deprecated"},
		{"stray cells", `<td>Status: archived</td><td>deprecated</td>`, "Status: archived deprecated"},
		{"list items", `<ul><li>Deprecated</li><li>module</li></ul>`, "Deprecated module"},
		{"line break", `no longer<br>maintained`, "no longer maintained"},
		{"inline markup joins", `<p>dep<b>recat</b>ed tool</p>`, "deprecated tool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(strings.Fields(DocumentText([]byte(tt.body), "text/html")), " ")
			if got != tt.want {
				t.Errorf("DocumentText() = %q, want %q", got, tt.want)
			}
			if _, ok := MatchDeprecationNotice(DocumentText([]byte(tt.body), "text/html")); !ok {
				t.Errorf("MatchDeprecationNotice(%q) found no notice", got)
			}
		})
	}
}
