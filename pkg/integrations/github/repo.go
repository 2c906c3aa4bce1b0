package github

import (
	"regexp"
	"strings"
)

// Host is the source-control host whose URLs are classified.
const Host = "github.com"

var repoURLPattern = regexp.MustCompile(`^https?://github\.com/([^/?#]+)/([^/?#]+)`)

// RepoID is a canonical "owner/name" repository identifier.
type RepoID string

// NewRepoID joins owner and name.
func NewRepoID(owner, name string) RepoID {
	return RepoID(owner + "/" + name)
}

// Owner returns the part before the slash.
func (r RepoID) Owner() string {
	owner, _, _ := strings.Cut(string(r), "/")
	return owner
}

// Name returns the part after the slash.
func (r RepoID) Name() string {
	_, name, _ := strings.Cut(string(r), "/")
	return name
}

func (r RepoID) String() string { return string(r) }

// ParseRepoURL maps a GitHub repository URL to its identifier.
//
// Only http(s)://github.com/<owner>/<name> URLs match. Deeper path segments,
// query strings and fragments are ignored, and a trailing ".git" is stripped
// from the name. Matching is case-sensitive. URLs on any other host, or with
// fewer than two path segments, report false.
//
//	ParseRepoURL("https://github.com/acme/widget.git") // "acme/widget", true
//	ParseRepoURL("https://example.com/acme/widget")    // "", false
func ParseRepoURL(raw string) (RepoID, bool) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	owner, name := m[1], strings.TrimSuffix(m[2], ".git")
	if owner == "" || name == "" {
		return "", false
	}
	return NewRepoID(owner, name), true
}

// RepoURL returns the canonical web URL of repo.
func RepoURL(repo RepoID) string {
	return "https://" + Host + "/" + repo.String()
}
