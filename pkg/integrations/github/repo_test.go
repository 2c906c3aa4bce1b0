package github

import "testing"

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		url    string
		want   RepoID
		wantOK bool
	}{
		{"https://github.com/acme/widget", "acme/widget", true},
		{"https://github.com/acme/widget.git", "acme/widget", true},
		{"http://github.com/acme/widget", "acme/widget", true},
		{"https://github.com/acme/widget/", "acme/widget", true},
		{"https://github.com/acme/widget/tree/8.x-1.x", "acme/widget", true},
		{"https://github.com/acme/widget?tab=readme", "acme/widget", true},
		{"https://github.com/acme/widget#install", "acme/widget", true},
		{"https://github.com/Acme/Widget", "Acme/Widget", true},
		{"https://github.com/acme/widget.github.io", "acme/widget.github.io", true},
		{"https://example.com/acme/widget", "", false},
		{"https://gitlab.com/acme/widget", "", false},
		{"https://www.github.com/acme/widget", "", false},
		{"https://github.com/acme", "", false},
		{"https://github.com/acme/", "", false},
		{"https://github.com/", "", false},
		{"https://github.com/acme/.git", "", false},
		{"git@github.com:acme/widget.git", "", false},
		{"https://github.com.evil.example/acme/widget", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := ParseRepoURL(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseRepoURL(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRepoIDParts(t *testing.T) {
	id := NewRepoID("drush-ops", "drush")
	if id.String() != "drush-ops/drush" {
		t.Errorf("String() = %q", id)
	}
	if id.Owner() != "drush-ops" || id.Name() != "drush" {
		t.Errorf("Owner/Name = %q/%q", id.Owner(), id.Name())
	}
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		ref     string
		want    RepoID
		wantErr bool
	}{
		{"acme/widget", "acme/widget", false},
		{"drush-ops/drush.launcher", "drush-ops/drush.launcher", false},
		{"acme", "", true},
		{"/widget", "", true},
		{"acme/", "", true},
		{"-acme/widget", "", true},
		{"acme/wid get", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseRepoRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRepoRef(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRepoURL(t *testing.T) {
	if got := RepoURL("drush-ops/drush"); got != "https://github.com/drush-ops/drush" {
		t.Errorf("RepoURL() = %q", got)
	}
	if id, ok := ParseRepoURL(RepoURL("acme/widget")); !ok || id != "acme/widget" {
		t.Errorf("ParseRepoURL(RepoURL()) = %q, %v", id, ok)
	}
}
