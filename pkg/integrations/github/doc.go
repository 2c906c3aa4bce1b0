// Package github classifies GitHub URLs and reads repository commit activity.
//
// # URL Classification
//
// [ParseRepoURL] maps a project link to a [RepoID] ("owner/name") when it
// points at a repository on github.com, and reports false for every other
// URL. This is an expected outcome, not an error: most homepages are not
// repositories.
//
// # Commit Activity
//
// [Client.LastActivity] fetches https://github.com/<owner>/<name>/commits.atom
// and returns the timestamp of the newest entry:
//
//	client := github.NewClient(integrations.NewClient(integrations.Options{}), logger)
//	ts, ok := client.LastActivity(ctx, "drush-ops/drush")
//	if ok && ts.Before(threshold) {
//	    // stale
//	}
package github
