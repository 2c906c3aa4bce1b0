package audit

import (
	"time"

	"github.com/drupaltools/deprecaudit/pkg/integrations/github"
	"github.com/drupaltools/deprecaudit/pkg/record"
)

// DefaultStaleAfter is how long a repository may go without commits before it
// counts as stale.
const DefaultStaleAfter = 730 * 24 * time.Hour

// CategoryDeprecated is the category entry that marks a deprecated record.
const CategoryDeprecated = "deprecated"

// Verdict is the per-record outcome of combining the collected evidence.
type Verdict struct {
	KeywordHit bool
	Reachable  bool
	Stale      bool
}

// ShouldDeprecate reports whether the record should carry the deprecated
// category.
func (v Verdict) ShouldDeprecate() bool {
	return v.KeywordHit || v.Stale || !v.Reachable
}

// Reason names the signal behind a deprecation, or "" when there is none.
// When several fire, the keyword notice wins over staleness, which wins over
// reachability.
func (v Verdict) Reason() string {
	switch {
	case v.KeywordHit:
		return "keyword"
	case v.Stale:
		return "stale"
	case !v.Reachable:
		return "unreachable"
	}
	return ""
}

// Threshold returns the activity cutoff for a run that started at start.
// Activity strictly before the cutoff is stale.
func Threshold(start time.Time, staleAfter time.Duration) time.Time {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return start.Add(-staleAfter)
}

// Decide combines a record's URLs with the evidence tables. URLs missing from
// the tables count as unreachable with no notice. Staleness is not evaluated
// when any page carries a deprecation notice.
func Decide(urls []string, ev *Evidence, threshold time.Time) Verdict {
	var v Verdict
	for _, u := range urls {
		p := ev.Pages[u]
		v.KeywordHit = v.KeywordHit || p.KeywordHit
		v.Reachable = v.Reachable || p.Reachable
	}
	if v.KeywordHit {
		return v
	}
	for _, u := range urls {
		id, ok := github.ParseRepoURL(u)
		if !ok {
			continue
		}
		if at := ev.Activity[id]; at != nil && at.Before(threshold) {
			v.Stale = true
			break
		}
	}
	return v
}

// Record change actions reported to the audit hooks.
const (
	ActionDeprecated    = "deprecated"    // category added
	ActionRestored      = "restored"      // category removed
	ActionUnrecommended = "unrecommended" // already deprecated, recommended flag dropped
)

// Apply brings rec's categories in line with v and reports whether the record
// changed. Deprecating also drops a boolean recommended flag.
func Apply(rec *record.Record, v Verdict) bool {
	if !v.ShouldDeprecate() {
		return rec.RemoveCategory(CategoryDeprecated)
	}
	changed := rec.AddCategory(CategoryDeprecated)
	if rec.Recommended() {
		changed = rec.RemoveRecommended() || changed
	}
	return changed
}
