// Package audit decides which project records should be flagged deprecated.
//
// An audit runs in two phases separated by a full barrier:
//
//  1. [Collector.Collect] fetches every unique page URL and every unique
//     GitHub repository referenced by the records, using a fixed pool of
//     workers, and returns the results as lookup tables ([Evidence]).
//  2. For each record, [Decide] combines the record's URLs with the tables
//     into a [Verdict] and [Apply] brings the record's category list in line
//     with it.
//
// [Auditor] drives both phases over a directory of records and writes back
// only the records that changed.
//
// # Signals
//
// A record should be deprecated when any of the following holds:
//
//   - a linked page carries a deprecation notice (KeywordHit)
//   - no linked page is reachable, including records without URLs
//   - a linked GitHub repository has no commit activity since the staleness
//     threshold (Stale)
//
// Staleness is only checked when no page carries a notice.
package audit
