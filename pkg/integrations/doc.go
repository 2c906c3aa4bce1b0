// Package integrations provides the HTTP plumbing shared by the evidence
// fetchers.
//
// # Overview
//
// Two subpackages build on [Client]:
//
//   - [page]: fetches project pages and scans them for deprecation phrases
//   - [github]: classifies GitHub URLs and reads commit activity feeds
//
// # Client
//
// [Client] applies the fixed identifying User-Agent, the per-request timeout,
// an optional global request rate, and a response body cap. It never retries:
// a failed request is recorded once as negative evidence by the caller.
//
//	client := integrations.NewClient(integrations.Options{})
//	resp, err := client.Get(ctx, "https://drupaltools.github.io")
//	if err != nil {
//	    // transport failure: ErrNetwork or ErrTimeout
//	}
//	fmt.Println(resp.StatusCode)
//
// # Caching
//
// [Client.Cached] wraps an evidence lookup with an optional [cache.Cache].
// With the default zero TTL the cache is bypassed entirely.
//
// [page]: github.com/drupaltools/deprecaudit/pkg/integrations/page
// [github]: github.com/drupaltools/deprecaudit/pkg/integrations/github
// [cache.Cache]: github.com/drupaltools/deprecaudit/pkg/cache.Cache
package integrations
