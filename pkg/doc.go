// Package pkg provides the libraries behind the deprecaudit command.
//
// # Overview
//
// deprecaudit walks a directory of project records (one YAML file per
// project, each linking a source repository and a homepage) and tags the
// projects that look abandoned with the "deprecated" category. The pkg
// directory is organized as follows:
//
//  1. [audit] - Evidence collection, the per-record verdict and the record update
//  2. [record] - Loading and rewriting project records
//  3. [integrations] - HTTP clients for project pages and GitHub activity feeds
//  4. [cache] - Optional evidence cache (file or Redis)
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The data flow of one run:
//
//	_data/projects/*.yml
//	         ↓
//	    [record] package (parse records, extract URLs)
//	         ↓
//	    [audit] Collector (one fetch per unique URL and repository)
//	         ↓
//	    [audit] Decide + Apply (per record)
//	         ↓
//	    rewritten records + "Updated N project files."
//
// # Quick Start
//
//	import (
//	    "github.com/drupaltools/deprecaudit/pkg/audit"
//	    "github.com/drupaltools/deprecaudit/pkg/integrations"
//	    "github.com/drupaltools/deprecaudit/pkg/integrations/github"
//	    "github.com/drupaltools/deprecaudit/pkg/integrations/page"
//	)
//
//	client := integrations.NewClient(integrations.Options{})
//	collector := &audit.Collector{
//	    Pages:    page.NewFetcher(client, nil),
//	    Activity: github.NewClient(client, nil),
//	}
//	report, err := audit.New(collector, audit.Options{Dir: "_data/projects"}).Run(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Updated %d project files.\n", report.Modified)
//
// [audit]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/audit
// [record]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/record
// [integrations]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/drupaltools/deprecaudit/pkg/buildinfo
package pkg
