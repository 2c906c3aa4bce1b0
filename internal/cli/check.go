package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/drupaltools/deprecaudit/pkg/audit"
	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/errors"
	"github.com/drupaltools/deprecaudit/pkg/integrations/github"
	"github.com/drupaltools/deprecaudit/pkg/integrations/page"
)

// checkCommand creates the check command, which shows the evidence the audit
// would gather for a single URL. It bypasses the evidence cache.
func (c *CLI) checkCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check <url|owner/name>",
		Short: "Show the audit evidence for one URL",
		Long: `Fetch one URL the way the audit does and show whether it is reachable,
which deprecation notice it carries and, for GitHub repository URLs, when
the repository last saw a commit. A bare owner/name is read as a GitHub
repository.`,
		Example: `  deprecaudit check https://www.drush.org
  deprecaudit check drush-ops/drush`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := checkTarget(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			client := newClient(cfg, cache.NewNullCache())

			spin := newSpinnerWithContext(ctx, "Fetching "+url)
			spin.Start()
			res := checkResult{Inspection: page.NewFetcher(client, logger).Inspect(ctx, url)}
			if repo, ok := github.ParseRepoURL(url); ok {
				res.Repo = repo
				res.LastActivity, res.HasActivity = github.NewClient(client, logger).LastActivity(ctx, repo)
				res.Threshold = audit.Threshold(time.Now(), cfg.StaleAfter.Duration)
			}
			spin.Stop()
			if err := ctx.Err(); err != nil {
				return err
			}

			printCheck(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ./"+configFile+" if present)")
	return cmd
}

// checkTarget resolves the check argument to a URL.
func checkTarget(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		return arg, errors.ValidateURL(arg)
	}
	repo, err := github.ParseRepoRef(arg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%q is neither a URL nor owner/name", arg)
	}
	return github.RepoURL(repo), nil
}

// checkResult is everything the check command reports for one URL.
type checkResult struct {
	page.Inspection
	Repo         github.RepoID
	LastActivity time.Time
	HasActivity  bool
	Threshold    time.Time
}

// verdict is the verdict a record linking only this URL would get.
func (r checkResult) verdict() audit.Verdict {
	ev := &audit.Evidence{
		Pages:    map[string]page.Evidence{r.URL: r.Evidence},
		Activity: map[github.RepoID]*time.Time{},
	}
	if r.HasActivity {
		at := r.LastActivity
		ev.Activity[r.Repo] = &at
	}
	return audit.Decide([]string{r.URL}, ev, r.Threshold)
}

func printCheck(w io.Writer, r checkResult) {
	fmt.Fprintln(w, StyleTitle.Render(r.URL))

	status := "no response"
	if r.StatusCode > 0 {
		status = strconv.Itoa(r.StatusCode)
	}
	printKeyValue(w, "Status", status)
	if r.FinalURL != "" && r.FinalURL != r.URL {
		printKeyValue(w, "Redirected", StyleLink.Render(r.FinalURL))
	}
	if r.Err != nil {
		printKeyValue(w, "Error", StyleWarning.Render(r.Err.Error()))
	}
	printKeyValue(w, "Reachable", yesNo(r.Reachable))

	notice := StyleDim.Render("none")
	if r.KeywordHit {
		notice = StyleWarning.Render(strconv.Quote(r.Match))
	}
	printKeyValue(w, "Notice", notice)

	if r.Repo != "" {
		activity := StyleDim.Render("unknown")
		if r.HasActivity {
			activity = r.LastActivity.Format(time.DateOnly)
		}
		printKeyValue(w, "Repository", StyleHighlight.Render(r.Repo.String()))
		printKeyValue(w, "Last commit", activity)
	}

	v := r.verdict()
	if v.ShouldDeprecate() {
		printStatus(w, styleIconWarning.Render(iconWarning), StyleWarning.Render("would be deprecated ("+v.Reason()+")"))
		return
	}
	printStatus(w, styleIconSuccess.Render(iconSuccess), "looks maintained")
}

func yesNo(b bool) string {
	if b {
		return StyleSuccess.Render("yes")
	}
	return StyleWarning.Render("no")
}
