package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/citadelgrad/shiftit-release/pkg/domain/interfaces"
	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
	"github.com/citadelgrad/shiftit-release/pkg/domain/types"
	"github.com/citadelgrad/shiftit-release/pkg/infra/plistfile"
	"github.com/citadelgrad/shiftit-release/pkg/utils/mustache"
)

// feedURLKey is the descriptor entry naming the update feed location.
const feedURLKey = "SUFeedURL"

// Pipeline drives the release stages in order: build, archive, sign, release
// notes, appcast, checklist. Stages run strictly sequentially with no retry;
// any fatal stage error propagates to the caller and halts the run, while
// advisory findings are logged and execution continues.
type Pipeline struct {
	rc      *model.ReleaseContext
	tracker interfaces.TrackerClient
	runner  interfaces.CommandRunner
	repo    interfaces.RepoInspector

	now func() time.Time
	out io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the clock used for the appcast publish date.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithOutput redirects the human-readable report output (default stdout).
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

// NewPipeline creates a release pipeline over the given collaborators.
func NewPipeline(rc *model.ReleaseContext, tracker interfaces.TrackerClient, runner interfaces.CommandRunner, repo interfaces.RepoInspector, opts ...Option) *Pipeline {
	p := &Pipeline{
		rc:      rc,
		tracker: tracker,
		runner:  runner,
		repo:    repo,
		now:     time.Now,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build compiles the release configuration with the external build tool.
func (p *Pipeline) Build(ctx context.Context) error {
	ctxlog.From(ctx).Info("building release configuration",
		slog.String("target", p.rc.Name),
		slog.String("dir", p.rc.SrcDir),
	)

	if _, err := p.runner.Run(ctx, p.rc.SrcDir, "xcodebuild",
		"-target", p.rc.Name, "-configuration", "Release"); err != nil {
		return goerr.Wrap(err, "build failed", goerr.V("target", p.rc.Name))
	}

	return nil
}

// Archive builds and compresses the application bundle to the deterministic
// archive path.
func (p *Pipeline) Archive(ctx context.Context) error {
	if err := p.Build(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(p.rc.BuildDir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create build directory", goerr.V("dir", p.rc.BuildDir))
	}

	ctxlog.From(ctx).Info("archiving application bundle",
		slog.String("app", p.rc.AppDir),
		slog.String("archive", p.rc.ArchivePath),
	)

	if _, err := p.runner.Run(ctx, "", "ditto", "-ck", "--keepParent",
		p.rc.AppDir, p.rc.ArchivePath); err != nil {
		return goerr.Wrap(err, "archiving failed", goerr.V("archive", p.rc.ArchivePath))
	}

	return nil
}

// sign runs the external signing tool over the archive and returns the
// signature token. The archive must already exist; a successful run with
// empty output is still fatal since an unsigned feed must not be published.
func (p *Pipeline) sign(ctx context.Context) (string, error) {
	if _, err := os.Stat(p.rc.ArchivePath); err != nil {
		return "", goerr.Wrap(err, "archive not found before signing", goerr.V("archive", p.rc.ArchivePath))
	}

	out, err := p.runner.Run(ctx, "", p.rc.SignUpdateTool, p.rc.ArchivePath)
	if err != nil {
		return "", goerr.Wrap(err, "signing tool failed", goerr.V("tool", p.rc.SignUpdateTool))
	}

	signature := strings.TrimSpace(out)
	if signature == "" {
		return "", goerr.Wrap(types.ErrEmptySignature, "refusing to publish an unsigned feed",
			goerr.V("tool", p.rc.SignUpdateTool),
			goerr.V("archive", p.rc.ArchivePath),
		)
	}

	return signature, nil
}

// ReleaseNotes renders the HTML release notes for the current version.
func (p *Pipeline) ReleaseNotes(ctx context.Context) error {
	notes, err := p.renderNotes(ctx, releaseNotesHTMLTemplate)
	if err != nil {
		return err
	}

	if err := p.writeDocument(p.rc.ReleaseNotesFile, notes); err != nil {
		return err
	}

	ctxlog.From(ctx).Info("written release notes", slog.String("path", p.rc.ReleaseNotesFile))
	return nil
}

// Appcast produces the update feed: archive and sign the build, render the
// notes, then write the feed document carrying the signature.
func (p *Pipeline) Appcast(ctx context.Context) error {
	// The descriptor must already point at the feed we are about to write.
	feedURL, err := plistfile.StringKey(p.rc.InfoPlist, feedURLKey)
	if err != nil {
		return err
	}

	if err := p.Archive(ctx); err != nil {
		return err
	}

	signature, err := p.sign(ctx)
	if err != nil {
		return err
	}

	if err := p.ReleaseNotes(ctx); err != nil {
		return err
	}

	info, err := os.Stat(p.rc.ArchivePath)
	if err != nil {
		return goerr.Wrap(err, "failed to stat archive", goerr.V("archive", p.rc.ArchivePath))
	}

	doc, err := mustache.Render(appcastTemplate, map[string]any{
		"proj_name":              p.rc.Name,
		"proj_appcast_url":       feedURL,
		"proj_version":           p.rc.Version,
		"proj_release_notes_url": p.rc.ReleaseNotesURL,
		"date":                   p.now().Format(time.RFC1123Z),
		"download_url":           p.rc.DownloadURL,
		"download_size":          info.Size(),
		"download_signature":     signature,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to render appcast")
	}

	if err := p.writeDocument(p.rc.AppcastFile, doc); err != nil {
		return err
	}

	ctxlog.From(ctx).Info("written appcast", slog.String("path", p.rc.AppcastFile))
	return nil
}

// Release runs the advisory preflight checks, produces the appcast (and with
// it the whole build/sign/notes chain), and reports the remaining manual
// publishing steps.
func (p *Pipeline) Release(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	if dirty, err := p.repo.HasUncommittedChanges(); err != nil {
		logger.Warn("unable to inspect working tree", slog.Any("error", err))
	} else if dirty {
		logger.Warn("there are pending changes in the repository, run git status")
	}

	milestone, err := p.resolveMilestone(ctx)
	if err != nil {
		return err
	}

	open, err := p.tracker.IssuesByMilestone(ctx, milestone.Number, "open")
	if err != nil {
		return goerr.Wrap(err, "failed to list open issues", goerr.V("milestone", milestone.Title))
	}
	if len(open) > 0 {
		logger.Warn("there are still open issues", slog.Int("count", len(open)))
		for _, issue := range open {
			fmt.Fprintf(p.out, "\t * #%d: %s\n", issue.Number, issue.Title)
		}
	}

	if err := p.Appcast(ctx); err != nil {
		return err
	}

	return p.reportChecklist(ctx)
}

// reportChecklist prints the remaining manual steps. Automation deliberately
// stops short of publishing; this stage performs no mutation.
func (p *Pipeline) reportChecklist(ctx context.Context) error {
	markdown, err := p.renderNotes(ctx, releaseNotesMarkdownTemplate)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).FprintlnFunc()
	w := p.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 100))
	green(w, "1. Commit appcast and release notes")
	fmt.Fprintf(w, "message: \"Added appcast and release notes for the %s %s release\"\n", p.rc.Name, p.rc.Version)
	green(w, "2. Finish the git flow")
	green(w, "3. Close milestone at: "+p.rc.MilestonesURL)
	green(w, "4. Draft a new release at: "+p.rc.ReleasesURL+" with:")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	fmt.Fprintln(w, "tag: version-"+p.rc.Version)
	fmt.Fprintln(w, "title: "+p.rc.Version)
	fmt.Fprintln(w, "description:")
	fmt.Fprintln(w, markdown)
	fmt.Fprintln(w, strings.Repeat("-", 100))

	return nil
}

// resolveMilestone fetches the milestones and matches the current version.
func (p *Pipeline) resolveMilestone(ctx context.Context) (model.Milestone, error) {
	milestones, err := p.tracker.Milestones(ctx)
	if err != nil {
		return model.Milestone{}, goerr.Wrap(err, "failed to list milestones")
	}

	return ResolveMilestone(p.rc.Version, milestones)
}

// renderNotes assembles the notes context from the milestone's closed issues
// and renders the given template. Tracker data is fetched fresh on each call.
func (p *Pipeline) renderNotes(ctx context.Context, template string) (string, error) {
	milestone, err := p.resolveMilestone(ctx)
	if err != nil {
		return "", err
	}

	issues, err := p.tracker.IssuesByMilestone(ctx, milestone.Number, "closed")
	if err != nil {
		return "", goerr.Wrap(err, "failed to list closed issues", goerr.V("milestone", milestone.Title))
	}
	SortIssuesByClosedAt(issues)

	items := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		items = append(items, map[string]any{
			"number":   issue.Number,
			"html_url": issue.HTMLURL,
			"title":    issue.Title,
		})
	}

	notes, err := mustache.Render(template, map[string]any{
		"has_issues":    len(issues) > 0,
		"issues":        items,
		"proj_name":     p.rc.Name,
		"proj_version":  p.rc.Version,
		"milestone_url": p.rc.MilestoneURL(milestone.Number),
		"issues_url":    p.rc.IssuesURL,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render release notes")
	}

	return notes, nil
}

func (p *Pipeline) writeDocument(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", filepath.Dir(path)))
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return goerr.Wrap(err, "failed to write document", goerr.V("path", path))
	}
	return nil
}
