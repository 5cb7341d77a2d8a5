package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/citadelgrad/shiftit-release/pkg/domain/interfaces"
	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
)

type client struct {
	githubClient *github.Client
	owner        string
	repo         string
	baseURL      string
}

// Option configures the tracker client.
type Option func(*client)

// WithBaseURL points the client at an alternative API endpoint, such as a
// GitHub Enterprise server.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a tracker client for one repository, authenticated with a
// personal access token.
func NewClient(ctx context.Context, token, owner, repo string, options ...Option) (interfaces.TrackerClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	c := &client{
		githubClient: github.NewClient(httpClient),
		owner:        owner,
		repo:         repo,
	}
	for _, opt := range options {
		opt(c)
	}

	if c.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse API base URL", goerr.V("url", c.baseURL))
		}
		c.githubClient.BaseURL = u
	}

	return c, nil
}

// Milestones lists all milestones of the repository in API order, following
// pagination.
func (c *client) Milestones(ctx context.Context) ([]model.Milestone, error) {
	opt := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var milestones []model.Milestone
	for {
		page, resp, err := c.githubClient.Issues.ListMilestones(ctx, c.owner, c.repo, opt)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list milestones",
				goerr.V("owner", c.owner),
				goerr.V("repo", c.repo),
			)
		}

		for _, m := range page {
			milestones = append(milestones, model.Milestone{
				Number: m.GetNumber(),
				Title:  m.GetTitle(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return milestones, nil
}

// IssuesByMilestone lists issues attached to the milestone filtered by state,
// following pagination.
func (c *client) IssuesByMilestone(ctx context.Context, milestone int, state string) ([]model.Issue, error) {
	opt := &github.IssueListByRepoOptions{
		Milestone:   strconv.Itoa(milestone),
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var issues []model.Issue
	for {
		page, resp, err := c.githubClient.Issues.ListByRepo(ctx, c.owner, c.repo, opt)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list issues",
				goerr.V("owner", c.owner),
				goerr.V("repo", c.repo),
				goerr.V("milestone", milestone),
				goerr.V("state", state),
			)
		}

		for _, issue := range page {
			issues = append(issues, model.Issue{
				Number:   issue.GetNumber(),
				Title:    issue.GetTitle(),
				HTMLURL:  issue.GetHTMLURL(),
				ClosedAt: issue.GetClosedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opt.ListOptions.Page = resp.NextPage
	}

	return issues, nil
}
