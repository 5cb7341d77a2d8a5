package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/citadelgrad/shiftit-release/pkg/cli/config"
	"github.com/citadelgrad/shiftit-release/pkg/domain/interfaces"
	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
	"github.com/citadelgrad/shiftit-release/pkg/infra/cmdexec"
	githubinfra "github.com/citadelgrad/shiftit-release/pkg/infra/github"
	"github.com/citadelgrad/shiftit-release/pkg/infra/gitrepo"
	"github.com/citadelgrad/shiftit-release/pkg/usecase"
)

// releaseEnv wires the pipeline collaborators for one command invocation.
// The credential resolver is closed when the command finishes so decrypted
// token material never outlives the process.
type releaseEnv struct {
	rc    *model.ReleaseContext
	pipe  *usecase.Pipeline
	creds *usecase.CredentialResolver
}

func (e *releaseEnv) Close() {
	e.creds.Close()
}

// newReleaseEnv constructs the release context (version read, derived paths)
// and the pipeline. The tracker client is only built for commands that talk
// to the issue tracker, so build/archive runs need no token.
func newReleaseEnv(ctx context.Context, githubCfg *config.GitHub, projectCfg *config.Project, needTracker bool) (*releaseEnv, error) {
	runner := cmdexec.New()
	creds := usecase.NewCredentialResolver(runner)

	projectDir, err := projectCfg.ProjectDir()
	if err != nil {
		creds.Close()
		return nil, err
	}

	// The context is derived from the version exactly once per run.
	plistPath := filepath.Join(projectDir, projectCfg.Name, projectCfg.Name+"-Info.plist")
	version, err := usecase.ReadBundleVersion(ctx, runner, plistPath)
	if err != nil {
		creds.Close()
		return nil, err
	}

	rc := model.NewReleaseContext(projectCfg.Name, githubCfg.User, githubCfg.Repo,
		version, projectDir, projectCfg.SignTool(projectDir))

	var tracker interfaces.TrackerClient
	if needTracker {
		token, err := usecase.LoadToken(ctx, creds, githubCfg.TokenPath())
		if err != nil {
			creds.Close()
			return nil, err
		}
		tracker, err = githubinfra.NewClient(ctx, token, githubCfg.User, githubCfg.Repo)
		if err != nil {
			creds.Close()
			return nil, err
		}
	}

	pipe := usecase.NewPipeline(rc, tracker, runner, gitrepo.New(projectDir))

	return &releaseEnv{rc: rc, pipe: pipe, creds: creds}, nil
}

func cmdInfo() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
	)

	return &cli.Command{
		Name:  "info",
		Usage: "Print the derived build and release configuration",
		Flags: append(githubCfg.Flags(), projectCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := newReleaseEnv(ctx, &githubCfg, &projectCfg, false)
			if err != nil {
				return err
			}
			defer env.Close()

			fmt.Println("Build info:")
			for _, pair := range env.rc.InfoPairs() {
				fmt.Printf("\t%s: %s\n", pair.Label, pair.Value)
			}
			fmt.Printf("\tgithub_token_file: %s\n", githubCfg.TokenPath())
			return nil
		},
	}
}

func cmdBuild() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
	)

	return &cli.Command{
		Name:  "build",
		Usage: "Build the release configuration with xcodebuild",
		Flags: append(githubCfg.Flags(), projectCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := newReleaseEnv(ctx, &githubCfg, &projectCfg, false)
			if err != nil {
				return err
			}
			defer env.Close()

			return env.pipe.Build(ctx)
		},
	}
}

func cmdArchive() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
	)

	return &cli.Command{
		Name:  "archive",
		Usage: "Build and compress the application bundle",
		Flags: append(githubCfg.Flags(), projectCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := newReleaseEnv(ctx, &githubCfg, &projectCfg, false)
			if err != nil {
				return err
			}
			defer env.Close()

			return env.pipe.Archive(ctx)
		},
	}
}

func cmdReleaseNotes() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
	)

	return &cli.Command{
		Name:  "release-notes",
		Usage: "Generate the HTML release notes from closed milestone issues",
		Flags: append(githubCfg.Flags(), projectCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := newReleaseEnv(ctx, &githubCfg, &projectCfg, true)
			if err != nil {
				return err
			}
			defer env.Close()

			return env.pipe.ReleaseNotes(ctx)
		},
	}
}

func cmdAppcast() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
	)

	return &cli.Command{
		Name:    "appcast",
		Aliases: []string{"feed"},
		Usage:   "Archive, sign and generate the update feed with release notes",
		Flags:   append(githubCfg.Flags(), projectCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := newReleaseEnv(ctx, &githubCfg, &projectCfg, true)
			if err != nil {
				return err
			}
			defer env.Close()

			return env.pipe.Appcast(ctx)
		},
	}
}

func cmdRelease() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
	)

	return &cli.Command{
		Name:  "release",
		Usage: "Run the full release pipeline and print the remaining manual steps",
		Flags: append(githubCfg.Flags(), projectCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := newReleaseEnv(ctx, &githubCfg, &projectCfg, true)
			if err != nil {
				return err
			}
			defer env.Close()

			return env.pipe.Release(ctx)
		},
	}
}
