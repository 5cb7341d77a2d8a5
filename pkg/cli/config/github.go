package config

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// GitHub holds issue tracker configuration
type GitHub struct {
	User      string
	Repo      string
	TokenFile string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-user",
			Usage:       "GitHub account owning the release repository",
			Required:    true,
			Destination: &c.User,
			Sources:     cli.EnvVars("SHIFTIT_GITHUB_USER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "GitHub repository name",
			Required:    true,
			Destination: &c.Repo,
			Sources:     cli.EnvVars("SHIFTIT_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-token-file",
			Usage:       "Path to the release automation token (plaintext or .gpg encrypted)",
			Destination: &c.TokenFile,
			Sources:     cli.EnvVars("SHIFTIT_GITHUB_TOKEN"),
		},
	}
}

// TokenPath returns the configured token location, falling back to the fixed
// path under the user's home directory.
func (c *GitHub) TokenPath() string {
	if c.TokenFile != "" {
		return c.TokenFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "github.token"
	}
	return filepath.Join(home, "Keys", "ShiftIt", "github.token")
}
