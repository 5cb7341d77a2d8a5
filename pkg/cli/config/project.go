package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Project holds the application project configuration
type Project struct {
	Name       string
	Dir        string
	SignUpdate string
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project-name",
			Usage:       "Application name",
			Value:       "ShiftIt",
			Destination: &c.Name,
			Sources:     cli.EnvVars("SHIFTIT_PROJECT_NAME"),
		},
		&cli.StringFlag{
			Name:        "project-dir",
			Usage:       "Project repository root (default: current directory)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("SHIFTIT_PROJECT_DIR"),
		},
		&cli.StringFlag{
			Name:        "sign-update",
			Usage:       "Path to the Sparkle sign_update tool",
			Destination: &c.SignUpdate,
			Sources:     cli.EnvVars("SHIFTIT_SIGN_UPDATE"),
		},
	}
}

// ProjectDir returns the configured repository root, defaulting to the
// current working directory.
func (c *Project) ProjectDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", goerr.Wrap(err, "failed to determine working directory")
	}
	return dir, nil
}

// SignTool returns the signing tool path, defaulting to the copy bundled
// with the application sources.
func (c *Project) SignTool(projectDir string) string {
	if c.SignUpdate != "" {
		return c.SignUpdate
	}
	return filepath.Join(projectDir, c.Name, "bin", "sign_update")
}
