package model

import (
	"fmt"
	"path/filepath"
)

// ReleaseContext carries every path and URL derived for one release run.
// It is constructed once at startup from the bundle version and the project
// naming convention, and is never mutated afterwards.
type ReleaseContext struct {
	Name    string // Application name (e.g. "ShiftIt")
	Owner   string // Tracker account owning the repository
	Repo    string // Tracker repository name
	Version string // Bundle version read from the descriptor

	ProjectDir string // Repository root
	SrcDir     string // Xcode project directory
	BuildDir   string // Archive output directory
	AppDir     string // Built .app bundle
	InfoPlist  string // Application descriptor (Info.plist)

	ArchiveName string
	ArchivePath string

	DownloadURL     string // Release asset location under the version tag
	ReleaseNotesURL string // Public location of the rendered HTML notes
	IssuesURL       string
	MilestonesURL   string
	ReleasesURL     string

	ReleaseNotesFile string
	AppcastFile      string

	SignUpdateTool string
}

// NewReleaseContext derives the release layout from the naming convention:
// archive {name}-{version}.zip, download URL under the version-{version} tag,
// generated documents in the release/ directory of the project.
func NewReleaseContext(name, owner, repo, version, projectDir, signTool string) *ReleaseContext {
	repoURL := fmt.Sprintf("https://github.com/%s/%s", owner, repo)
	archiveName := fmt.Sprintf("%s-%s.zip", name, version)
	notesName := fmt.Sprintf("release-notes-%s.html", version)
	srcDir := filepath.Join(projectDir, name)

	return &ReleaseContext{
		Name:    name,
		Owner:   owner,
		Repo:    repo,
		Version: version,

		ProjectDir: projectDir,
		SrcDir:     srcDir,
		BuildDir:   filepath.Join(projectDir, "build"),
		AppDir:     filepath.Join(srcDir, "build", "Release", name+".app"),
		InfoPlist:  filepath.Join(srcDir, name+"-Info.plist"),

		ArchiveName: archiveName,
		ArchivePath: filepath.Join(projectDir, "build", archiveName),

		DownloadURL: fmt.Sprintf("%s/releases/download/version-%s/%s", repoURL, version, archiveName),
		ReleaseNotesURL: fmt.Sprintf(
			"http://htmlpreview.github.com/?https://raw.github.com/%s/%s/master/release/%s",
			owner, repo, notesName),
		IssuesURL:     repoURL + "/issues",
		MilestonesURL: repoURL + "/milestones",
		ReleasesURL:   repoURL + "/releases",

		ReleaseNotesFile: filepath.Join(projectDir, "release", notesName),
		AppcastFile:      filepath.Join(projectDir, "release", "appcast.xml"),

		SignUpdateTool: signTool,
	}
}

// MilestoneURL returns the issue listing filtered to the given milestone.
func (c *ReleaseContext) MilestoneURL(number int) string {
	return fmt.Sprintf("%s?milestone=%d", c.IssuesURL, number)
}

// InfoPair is one labeled configuration value for the info report.
type InfoPair struct {
	Label string
	Value string
}

// InfoPairs enumerates the derived configuration for the info action. The
// list is explicit so the report does not depend on reflection over fields.
func (c *ReleaseContext) InfoPairs() []InfoPair {
	return []InfoPair{
		{"name", c.Name},
		{"version", c.Version},
		{"github_user", c.Owner},
		{"github_repo", c.Repo},
		{"project_dir", c.ProjectDir},
		{"src_dir", c.SrcDir},
		{"build_dir", c.BuildDir},
		{"app_dir", c.AppDir},
		{"info_plist", c.InfoPlist},
		{"archive_name", c.ArchiveName},
		{"archive_path", c.ArchivePath},
		{"download_url", c.DownloadURL},
		{"release_notes_url", c.ReleaseNotesURL},
		{"release_notes_file", c.ReleaseNotesFile},
		{"appcast_file", c.AppcastFile},
		{"sign_update_tool", c.SignUpdateTool},
	}
}
