package model_test

import (
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
)

func TestNewReleaseContext_NamingConvention(t *testing.T) {
	rc := model.NewReleaseContext("ShiftIt", "citadelgrad", "ShiftIt", "2.1.3", "/proj", "/proj/ShiftIt/bin/sign_update")

	gt.Value(t, rc.ArchiveName).Equal("ShiftIt-2.1.3.zip")
	gt.Value(t, rc.ArchivePath).Equal(filepath.Join("/proj", "build", "ShiftIt-2.1.3.zip"))
	gt.Value(t, rc.DownloadURL).Equal(
		"https://github.com/citadelgrad/ShiftIt/releases/download/version-2.1.3/ShiftIt-2.1.3.zip")
	gt.Value(t, rc.ReleaseNotesURL).Equal(
		"http://htmlpreview.github.com/?https://raw.github.com/citadelgrad/ShiftIt/master/release/release-notes-2.1.3.html")
	gt.Value(t, rc.ReleaseNotesFile).Equal(filepath.Join("/proj", "release", "release-notes-2.1.3.html"))
	gt.Value(t, rc.AppcastFile).Equal(filepath.Join("/proj", "release", "appcast.xml"))
	gt.Value(t, rc.InfoPlist).Equal(filepath.Join("/proj", "ShiftIt", "ShiftIt-Info.plist"))
	gt.Value(t, rc.AppDir).Equal(filepath.Join("/proj", "ShiftIt", "build", "Release", "ShiftIt.app"))
}

func TestReleaseContext_MilestoneURL(t *testing.T) {
	rc := model.NewReleaseContext("ShiftIt", "citadelgrad", "ShiftIt", "2.1.3", "/proj", "")

	gt.Value(t, rc.MilestoneURL(2)).Equal("https://github.com/citadelgrad/ShiftIt/issues?milestone=2")
}

func TestReleaseContext_InfoPairs(t *testing.T) {
	rc := model.NewReleaseContext("ShiftIt", "citadelgrad", "ShiftIt", "2.1.3", "/proj", "/tool")

	pairs := rc.InfoPairs()
	gt.Number(t, len(pairs)).Greater(0)

	byLabel := make(map[string]string, len(pairs))
	for _, p := range pairs {
		byLabel[p.Label] = p.Value
	}

	gt.Value(t, byLabel["name"]).Equal("ShiftIt")
	gt.Value(t, byLabel["version"]).Equal("2.1.3")
	gt.Value(t, byLabel["archive_name"]).Equal("ShiftIt-2.1.3.zip")
	gt.Value(t, byLabel["sign_update_tool"]).Equal("/tool")
}
