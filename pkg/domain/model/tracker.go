package model

import "time"

// Milestone represents a tracker milestone matched against the bundle version
type Milestone struct {
	Number int    // Milestone number in the repository
	Title  string // Milestone title, e.g. "2.1"
}

// Issue represents a tracker issue listed in the release notes
type Issue struct {
	Number   int       // Issue number in the repository
	Title    string    // Issue title
	HTMLURL  string    // Web URL of the issue
	ClosedAt time.Time // When the issue was closed; zero for open issues
}
