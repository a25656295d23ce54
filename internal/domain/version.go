package domain

import "fmt"

// VersionInfo identifies the host build
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String returns the version and short commit, e.g. "0.1.0 (a1b2c3d)"
func (v VersionInfo) String() string {
	commit := v.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", v.Version, commit)
}
