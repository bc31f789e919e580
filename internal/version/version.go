package version

import (
	"strings"

	"github.com/tcnksm/go-latest"
)

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/plugboot/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/plugboot/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/plugboot/internal/version.Date={{.Date}}
)

// Release repository queried by Check
const (
	Owner      = "arthur-debert"
	Repository = "plugboot"
)

// Update is the outcome of a release check
type Update struct {
	Current  string
	Latest   string
	Outdated bool
}

// IsDev reports whether this binary was built without a release version
func IsDev() bool {
	return Version == "" || Version == "dev"
}

// Check compares the running version with the newest GitHub release tag
func Check() (*Update, error) {
	current := strings.TrimPrefix(Version, "v")
	res, err := latest.Check(&latest.GithubTag{
		Owner:      Owner,
		Repository: Repository,
	}, current)
	if err != nil {
		return nil, err
	}
	return &Update{Current: current, Latest: res.Current, Outdated: res.Outdated}, nil
}
