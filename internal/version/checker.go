// Package version checks GitHub for newer releases of the binary.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Checker queries the GitHub releases API for a repository.
type Checker struct {
	owner   string
	repo    string
	current string
	client  *http.Client
}

// UpdateInfo describes an available update.
type UpdateInfo struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

// NewChecker creates a Checker for the given repository and current version.
func NewChecker(owner, repo, current string) *Checker {
	return &Checker{
		owner:   owner,
		repo:    repo,
		current: current,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// githubRelease is the subset of the GitHub release response we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdate returns update info when a newer release exists, nil when
// the binary is current or the check fails. Failures are deliberately
// silent; an update check must never break the program.
func (c *Checker) CheckForUpdate(ctx context.Context) *UpdateInfo {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	latest := normalizeVersion(release.TagName)
	current := normalizeVersion(c.current)
	if latest == "" || !isNewerVersion(latest, current) {
		return nil
	}

	return &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  latest,
		ReleaseURL:     release.HTMLURL,
	}
}

// normalizeVersion strips whitespace and a leading v/V from a version tag.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 0 && (v[0] == 'v' || v[0] == 'V') {
		v = v[1:]
	}
	return v
}

// parseVersion splits a semantic version into its numeric components,
// ignoring pre-release and build metadata suffixes.
func parseVersion(v string) []int {
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	parts := strings.Split(v, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		nums = append(nums, n)
	}
	return nums
}

// isNewerVersion reports whether latest is strictly newer than current.
func isNewerVersion(latest, current string) bool {
	l := parseVersion(latest)
	c := parseVersion(current)

	for i := 0; i < len(l) || i < len(c); i++ {
		var lv, cv int
		if i < len(l) {
			lv = l[i]
		}
		if i < len(c) {
			cv = c[i]
		}
		if lv != cv {
			return lv > cv
		}
	}
	return false
}
