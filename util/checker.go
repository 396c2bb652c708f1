package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dixieflatline76/Reel/config"
	"github.com/google/go-github/v63/github"
	"golang.org/x/mod/semver"
)

const (
	releaseOwner = "dixieflatline76"
	releaseRepo  = "Reel"
)

// ErrDevBuild is returned when the running binary carries no release version.
var ErrDevBuild = errors.New("development build has no release version")

// Release describes a newer published version of the application.
type Release struct {
	Version string
	URL     *url.URL
	Notes   string
}

// UpdateChecker looks up the latest published release.
type UpdateChecker struct {
	client  *github.Client
	owner   string
	repo    string
	current string
}

// NewUpdateChecker creates a checker for the running version using httpClient
// (nil for the default client).
func NewUpdateChecker(httpClient *http.Client) *UpdateChecker {
	return &UpdateChecker{
		client:  github.NewClient(httpClient),
		owner:   releaseOwner,
		repo:    releaseRepo,
		current: config.AppVersion,
	}
}

// Latest returns the newest release when it is newer than the running version,
// or nil when the running version is current.
func (uc *UpdateChecker) Latest(ctx context.Context) (*Release, error) {
	current := canonicalVersion(uc.current)
	if current == "" {
		return nil, ErrDevBuild
	}

	rel, _, err := uc.client.Repositories.GetLatestRelease(ctx, uc.owner, uc.repo)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	if rel.GetDraft() || rel.GetPrerelease() {
		return nil, nil
	}

	latest := canonicalVersion(rel.GetTagName())
	if latest == "" || semver.Compare(latest, current) <= 0 {
		return nil, nil
	}

	u, err := url.Parse(rel.GetHTMLURL())
	if err != nil {
		return nil, fmt.Errorf("parsing release URL %q: %w", rel.GetHTMLURL(), err)
	}
	return &Release{Version: latest, URL: u, Notes: rel.GetBody()}, nil
}

// canonicalVersion returns v with a leading "v", or "" when v is not semver.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
