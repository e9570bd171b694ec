package releases

import (
	"context"
	"net/http"
	"time"

	"shifremenlanding/internal/ghrel"
)

// GitHubOptions configures the GitHub-backed Source.
type GitHubOptions struct {
	// BaseURL is the REST API root; ghrel.DefaultAPIBaseURL when empty.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout bounds every HTTP request.
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

type gitHubSource struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewGitHubSource returns a releases.Source backed by internal/ghrel.
func NewGitHubSource(opts GitHubOptions) Source {
	client := opts.HTTPClient
	if client == nil {
		client = ghrel.NewHTTPClient(opts.Timeout)
	}
	return gitHubSource{
		client:  client,
		baseURL: opts.BaseURL,
		token:   opts.Token,
	}
}

func (s gitHubSource) Latest(ctx context.Context, owner, repo string) (*ghrel.Release, error) {
	return ghrel.GetLatestRelease(ctx, s.client, s.baseURL, owner, repo, s.token)
}

func (s gitHubSource) DownloadAsset(ctx context.Context, a ghrel.Asset, outPath string) (int64, error) {
	return ghrel.DownloadAsset(ctx, s.client, a, outPath, s.token)
}
