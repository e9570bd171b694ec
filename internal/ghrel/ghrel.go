package ghrel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v61/github"
)

// DefaultAPIBaseURL is the public GitHub REST API root.
const DefaultAPIBaseURL = "https://api.github.com/"

// Release is the subset of GET /repos/{owner}/{repo}/releases/latest
// needed to render download links.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name,omitempty"`
	HTMLURL     string    `json:"html_url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Assets      []Asset   `json:"assets"`
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	// Name is the filename of the release asset.
	Name string `json:"name"`

	// Size is the asset size in bytes.
	Size int64 `json:"size"`

	// BrowserDownloadURL is the public URL for downloading the asset.
	BrowserDownloadURL string `json:"browser_download_url"`
}

// NewHTTPClient returns an HTTP client configured with a fixed,
// request-wide timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// GetLatestRelease fetches the latest published release of owner/repo from the
// API rooted at baseURL (DefaultAPIBaseURL when empty).
// If githubToken is provided, it is used for authentication and rate-limit relief.
// Any response other than 200 OK is returned as an error.
func GetLatestRelease(
	ctx context.Context,
	client *http.Client,
	baseURL, owner, repo, githubToken string,
) (*Release, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(repo) == "" {
		return nil, errors.New("fetch latest release: owner and repo are required")
	}

	gh, err := newGitHubClient(client, baseURL, githubToken)
	if err != nil {
		return nil, err
	}

	rel, resp, err := gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	if resp != nil && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: status=%s", resp.Status)
	}

	return fromGitHub(rel), nil
}

func newGitHubClient(client *http.Client, baseURL, githubToken string) (*github.Client, error) {
	gh := github.NewClient(client)
	if githubToken != "" {
		gh = gh.WithAuthToken(githubToken)
	}

	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", baseURL, err)
	}
	gh.BaseURL = u

	return gh, nil
}

func fromGitHub(rel *github.RepositoryRelease) *Release {
	out := &Release{
		TagName: rel.GetTagName(),
		Name:    rel.GetName(),
		HTMLURL: rel.GetHTMLURL(),
		Assets:  make([]Asset, 0, len(rel.Assets)),
	}
	if rel.PublishedAt != nil {
		out.PublishedAt = rel.PublishedAt.Time
	}
	for _, a := range rel.Assets {
		if a == nil {
			continue
		}
		out.Assets = append(out.Assets, Asset{
			Name:               a.GetName(),
			Size:               int64(a.GetSize()),
			BrowserDownloadURL: a.GetBrowserDownloadURL(),
		})
	}
	return out
}

// FindAsset returns the asset with the given file name.
func FindAsset(rel *Release, assetName string) (Asset, error) {
	if rel == nil {
		return Asset{}, errors.New("no release")
	}
	for _, a := range rel.Assets {
		if a.Name == assetName {
			if a.BrowserDownloadURL == "" {
				return Asset{}, fmt.Errorf("asset %q has empty browser_download_url", assetName)
			}
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("asset %q not found", assetName)
}

// DownloadToWriter streams the content at downloadURL into w and reports the
// number of bytes copied.
// If githubToken is provided, an Authorization header is added to the initial request.
func DownloadToWriter(
	ctx context.Context,
	client *http.Client,
	downloadURL, githubToken string,
	w io.Writer,
) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/octet-stream")
	if githubToken != "" {
		req.Header.Set("Authorization", "Bearer "+githubToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return 0, fmt.Errorf("download asset: status=%s body=%s", resp.Status, string(b))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("stream asset: %w", err)
	}
	return n, nil
}

// WriteFileAtomically creates outPath through a temporary sibling file that is
// renamed into place only after write succeeds and the data is synced.
func WriteFileAtomically(outPath string, write func(f *os.File) error) error {
	if outPath == "" {
		return errors.New("output path is empty")
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".part-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		_ = tmp.Close()
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	renamed = true

	return nil
}

// DownloadAsset downloads a to outPath (a.Name in the current directory when
// empty) and returns the number of bytes written. The browser_download_url
// may redirect; an Authorization header may not apply to the final request.
func DownloadAsset(
	ctx context.Context,
	client *http.Client,
	a Asset,
	outPath, githubToken string,
) (int64, error) {
	if a.BrowserDownloadURL == "" {
		return 0, fmt.Errorf("asset %q has empty browser_download_url", a.Name)
	}
	if outPath == "" {
		outPath = a.Name
	}
	if outPath == "" {
		return 0, errors.New("output path is empty")
	}

	var written int64
	err := WriteFileAtomically(outPath, func(f *os.File) error {
		n, err := DownloadToWriter(ctx, client, a.BrowserDownloadURL, githubToken, f)
		written = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
