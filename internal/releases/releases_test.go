package releases

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shifremenlanding/internal/ghrel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls     atomic.Int32
	rel       *ghrel.Release
	err       error
	downloads []error
}

func (f *fakeSource) Latest(context.Context, string, string) (*ghrel.Release, error) {
	f.calls.Add(1)
	return f.rel, f.err
}

func (f *fakeSource) DownloadAsset(_ context.Context, a ghrel.Asset, _ string) (int64, error) {
	i := int(f.calls.Add(1)) - 1
	if i < len(f.downloads) && f.downloads[i] != nil {
		return 0, f.downloads[i]
	}
	return a.Size, nil
}

func TestGitHubSource_Latest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/pheianox/shifremen/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","assets":[{"name":"a.dmg","size":10,"browser_download_url":"u"}]}`))
	}))
	t.Cleanup(srv.Close)

	src := NewGitHubSource(GitHubOptions{BaseURL: srv.URL, HTTPClient: srv.Client()})
	rel, err := src.Latest(context.Background(), "pheianox", "shifremen")
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", rel.TagName)
	require.Len(t, rel.Assets, 1)
	assert.Equal(t, "a.dmg", rel.Assets[0].Name)
}

func TestCachedSource_HitsUpstreamOnce(t *testing.T) {
	t.Parallel()

	up := &fakeSource{rel: &ghrel.Release{TagName: "v1"}}
	src := NewCachedSource(up, time.Hour)

	for i := 0; i < 3; i++ {
		rel, err := src.Latest(context.Background(), "o", "r")
		require.NoError(t, err)
		assert.Equal(t, "v1", rel.TagName)
	}
	assert.EqualValues(t, 1, up.calls.Load())

	_, err := src.Latest(context.Background(), "o", "other")
	require.NoError(t, err)
	assert.EqualValues(t, 2, up.calls.Load())
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	up := &fakeSource{err: errors.New("boom")}
	src := NewCachedSource(up, time.Hour)

	for i := 0; i < 2; i++ {
		_, err := src.Latest(context.Background(), "o", "r")
		require.Error(t, err)
	}
	assert.EqualValues(t, 2, up.calls.Load())
}

func TestCachedSource_ZeroTTLDisables(t *testing.T) {
	t.Parallel()

	up := &fakeSource{rel: &ghrel.Release{}}
	assert.Same(t, Source(up), NewCachedSource(up, 0))
}

func TestInstrumentedSource_CountsResults(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	up := &fakeSource{rel: &ghrel.Release{}}
	src, err := NewInstrumentedSource(up, reg)
	require.NoError(t, err)

	_, _ = src.Latest(context.Background(), "o", "r")
	up.err = errors.New("boom")
	_, _ = src.Latest(context.Background(), "o", "r")
	_, _ = src.Latest(context.Background(), "o", "r")

	is := src.(*instrumentedSource)
	assert.Equal(t, 1.0, testutil.ToFloat64(is.fetches.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(is.fetches.WithLabelValues("error")))

	_, err = NewInstrumentedSource(up, reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return errors.New("permanent")
	})
	assert.EqualError(t, err, "permanent")
	assert.Equal(t, 2, calls)
}

func TestRetry_NonPositiveAttemptsRunsOnce(t *testing.T) {
	t.Parallel()

	for _, attempts := range []int{0, -1} {
		calls := 0
		err := Retry(context.Background(), attempts, time.Millisecond, func() error {
			calls++
			return errors.New("fail")
		})
		assert.EqualError(t, err, "fail", "attempts=%d", attempts)
		assert.Equal(t, 1, calls, "attempts=%d", attempts)
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDownloadWithRetry(t *testing.T) {
	t.Parallel()

	up := &fakeSource{downloads: []error{errors.New("reset")}}
	n, err := DownloadWithRetry(context.Background(), up, ghrel.Asset{Name: "a.msi", Size: 42}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)
	assert.EqualValues(t, 2, up.calls.Load())
}
