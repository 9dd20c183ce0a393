package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/linkstat"
	"github.com/fwojciec/linkstat/crawl"
	"github.com/fwojciec/linkstat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crawlRecord(anchor, href string) linkstat.LinkRecord {
	return linkstat.LinkRecord{
		SourceURL:  "https://a.com",
		AnchorText: anchor,
		Href:       href,
		IsVisible:  true,
		TagName:    "a",
	}
}

func TestCrawler_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts and persists each source", func(t *testing.T) {
		t.Parallel()

		records := []linkstat.LinkRecord{
			crawlRecord("Home", "https://a.com"),
			crawlRecord("About", "https://a.com/about"),
		}

		var persisted [][]linkstat.LinkRecord
		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					return records, nil
				},
			},
			Links: &mock.LinkService{
				PersistLinksFn: func(ctx context.Context, sourceURL string, recs []linkstat.LinkRecord) (int, error) {
					persisted = append(persisted, recs)
					return len(recs), nil
				},
			},
		}

		result, err := c.Run(context.Background(), []string{"https://a.com"})

		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.Equal(t, records, persisted[0])
		assert.Equal(t, 2, result.Persisted)
		assert.Zero(t, result.Failed)
	})

	t.Run("does not count rows the store skipped", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					return []linkstat.LinkRecord{
						crawlRecord("Home", "https://a.com"),
						crawlRecord("About", "https://a.com/about"),
					}, nil
				},
			},
			Links: &mock.LinkService{
				PersistLinksFn: func(ctx context.Context, sourceURL string, recs []linkstat.LinkRecord) (int, error) {
					// Batch already stored, nothing inserted.
					return 0, nil
				},
			},
		}

		result, err := c.Run(context.Background(), []string{"https://a.com"})

		require.NoError(t, err)
		assert.Zero(t, result.Persisted, "skipped batches must not inflate the persisted count")
	})

	t.Run("absorbs page-level extraction failures and continues", func(t *testing.T) {
		t.Parallel()

		var persisted []string
		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					if sourceURL == "https://bad.com" {
						return nil, errors.New("navigation timeout")
					}
					return []linkstat.LinkRecord{crawlRecord("Home", "https://a.com")}, nil
				},
			},
			Links: &mock.LinkService{
				PersistLinksFn: func(ctx context.Context, sourceURL string, recs []linkstat.LinkRecord) (int, error) {
					persisted = append(persisted, sourceURL)
					return len(recs), nil
				},
			},
		}

		result, err := c.Run(context.Background(), []string{"https://bad.com", "https://a.com"})

		require.NoError(t, err, "a failing source must not abort the run")
		assert.Equal(t, []string{"https://a.com"}, persisted)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("skips persistence for empty batches", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					return nil, nil
				},
			},
			Links: &mock.LinkService{
				PersistLinksFn: func(ctx context.Context, sourceURL string, recs []linkstat.LinkRecord) (int, error) {
					t.Fatal("empty batches should not be persisted")
					return 0, nil
				},
			},
		}

		result, err := c.Run(context.Background(), []string{"https://a.com"})

		require.NoError(t, err)
		assert.Zero(t, result.Persisted)
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		t.Parallel()

		storageErr := errors.New("disk full")
		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					return []linkstat.LinkRecord{crawlRecord("Home", "https://a.com")}, nil
				},
			},
			Links: &mock.LinkService{
				PersistLinksFn: func(ctx context.Context, sourceURL string, recs []linkstat.LinkRecord) (int, error) {
					return 0, storageErr
				},
			},
		}

		_, err := c.Run(context.Background(), []string{"https://a.com"})

		require.Error(t, err)
		assert.ErrorIs(t, err, storageErr)
	})

	t.Run("waits on the per-domain limiter before each source", func(t *testing.T) {
		t.Parallel()

		var waited []string
		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					return nil, nil
				},
			},
			Links: &mock.LinkService{},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(ctx context.Context, domain string) error {
					waited = append(waited, domain)
					return nil
				},
			},
		}

		_, err := c.Run(context.Background(), []string{"https://a.com/x", "https://b.com/y"})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.com", "b.com"}, waited)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Extractor: &mock.LinkExtractor{
				ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
					t.Fatal("extraction should not run after cancellation")
					return nil, nil
				},
			},
			Links: &mock.LinkService{},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Run(ctx, []string{"https://a.com"})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
