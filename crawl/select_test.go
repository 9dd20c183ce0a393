package crawl_test

import (
	"context"
	"testing"

	"github.com/fwojciec/linkstat"
	"github.com/fwojciec/linkstat/crawl"
	"github.com/fwojciec/linkstat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockExtractor() *mock.LinkExtractor {
	return &mock.LinkExtractor{
		ExtractLinksFn: func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
			return nil, nil
		},
	}
}

func TestSelectExtractor(t *testing.T) {
	t.Parallel()

	t.Run("selects dynamic when probe succeeds", func(t *testing.T) {
		t.Parallel()

		dynamic := newMockExtractor()
		sel, err := crawl.SelectExtractor(
			func() bool { return true },
			func() (linkstat.LinkExtractor, error) { return dynamic, nil },
			func() (linkstat.LinkExtractor, error) {
				t.Fatal("static factory should not be invoked")
				return nil, nil
			},
		)

		require.NoError(t, err)
		assert.Equal(t, crawl.BackendDynamic, sel.Backend)
		assert.Same(t, dynamic, sel.Extractor)
		assert.NoError(t, sel.FallbackErr)
	})

	t.Run("selects static directly when probe fails", func(t *testing.T) {
		t.Parallel()

		static := newMockExtractor()
		sel, err := crawl.SelectExtractor(
			func() bool { return false },
			func() (linkstat.LinkExtractor, error) {
				t.Fatal("dynamic factory should never be invoked")
				return nil, nil
			},
			func() (linkstat.LinkExtractor, error) { return static, nil },
		)

		require.NoError(t, err)
		assert.Equal(t, crawl.BackendStatic, sel.Backend)
		assert.Same(t, static, sel.Extractor)
		assert.NoError(t, sel.FallbackErr, "no fallback happened, the probe decided")
	})

	t.Run("falls back to static once when dynamic launch fails", func(t *testing.T) {
		t.Parallel()

		launchErr := linkstat.Errorf(linkstat.EUNAVAILABLE, "launching browser: not found")
		static := newMockExtractor()
		dynamicCalls := 0

		sel, err := crawl.SelectExtractor(
			func() bool { return true },
			func() (linkstat.LinkExtractor, error) {
				dynamicCalls++
				return nil, launchErr
			},
			func() (linkstat.LinkExtractor, error) { return static, nil },
		)

		require.NoError(t, err)
		assert.Equal(t, crawl.BackendStatic, sel.Backend)
		assert.Same(t, static, sel.Extractor)
		assert.Equal(t, 1, dynamicCalls, "no dynamic retries after fallback")
		assert.Equal(t, launchErr, sel.FallbackErr, "fallback cause is surfaced for logging")
	})

	t.Run("static failure after fallback is fatal", func(t *testing.T) {
		t.Parallel()

		staticErr := linkstat.Errorf(linkstat.EINTERNAL, "no transport")
		sel, err := crawl.SelectExtractor(
			func() bool { return true },
			func() (linkstat.LinkExtractor, error) {
				return nil, linkstat.Errorf(linkstat.EUNAVAILABLE, "launch failed")
			},
			func() (linkstat.LinkExtractor, error) { return nil, staticErr },
		)

		require.Error(t, err)
		assert.Equal(t, staticErr, err)
		assert.Nil(t, sel.Extractor)
	})
}
