package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/linkstat"
	linkhttp "github.com/fwojciec/linkstat/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements linkstat.LinkExtractor.
var _ linkstat.LinkExtractor = (*linkhttp.Extractor)(nil)

func TestExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns same-site links from the fetched page", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>
				<a href="` + srvURL(r) + `/about">About</a>
				<a href="https://other.com/page">Elsewhere</a>
			</body></html>`))
		}))
		defer srv.Close()

		e := linkhttp.NewExtractor()
		defer e.Close()

		records, err := e.ExtractLinks(context.Background(), srv.URL)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "About", records[0].AnchorText)
		assert.Equal(t, srv.URL+"/about", records[0].Href)
		assert.True(t, records[0].IsVisible, "visibility is always true without a layout engine")
	})

	t.Run("sends a browser user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		e := linkhttp.NewExtractor()
		defer e.Close()

		_, err := e.ExtractLinks(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, ua, "Mozilla/5.0")
	})

	t.Run("returns error for non-2xx response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		e := linkhttp.NewExtractor()
		defer e.Close()

		records, err := e.ExtractLinks(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
		assert.Nil(t, records)
	})

	t.Run("times out on a slow server", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		e := linkhttp.NewExtractor(linkhttp.WithTimeout(50 * time.Millisecond))
		defer e.Close()

		_, err := e.ExtractLinks(context.Background(), srv.URL)

		require.Error(t, err)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		e := linkhttp.NewExtractor()
		defer e.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := e.ExtractLinks(ctx, srv.URL)

		require.Error(t, err)
	})
}

// srvURL reconstructs the test server's base URL from the incoming request
// so fixture HTML can reference same-site absolute links.
func srvURL(r *http.Request) string {
	return "http://" + r.Host
}
