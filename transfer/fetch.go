package transfer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ImageStreamProvider fetches a photo's bytes from its source URL with a
// plain blocking HTTP GET. No auth, no retries; redirects follow the default
// client policy.
type ImageStreamProvider struct {
	client *http.Client
}

// NewImageStreamProvider returns a provider backed by the default HTTP client.
func NewImageStreamProvider() *ImageStreamProvider {
	return &ImageStreamProvider{client: http.DefaultClient}
}

// Get opens a buffered stream to the image at the given URL. The caller
// closes it.
func (p *ImageStreamProvider) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	return &bufferedBody{Reader: bufio.NewReader(resp.Body), body: resp.Body}, nil
}

// bufferedBody keeps the underlying response body reachable for Close while
// reads go through the buffer.
type bufferedBody struct {
	*bufio.Reader
	body io.ReadCloser
}

func (b *bufferedBody) Close() error {
	return b.body.Close()
}
