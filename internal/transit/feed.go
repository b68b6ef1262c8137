// Package transit implements the realtime arrivals pipeline: fetch the
// GTFS-realtime feed, decode it, extract stop-time updates for a stop,
// and project them into minute ETAs.
package transit

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// maxFeedBytes caps how much of a feed response we are willing to read.
// The national feed is well under 1 MB; 32 MB leaves generous headroom.
const maxFeedBytes = 32 << 20

// FeedClient retrieves the raw GTFS-realtime payload from one endpoint.
// A single attempt per call; retry policy belongs to the caller.
type FeedClient struct {
	url    string
	client *http.Client
}

// NewFeedClient creates a client for the given feed URL with a bounded
// request timeout.
func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	return &FeedClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the configured feed endpoint.
func (c *FeedClient) URL() string { return c.url }

// Fetch performs one retrieval of the feed body. Any failure, including
// a non-2xx status, is reported as a *FetchError.
func (c *FeedClient) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: c.url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	return body, nil
}

// DecodeFeed parses a raw payload into a FeedMessage. Optional fields
// stay nil when absent in the wire data; a buffer that does not conform
// to the schema yields a *DecodeError.
func DecodeFeed(data []byte) (*gtfs.FeedMessage, error) {
	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(data, feed); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return feed, nil
}
