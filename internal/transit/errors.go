package transit

import "fmt"

// FetchError reports a failure to retrieve the realtime feed: transport
// errors, timeouts, or a non-2xx response. Status is zero when the
// request never produced a response.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching feed %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching feed %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports a payload that does not parse as a GTFS-realtime
// FeedMessage. Kept distinct from FetchError so callers can tell an
// unreachable feed apart from a malformed one.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding feed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
