// Package httputil provides the HTTP plumbing used by the catalog loader.
//
// # Overview
//
//   - [Client]: GET requests with default headers and status classification
//   - [Retry]: optional retry with exponential backoff for transient failures
//
// # Status handling
//
// Any 2xx response is a success. Everything else is returned as a
// [*StatusError] carrying the code and reason phrase, so callers can report
// "404 Not Found" the way a browser fetch would. Network failures and 5xx
// responses are additionally wrapped in [RetryableError].
//
// # Retry
//
// [Retry] only repeats errors wrapped with [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    body, err = client.Get(ctx, url)
//	    return err
//	})
//
// With attempts set to 1 the function runs exactly once, which is the
// catalog loader's default.
//
// # Timeouts
//
// [NewHTTPClient] uses a 10 second client timeout. There is no other
// timeout: a hung candidate simply delays the next one.
package httputil
