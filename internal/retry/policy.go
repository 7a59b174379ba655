// Package retry provides the transport used for proxy fetches: one immediate
// retry on any failure, nothing more.
package retry

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// MaxRetries is the number of extra attempts after the first one
const MaxRetries = 1

// Options configures the retrying client
type Options struct {
	Timeout   time.Duration // per attempt; zero leaves the transport default
	Logger    *zap.Logger
	OnAttempt func(attempt int, url string) // attempt is 1-based
}

// NewHTTPClient returns an *http.Client that retries a failed request exactly
// once with no delay. After the second failure the last response or transport
// error is handed back to the caller as-is.
func NewHTTPClient(opts Options) *http.Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = MaxRetries
	rc.RetryWaitMin = 0
	rc.RetryWaitMax = 0
	rc.Backoff = NoBackoff
	rc.CheckRetry = ShouldRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{logger.Named("retry").Sugar()}
	rc.HTTPClient.Timeout = opts.Timeout
	// The proxy is contacted anonymously
	rc.HTTPClient.Jar = nil

	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Debug("retrying proxy fetch", zap.Int("attempt", attempt+1))
		}
		if opts.OnAttempt != nil {
			opts.OnAttempt(attempt+1, req.URL.String())
		}
	}

	return rc.StandardClient()
}

// ShouldRetry retries on any transport error and any non-2xx status.
// A cancelled context ends the attempt loop.
func ShouldRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return true, nil
	}
	return false, nil
}

// NoBackoff retries immediately
func NoBackoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return 0
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
