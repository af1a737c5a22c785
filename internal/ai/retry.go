package ai

import (
	"regexp"
	"strconv"
	"time"
)

const (
	baseRetryDelay = 2 * time.Second
	// MaxRetryDelay is the longest wait a backend may ask for before a retry
	// is considered pointless.
	MaxRetryDelay = 20 * time.Second
)

var retryAfter = regexp.MustCompile(`(?i)retry(?:\s+after|\s+in|delay"?\s*:\s*"?)\s*(\d+(?:\.\d+)?)\s*(s|sec|secs|seconds?)?`)

// Backoff returns the linear wait before the given attempt.
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(attempt) * baseRetryDelay
}

// DelayFromMessage extracts a server provided retry delay such as
// "retry after 60 seconds" or `"retryDelay": "13s"`.
func DelayFromMessage(msg string) (time.Duration, bool) {
	m := retryAfter.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// QuotaDelay decides on a rate limited request: retry after the server
// provided delay when it is short enough, otherwise give up.
func QuotaDelay(msg string, attempt int) (time.Duration, bool) {
	delay, ok := DelayFromMessage(msg)
	if !ok {
		return Backoff(attempt), true
	}
	if delay > MaxRetryDelay {
		return 0, false
	}
	return delay, true
}
