package discord

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// parseRateHeaders reads the bucket headers Discord attaches to every response.
// Reset-After and Retry-After carry fractional seconds
func parseRateHeaders(h http.Header) (remaining int, resetAfter, retryAfter time.Duration) {
	remaining = atoi(h.Get("X-RateLimit-Remaining"))
	resetAfter = seconds(h.Get("X-RateLimit-Reset-After"))
	retryAfter = seconds(h.Get("Retry-After"))
	return
}

// computeWait decides how long to wait based on headers
func computeWait(remaining int, resetAfter, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}
	if remaining <= 0 && resetAfter > 0 {
		return resetAfter
	}
	return 0
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(s)
	return i
}

func seconds(s string) time.Duration {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
