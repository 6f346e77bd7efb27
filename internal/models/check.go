package models

// CheckResult is the outcome of probing a single stream URL.
type CheckResult struct {
	Alive     bool
	LatencyMs *int64  // set whenever the request completed with status 200
	Error     *string // nil when Alive
}

// Failed builds a dead result carrying the given error tag.
func Failed(tag string) CheckResult {
	return CheckResult{Alive: false, Error: &tag}
}
