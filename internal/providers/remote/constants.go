package remote

import "time"

// Name identifies the remote source in logs and metrics.
const Name = "remote"

const (
	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 32 << 20
	errorSnippetBytes  = 512
)
