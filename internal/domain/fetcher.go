package domain

import "context"

// MetadataFetcher resolves a URL into a RemoteVideo in a single attempt.
// Retry policy is owned by the caller.
type MetadataFetcher interface {
	// Fetch retrieves remote metadata and the stream inventory for a URL
	Fetch(ctx context.Context, url string) (*RemoteVideo, error)
}

// StreamDownloader persists one selected stream to a local file
type StreamDownloader interface {
	// Download streams the given track of a fetched video to destPath,
	// overwriting any existing file at that path
	Download(ctx context.Context, video *RemoteVideo, stream StreamDescriptor, destPath string) error
}
