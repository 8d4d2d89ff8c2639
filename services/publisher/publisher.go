package publisher

// Publisher forwards crawled store batches to downstream consumers
type Publisher interface {
	// Publish appends message under key to one of the publisher's streams
	Publish(key string, message []byte) error

	// TrimStreams caps every stream at the configured maximum length
	TrimStreams() error

	// Close releases the connection
	Close() error
}
