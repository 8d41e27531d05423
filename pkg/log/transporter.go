package log

// Transporter is a log destination.
type Transporter interface {
	Name() string

	// Write delivers one entry. Errors are reported on stderr by the buffer.
	Write(entry Entry) error

	// Close releases the destination. Write is not called afterwards.
	Close() error
}
