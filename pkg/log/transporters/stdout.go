package transporters

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"tweetsense/pkg/log"
)

// Stdout writes one JSON object per line.
type Stdout struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdout writes to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{w: os.Stdout}
}

// NewStdoutWithWriter writes to w; tests pass a bytes.Buffer.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{w: w}
}

func (s *Stdout) Name() string {
	return "stdout"
}

func (s *Stdout) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(data)
	return err
}

// Close does not close the underlying writer.
func (s *Stdout) Close() error {
	return nil
}
