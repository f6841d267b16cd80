// Package supportlog provides the append-only sink for customer support
// inquiries. There is no read path: records are written for the support team
// to pick up out of band.
package supportlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink is the append-only support inquiry log
type Sink interface {
	Append(customerID, inquiry string) error
}

// CSVSink appends inquiry records to a CSV file. A mutex serializes
// concurrent appends so each record is written whole; every Append is one
// flushed CSV row of (record id, timestamp, customer id, inquiry).
type CSVSink struct {
	mu   sync.Mutex
	path string
}

// NewCSVSink creates a CSVSink writing to path. The file is created on the
// first append.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one inquiry record
func (s *CSVSink) Append(customerID, inquiry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open support log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		uuid.New().String(),
		time.Now().Format(time.RFC3339),
		customerID,
		inquiry,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write support log record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush support log: %w", err)
	}
	return nil
}
