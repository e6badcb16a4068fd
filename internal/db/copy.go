package db

import (
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading StagedVisits from a channel.
// This provides natural backpressure between the Parquet reader and COPY writer.
//
// A producer that fails must call Fail before closing the channel; pgx then
// aborts the COPY and no row of the batch is committed.
type ChannelSource struct {
	ch      <-chan *model.StagedVisit
	current *model.StagedVisit

	mu  sync.Mutex
	err error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.StagedVisit) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Fail records the producer's error. The first error wins.
func (s *ChannelSource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Err returns the error recorded by Fail, if any.
func (s *ChannelSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Compile-time check that ChannelSource satisfies the interface.
var _ pgx.CopyFromSource = (*ChannelSource)(nil)
