// Package idgen generates entity IDs.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/artpar/postshop/ports"
	"github.com/google/uuid"
)

// UUID issues version 7 UUIDs. They sort by creation time, which keeps
// the id tiebreak in newest-first listings consistent with created_at.
type UUID struct{}

func (UUID) New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails if the random source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}

// Sequential issues prefix1, prefix2, ... for tests and fixtures.
type Sequential struct {
	prefix string
	n      atomic.Uint64
}

func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (s *Sequential) New() string {
	return s.prefix + strconv.FormatUint(s.n.Add(1), 10)
}

var (
	_ ports.IDGenerator = UUID{}
	_ ports.IDGenerator = (*Sequential)(nil)
)
