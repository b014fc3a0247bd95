// Package memory provides in-memory implementations of storage ports.
// Suitable for development, tests and the "memory" database driver.
package memory

import (
	"sort"
	"time"

	"github.com/artpar/postshop/ports"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = ports.ErrNotFound

// page sorts records newest first and slices out one page.
func page[T any](items []T, created func(T) time.Time, id func(T) string, limit, offset int) []T {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})

	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
