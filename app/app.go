// Package app provides the post and product actions.
// Each action sanitizes and validates input, performs one store mutation,
// then invalidates the page cache tags the mutation made stale.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/artpar/postshop/adapters/metrics"
	"github.com/artpar/postshop/domain/schema"
	"github.com/artpar/postshop/ports"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = ports.ErrNotFound

// Pagination bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// maxOffset bounds (number-1)*size so the offset never overflows.
	maxOffset = math.MaxInt32
)

// ValidationError reports rejected input. It carries the submitted values
// so forms can be re-rendered as the user left them.
type ValidationError struct {
	Entity string
	Result schema.ValidationResult
	Values map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Result.Error())
}

// Fields returns the first message per field.
func (e *ValidationError) Fields() map[string]string {
	return e.Result.Fields()
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Clock     ports.Clock
	IDs       ports.IDGenerator
	Sanitizer ports.Sanitizer
	Cache     ports.PageCache
	Metrics   *metrics.Collector
	Logger    zerolog.Logger
}

// Page is one page of a listing.
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int
}

// TotalPages returns the page count, at least 1.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages() }

// Prev returns the previous page number.
func (p Page[T]) Prev() int { return p.Number - 1 }

// Next returns the following page number.
func (p Page[T]) Next() int { return p.Number + 1 }

// normalizePage clamps the page number and size.
func normalizePage(number, size int) (int, int) {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if number > maxOffset/size+1 {
		number = maxOffset/size + 1
	}
	return number, size
}

// actions holds the bookkeeping every mutation shares.
type actions struct {
	entity  string
	deps    Deps
	logger  zerolog.Logger
	listTag string
	itemTag func(id string) string
}

func newActions(entity, listTag string, itemTag func(string) string, deps Deps) actions {
	return actions{
		entity:  entity,
		deps:    deps,
		logger:  deps.Logger.With().Str("service", entity).Logger(),
		listTag: listTag,
		itemTag: itemTag,
	}
}

// invalid records and returns a validation failure.
func (a actions) invalid(action string, result schema.ValidationResult, raw map[string]string) error {
	a.deps.Metrics.Action(a.entity, action, "invalid")
	a.logger.Warn().
		Str("action", action).
		Interface("fields", result.Fields()).
		Msg("validation failed")
	return &ValidationError{Entity: a.entity, Result: result, Values: copyForm(raw)}
}

// failed records a store failure and wraps err.
func (a actions) failed(action, id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		a.deps.Metrics.Action(a.entity, action, "not_found")
		return fmt.Errorf("%s %s %s: %w", action, a.entity, id, err)
	}
	a.deps.Metrics.Action(a.entity, action, "error")
	a.logger.Error().Err(err).Str("action", action).Str("id", id).Msg("store mutation failed")
	return fmt.Errorf("%s %s: %w", action, a.entity, err)
}

// done invalidates the list and item tags and records success.
func (a actions) done(ctx context.Context, action, id string) {
	n := a.deps.Cache.Invalidate(ctx, a.listTag, a.itemTag(id))
	a.deps.Metrics.Action(a.entity, action, "ok")
	a.logger.Info().
		Str("action", action).
		Str("id", id).
		Int("invalidated", n).
		Msg(a.entity + " " + action + "d")
}

func copyForm(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = strings.TrimSpace(v)
	}
	return out
}
