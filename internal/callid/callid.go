// Package callid tags each document-processing call with a random ID so that
// its log lines, events and spans can be correlated.
package callid

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// ID identifies one call. The zero ID means "no call".
type ID uint64

// String renders the ID as 16 hex digits.
func (id ID) String() string { return fmt.Sprintf("%016x", uint64(id)) }

// key is the context key for the call ID.
type key struct{}

// NewContext returns a copy of parent carrying a new non-zero call ID.
func NewContext(parent context.Context) (context.Context, ID) {
	id := ID(rand.Uint64())
	for id == 0 {
		id = ID(rand.Uint64())
	}
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the call ID from ctx.
func FromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(key{}).(ID)
	return id, ok
}

// Logger returns l annotated with the call ID of ctx, or l itself when ctx
// carries none.
func Logger(ctx context.Context, l *log.Logger) *log.Logger {
	id, ok := FromContext(ctx)
	if !ok {
		return l
	}
	return l.With("call", id)
}
