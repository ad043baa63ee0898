// Package idgen issues document-unique identifiers for new manifest records.
//
// The allocator is seeded with every identifier observed during parse and
// remembers everything it hands out, so a session can never mint a token that
// collides with existing content or with an earlier allocation. Tokens are
// drawn from a random source rather than an incrementing counter: counters
// seeded from document content collide when runs restart.
package idgen

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"manifestkit/pkg/types"
)

// maxAttempts bounds collision retries before the allocator reports the
// identifier space exhausted. Random 96-bit tokens colliding this many times
// in a row means something is deeply wrong with the source.
const maxAttempts = 64

// Allocator hands out identifiers unique across one editing session.
// Not safe for concurrent use; the document is single-owner by design.
type Allocator struct {
	seen map[types.ObjectID]struct{}
}

// New creates an allocator seeded with every identifier already present in
// the loaded document.
func New(observed []types.ObjectID) *Allocator {
	a := &Allocator{seen: make(map[types.ObjectID]struct{}, len(observed))}
	for _, id := range observed {
		a.seen[id] = struct{}{}
	}
	return a
}

// Allocate returns a fresh identifier, distinct from every observed and every
// previously allocated one.
func (a *Allocator) Allocate() (types.ObjectID, error) {
	for i := 0; i < maxAttempts; i++ {
		u := uuid.New()
		id := types.ObjectID(strings.ToUpper(hex.EncodeToString(u[:]))[:types.IDWidth])
		if _, taken := a.seen[id]; taken {
			continue
		}
		a.seen[id] = struct{}{}
		return id, nil
	}
	return "", types.ErrIDSpaceExhausted
}

// Reserve admits a caller-specified identifier, e.g. on an idempotent re-run
// that replays known IDs. Reserving a token that is already present fails.
func (a *Allocator) Reserve(id types.ObjectID) error {
	if _, taken := a.seen[id]; taken {
		return &types.Error{Kind: types.ErrKindDuplicateID, Msg: fmt.Sprintf("identifier %s already in use", id)}
	}
	a.seen[id] = struct{}{}
	return nil
}
