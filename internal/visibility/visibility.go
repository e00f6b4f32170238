// Package visibility implements the social-graph read rule: a viewer may
// read content owned by accounts they follow, or their own. Every read
// query in the system scopes itself through this package instead of
// repeating the follow-set subquery inline.
package visibility

import (
	"context"
	"errors"

	"backend-chirp/internal/db"

	"github.com/jackc/pgx/v5"
)

// ErrUnknownUser is returned when a username does not resolve to a user row,
// e.g. a well-signed token for an account that no longer exists.
var ErrUnknownUser = errors.New("unknown user")

// FollowedIDs returns the subquery selecting the id of every user the viewer
// follows. arg is the positional placeholder bound to the viewer's id in the
// enclosing query, e.g. "$2". Duplicate follow edges are not deduplicated;
// IN semantics make that harmless for membership checks.
func FollowedIDs(arg string) string {
	return "SELECT following_id FROM follows WHERE follower_id = " + arg
}

// ResolveUserID maps an authenticated username to its user id.
func ResolveUserID(ctx context.Context, q db.Querier, username string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		SELECT id FROM users WHERE username = $1
	`, username).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUnknownUser
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// IsVisible reports whether the viewer may read content owned by owner:
// self access is unconditional, everything else requires a follow edge.
func IsVisible(ctx context.Context, q db.Querier, viewerID, ownerID int64) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	var visible bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)
	`, viewerID, ownerID).Scan(&visible)
	if err != nil {
		return false, err
	}
	return visible, nil
}
