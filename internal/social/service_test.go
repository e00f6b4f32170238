package social

import (
	"context"
	"errors"
	"testing"

	"backend-chirp/internal/visibility"

	"github.com/pashagolub/pgxmock/v4"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func expectResolve(mock pgxmock.PgxPoolIface, username string, id int64) {
	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs(username).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
}

func TestFollowing(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.following_id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("Bob B").
			AddRow("Carol C"))

	svc := NewService(mock)
	names, err := svc.Following(context.Background(), "alice")
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(names) != 2 || names[0].Name != "Bob B" {
		t.Fatalf("unexpected names: %+v", names)
	}
}

func TestFollowers(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.follower_id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("Dave D"))

	svc := NewService(mock)
	names, err := svc.Followers(context.Background(), "alice")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(names) != 1 || names[0].Name != "Dave D" {
		t.Fatalf("unexpected names: %+v", names)
	}
}

func TestFollowingKeepsDuplicateEdges(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.following_id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("Bob B").
			AddRow("Bob B"))

	svc := NewService(mock)
	names, err := svc.Following(context.Background(), "alice")
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	// duplicate edges stay duplicated, matching the deployed behavior
	if len(names) != 2 {
		t.Fatalf("expected duplicates preserved, got %+v", names)
	}
}

func TestFollowingEmpty(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.following_id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))

	svc := NewService(mock)
	names, err := svc.Following(context.Background(), "alice")
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", names)
	}
}

func TestFollowingUnknownViewer(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	svc := NewService(mock)
	_, err := svc.Following(context.Background(), "ghost")
	if !errors.Is(err, visibility.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestFollowersQueryError(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.follower_id`).
		WithArgs(int64(1)).
		WillReturnError(errSocial)

	svc := NewService(mock)
	if _, err := svc.Followers(context.Background(), "alice"); err == nil {
		t.Fatalf("expected error")
	}
}

var errSocial = errors.New("social error")
