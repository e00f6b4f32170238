package social

import (
	"context"

	"backend-chirp/internal/db"
	"backend-chirp/internal/visibility"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Following lists the display names of everyone the viewer follows.
func (s *Service) Following(ctx context.Context, username string) ([]NameItem, error) {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	return s.names(ctx, `
		SELECT u.name
		FROM users u
		JOIN follows f ON u.id = f.following_id
		WHERE f.follower_id = $1
	`, viewerID)
}

// Followers lists the display names of everyone following the viewer.
func (s *Service) Followers(ctx context.Context, username string) ([]NameItem, error) {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	return s.names(ctx, `
		SELECT u.name
		FROM users u
		JOIN follows f ON u.id = f.follower_id
		WHERE f.following_id = $1
	`, viewerID)
}

func (s *Service) names(ctx context.Context, query string, viewerID int64) ([]NameItem, error) {
	rows, err := s.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []NameItem{}
	for rows.Next() {
		var n NameItem
		if err := rows.Scan(&n.Name); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}
