package tweet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend-chirp/internal/db"
	"backend-chirp/internal/visibility"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const feedCacheTTL = 15 * time.Second

var (
	// ErrNotVisible means the tweet does not exist or its owner is outside
	// the viewer's visibility scope; callers must not distinguish the two.
	ErrNotVisible = errors.New("tweet not visible")
	// ErrNotOwner means the tweet does not exist or belongs to someone else.
	ErrNotOwner = errors.New("tweet not owned by requester")
)

type Service struct {
	db    db.Querier
	cache *redis.Client
}

// NewService wires the store and an optional feed cache; cache may be nil.
func NewService(q db.Querier, cache *redis.Client) *Service {
	return &Service{db: q, cache: cache}
}

// Feed returns up to four most-recent tweets by users the viewer follows,
// newest first, ties broken by id descending.
func (s *Service) Feed(ctx context.Context, username string) ([]FeedItem, error) {
	if items, ok := s.cachedFeed(ctx, username); ok {
		return items, nil
	}

	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT u.username, t.content, t.created_at
		FROM tweets t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id IN (`+visibility.FollowedIDs("$1")+`)
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT 4
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []FeedItem{}
	for rows.Next() {
		var item FeedItem
		var createdAt time.Time
		if err := rows.Scan(&item.Username, &item.Tweet, &createdAt); err != nil {
			return nil, err
		}
		item.DateTime = formatTime(createdAt)
		items = append(items, item)
	}

	s.storeFeed(ctx, username, items)
	return items, nil
}

// Detail returns the aggregate for one tweet, only when its owner is the
// viewer or someone the viewer follows. A hidden tweet and a missing tweet
// are indistinguishable to the caller.
func (s *Service) Detail(ctx context.Context, username string, tweetID int64) (TweetStats, error) {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return TweetStats{}, err
	}

	var stats TweetStats
	var createdAt time.Time
	err = s.db.QueryRow(ctx, `
		SELECT t.content,
		       (SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id),
		       (SELECT COUNT(*) FROM replies r WHERE r.tweet_id = t.id),
		       t.created_at
		FROM tweets t
		WHERE t.id = $1
		  AND (t.user_id = $2 OR t.user_id IN (`+visibility.FollowedIDs("$2")+`))
	`, tweetID, viewerID).Scan(&stats.Tweet, &stats.Likes, &stats.Replies, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return TweetStats{}, ErrNotVisible
	}
	if err != nil {
		return TweetStats{}, err
	}
	stats.DateTime = formatTime(createdAt)
	return stats, nil
}

// Likers lists users who liked the tweet, filtered to likers the viewer
// follows. Deliberately not scoped by the tweet owner's visibility.
func (s *Service) Likers(ctx context.Context, username string, tweetID int64) ([]Liker, error) {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT u.username
		FROM users u
		JOIN likes l ON u.id = l.user_id
		WHERE l.tweet_id = $1 AND l.user_id IN (`+visibility.FollowedIDs("$2")+`)
	`, tweetID, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likers := []Liker{}
	for rows.Next() {
		var l Liker
		if err := rows.Scan(&l.Username); err != nil {
			return nil, err
		}
		likers = append(likers, l)
	}
	return likers, nil
}

// Replies lists (name, reply) pairs where the replier is someone the viewer
// follows, with the same owner-independent scoping as Likers.
func (s *Service) Replies(ctx context.Context, username string, tweetID int64) ([]ReplyItem, error) {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT u.name, r.content
		FROM replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.tweet_id = $1 AND r.user_id IN (`+visibility.FollowedIDs("$2")+`)
	`, tweetID, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []ReplyItem{}
	for rows.Next() {
		var r ReplyItem
		if err := rows.Scan(&r.Name, &r.Reply); err != nil {
			return nil, err
		}
		replies = append(replies, r)
	}
	return replies, nil
}

// OwnTweets returns every tweet owned by the viewer with aggregate counts.
// Self access carries no visibility filter.
func (s *Service) OwnTweets(ctx context.Context, username string) ([]TweetStats, error) {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT t.content,
		       (SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id),
		       (SELECT COUNT(*) FROM replies r WHERE r.tweet_id = t.id),
		       t.created_at
		FROM tweets t
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tweets := []TweetStats{}
	for rows.Next() {
		var ts TweetStats
		var createdAt time.Time
		if err := rows.Scan(&ts.Tweet, &ts.Likes, &ts.Replies, &createdAt); err != nil {
			return nil, err
		}
		ts.DateTime = formatTime(createdAt)
		tweets = append(tweets, ts)
	}
	return tweets, nil
}

// Publish inserts a tweet owned by the viewer with a server-assigned UTC
// timestamp at second granularity.
func (s *Service) Publish(ctx context.Context, username, text string) error {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO tweets (user_id, content, created_at)
		VALUES ($1,$2,$3)
	`, viewerID, text, time.Now().UTC().Truncate(time.Second))
	return err
}

// Delete removes the tweet only when the viewer owns it. The ownership check
// and the delete are one conditional statement, so there is no window where
// another actor could change the outcome.
func (s *Service) Delete(ctx context.Context, username string, tweetID int64) error {
	viewerID, err := visibility.ResolveUserID(ctx, s.db, username)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM tweets WHERE id = $1 AND user_id = $2
	`, tweetID, viewerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotOwner
	}
	return nil
}

func feedCacheKey(username string) string { return "feed:" + username }

func (s *Service) cachedFeed(ctx context.Context, username string) ([]FeedItem, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, feedCacheKey(username)).Result()
	if err != nil {
		return nil, false
	}
	var items []FeedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	return items, true
}

// storeFeed is best effort: cache failures never fail the request.
func (s *Service) storeFeed(ctx context.Context, username string, items []FeedItem) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, feedCacheKey(username), raw, feedCacheTTL).Err()
}
