package tweet

import "time"

// dateTime values keep the legacy "YYYY-MM-DD HH:MM:SS" shape clients expect.
const timeLayout = "2006-01-02 15:04:05"

type FeedItem struct {
	Username string `json:"username"`
	Tweet    string `json:"tweet"`
	DateTime string `json:"dateTime"`
}

// TweetStats is the per-tweet aggregate: text plus like and reply counts.
type TweetStats struct {
	Tweet    string `json:"tweet"`
	Likes    int64  `json:"likes"`
	Replies  int64  `json:"replies"`
	DateTime string `json:"dateTime"`
}

type Liker struct {
	Username string `json:"username"`
}

type ReplyItem struct {
	Name  string `json:"name"`
	Reply string `json:"reply"`
}

type PublishRequest struct {
	Tweet string `json:"tweet"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
