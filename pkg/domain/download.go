package domain

import "time"

type DownloadStatus string

const (
	DownloadStatusCompleted DownloadStatus = "completed"
	DownloadStatusFailed    DownloadStatus = "failed"
)

type Download struct {
	ID        int64          `bun:",pk,autoincrement"`
	ChatID    int64          `bun:"chat_id"`
	TopicID   int            `bun:"topic_id"`
	UserID    int64          `bun:"user_id"`
	VideoID   string         `bun:"video_id"`
	Title     string         `bun:"title"`
	Quality   string         `bun:"quality"`
	Itag      int            `bun:"itag"`
	MimeType  string         `bun:"mime_type"`
	SizeBytes int64          `bun:"size_bytes"`
	Kind      MediaKind      `bun:"kind"`
	Status    DownloadStatus `bun:"status"`
	Error     string         `bun:"error"`
	Took      time.Duration  `bun:"took"`
	CreatedAt time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
