package domain

import "time"

// VideoInfo is the metadata shown to the user before they pick a format.
type VideoInfo struct {
	ID           string
	Title        string
	Author       string
	Duration     time.Duration
	ThumbnailURL string
}
