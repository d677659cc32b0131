package domain

import (
	"fmt"
	"time"
)

// Progress is a snapshot of a running download, reported by the youtube
// client and rendered into the progress message.
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	BytesPerSecond  float64
	ETA             time.Duration
}

func (p Progress) Percent() float64 {
	if p.TotalBytes <= 0 {
		return 0
	}
	return float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
}

func (p Progress) HumanSpeed() string {
	if p.BytesPerSecond <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s/s", HumanBytes(int64(p.BytesPerSecond)))
}

func (p Progress) HumanETA() string {
	if p.ETA <= 0 {
		return "N/A"
	}
	return p.ETA.Truncate(time.Second).String()
}
