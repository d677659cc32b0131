package youtube

import (
	"io"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
)

// reportInterval throttles progress callbacks so message edits stay well
// under Telegram's per-chat rate limits.
const reportInterval = 3 * time.Second

type progressReader struct {
	r          io.Reader
	total      int64
	downloaded int64
	started    time.Time
	lastReport time.Time
	onProgress func(domain.Progress)
}

func newProgressReader(r io.Reader, total int64, onProgress func(domain.Progress)) *progressReader {
	return &progressReader{
		r:          r,
		total:      total,
		started:    time.Now(),
		onProgress: onProgress,
	}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.downloaded += int64(n)

	now := time.Now()
	if now.Sub(p.lastReport) >= reportInterval || (err == io.EOF && p.downloaded == p.total) {
		p.lastReport = now
		p.onProgress(p.snapshot())
	}
	return n, err
}

func (p *progressReader) snapshot() domain.Progress {
	prog := domain.Progress{
		DownloadedBytes: p.downloaded,
		TotalBytes:      p.total,
	}

	elapsed := time.Since(p.started).Seconds()
	if elapsed > 0 {
		prog.BytesPerSecond = float64(p.downloaded) / elapsed
	}
	if prog.BytesPerSecond > 0 && p.total > p.downloaded {
		prog.ETA = time.Duration(float64(p.total-p.downloaded)/prog.BytesPerSecond) * time.Second
	}
	return prog
}
