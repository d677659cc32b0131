package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/clipnova/clipnova-bot/pkg/logger"
	ytdl "github.com/kkdai/youtube/v2"
	"golang.org/x/net/proxy"
	"golang.org/x/sync/semaphore"
)

const defaultDownloadTimeout = time.Hour

type Config struct {
	DownloadDir   string
	MaxConcurrent int64
	Timeout       time.Duration
	ProxyURL      string
}

type Client struct {
	yt          ytdl.Client
	downloadDir string
	timeout     time.Duration
	sem         *semaphore.Weighted
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.DownloadDir == "" {
		return nil, errors.New("download dir cannot be empty")
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDownloadTimeout
	}
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download dir: %w", err)
	}

	transport, err := newTransport(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		yt:          ytdl.Client{HTTPClient: &http.Client{Transport: transport}},
		downloadDir: cfg.DownloadDir,
		timeout:     cfg.Timeout,
		sem:         semaphore.NewWeighted(cfg.MaxConcurrent),
	}, nil
}

func newTransport(proxyURL string) (http.RoundTripper, error) {
	if proxyURL == "" {
		return http.DefaultTransport, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy url: %w", err)
	}

	switch u.Scheme {
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("creating socks5 dialer: %w", err)
		}
		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				if cd, ok := dialer.(proxy.ContextDialer); ok {
					return cd.DialContext(ctx, network, addr)
				}
				return dialer.Dial(network, addr)
			},
		}, nil
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(u)}, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}
}

// Inspect resolves a user-supplied URL into metadata and the format options
// the bot can offer.
func (c *Client) Inspect(ctx context.Context, rawURL string) (domain.VideoInfo, []domain.FormatOption, error) {
	video, err := c.getVideo(ctx, rawURL)
	if err != nil {
		return domain.VideoInfo{}, nil, err
	}

	info := domain.VideoInfo{
		ID:           video.ID,
		Title:        video.Title,
		Author:       video.Author,
		Duration:     video.Duration,
		ThumbnailURL: bestThumbnail(video),
	}
	return info, AvailableFormats(video), nil
}

func bestThumbnail(video *ytdl.Video) string {
	var best ytdl.Thumbnail
	for _, t := range video.Thumbnails {
		if t.Width > best.Width {
			best = t
		}
	}
	return best.URL
}

func (c *Client) getVideo(ctx context.Context, rawURL string) (*ytdl.Video, error) {
	id, err := ytdl.ExtractVideoID(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, rawURL)
	}

	video, err := c.yt.GetVideoContext(ctx, id)
	if err != nil {
		return nil, mapFetchError(err)
	}
	return video, nil
}

func mapFetchError(err error) error {
	switch {
	case errors.Is(err, ytdl.ErrVideoPrivate),
		errors.Is(err, ytdl.ErrLoginRequired),
		errors.Is(err, ytdl.ErrNotPlayableInEmbed):
		return fmt.Errorf("%w: %v", domain.ErrRestricted, err)
	case errors.Is(err, ytdl.ErrInvalidCharactersInVideoID),
		errors.Is(err, ytdl.ErrVideoIDMinLength):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}

	var statusErr *ytdl.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", domain.ErrRestricted, err)
	}

	return fmt.Errorf("fetching video: %w", err)
}

// Download fetches the stream addressed by itag into the download directory
// and returns the file path and size. At most MaxConcurrent downloads run at
// once; the rest block here until a slot frees up. Metadata is re-resolved
// because stream URLs from an earlier Inspect may have expired by the time
// the user confirms.
func (c *Client) Download(ctx context.Context, rawURL string, itag int, onProgress func(domain.Progress)) (string, int64, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", 0, fmt.Errorf("acquiring download slot: %w", err)
	}
	defer c.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	video, err := c.getVideo(ctx, rawURL)
	if err != nil {
		return "", 0, err
	}

	format, err := pickFormat(video, itag)
	if err != nil {
		return "", 0, err
	}

	stream, size, err := c.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", 0, fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Close()

	path := filepath.Join(c.downloadDir, fmt.Sprintf("%s.%s.%s", SanitizeTitle(video.Title), video.ID, mimeToExt(format.MimeType)))

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = stream
	if onProgress != nil {
		reader = newProgressReader(stream, size, onProgress)
	}

	t0 := time.Now()
	written, err := io.Copy(file, reader)
	if err != nil {
		os.Remove(path)
		if ctx.Err() != nil {
			return "", 0, fmt.Errorf("download timed out: %w", ctx.Err())
		}
		return "", 0, fmt.Errorf("downloading stream: %w", err)
	}

	slog.InfoContext(ctx, "Stream downloaded",
		"videoID", video.ID,
		"itag", itag,
		"size", domain.HumanBytes(written),
		logger.Elapsed(t0))

	return path, written, nil
}

func pickFormat(video *ytdl.Video, itag int) (*ytdl.Format, error) {
	formats := video.Formats.Itag(itag)
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: itag %d", domain.ErrNotFound, itag)
	}
	return &formats[0], nil
}

// PurgeStaleFiles removes leftovers in the download directory older than
// maxAge. Files normally disappear right after sending; this catches the ones
// orphaned by crashes or kills mid-download.
func (c *Client) PurgeStaleFiles(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(c.downloadDir)
	if err != nil {
		return 0, fmt.Errorf("reading download dir: %w", err)
	}

	purged := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(c.downloadDir, entry.Name())); err != nil {
			slog.Warn("Failed to remove stale file", "name", entry.Name(), "error", err)
			continue
		}
		purged++
	}
	return purged, nil
}

var titleSanitizeRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// SanitizeTitle makes a video title safe to use as a file name. Forbidden and
// control characters become spaces so adjacent words stay separated.
func SanitizeTitle(title string) string {
	clean := titleSanitizeRe.ReplaceAllString(title, " ")
	clean = strings.Join(strings.Fields(clean), " ")
	if clean == "" {
		return "video"
	}
	const maxLen = 120
	if len(clean) > maxLen {
		clean = clean[:maxLen]
	}
	return strings.TrimSpace(clean)
}
