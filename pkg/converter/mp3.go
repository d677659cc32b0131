package converter

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// AudioExtractor converts a downloaded m4a/mp4 stream into an mp3 suitable
// for sendAudio. Requires the ffmpeg binary on PATH.
type AudioExtractor struct{}

func (AudioExtractor) ExtractMP3(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, ".m4a")
	outputPath = strings.TrimSuffix(outputPath, ".mp4") + ".mp3"

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", inputPath,
		"-vn",
		"-codec:a", "libmp3lame",
		"-qscale:a", "2",
		outputPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("running ffmpeg: %w: %s", err, string(out))
	}

	return outputPath, nil
}
