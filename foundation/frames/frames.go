// Package frames extracts still frames from video uploads via the
// ffmpeg binary. Used only by the best-effort vision path.
package frames

import (
	"context"
	"fmt"
	"os/exec"
)

type Extractor struct {
	ffmpegPath string
}

func New(ffmpegPath string) *Extractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Extractor{ffmpegPath: ffmpegPath}
}

// Extract writes the frame at atSec seconds of the video to outPath.
func (e *Extractor) Extract(ctx context.Context, videoPath string, atSec float64, outPath string) error {
	if atSec < 0 {
		atSec = 0
	}
	cmd := exec.CommandContext(ctx, e.ffmpegPath,
		"-ss", fmt.Sprintf("%.2f", atSec),
		"-i", videoPath,
		"-frames:v", "1",
		"-y", outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, string(out))
	}
	return nil
}
