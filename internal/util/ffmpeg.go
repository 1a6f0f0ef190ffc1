package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoInfo is the probed shape of a stored video asset.
type VideoInfo struct {
	Duration float64 `json:"duration"` // seconds
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// TrimSpec describes an edit keyed to a stored asset. Zero start with an end
// at (or beyond) the source duration is a no-op.
type TrimSpec struct {
	StartSeconds float64 `json:"trimStart"`
	EndSeconds   float64 `json:"trimEnd"`
}

// IsNoop reports whether applying the spec to a source of the given duration
// would change nothing.
func (t TrimSpec) IsNoop(sourceDuration float64) bool {
	if t.StartSeconds > 0 {
		return false
	}
	if t.EndSeconds > 0 && sourceDuration > 0 && t.EndSeconds < sourceDuration-0.001 {
		return false
	}
	return true
}

// GetVideoInfo probes a video file with ffprobe.
func GetVideoInfo(videoPath string) (*VideoInfo, error) {
	fileInfo, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("video file not found: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %v", err)
	}

	var width, height int
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			width = stream.Width
			height = stream.Height
			break
		}
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		duration = 0
	}

	size, err := strconv.ParseInt(result.Format.Size, 10, 64)
	if err != nil {
		size = fileInfo.Size()
	}

	format := "unknown"
	if len(result.Format.Format) > 0 {
		formatParts := strings.Split(result.Format.Format, ",")
		if len(formatParts) > 0 {
			format = formatParts[0]
		}
	}

	return &VideoInfo{
		Duration: duration,
		Width:    width,
		Height:   height,
		Format:   format,
		Size:     size,
	}, nil
}

// GenerateThumbnail grabs a single frame at timeOffset (e.g. "00:00:01").
func GenerateThumbnail(videoPath, thumbnailPath string, timeOffset string) error {
	dir := strings.Replace(thumbnailPath, "\\", "/", -1)
	dirParts := strings.Split(dir, "/")
	if len(dirParts) > 1 {
		dir = strings.Join(dirParts[:len(dirParts)-1], "/")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create thumbnail dir: %v", err)
	}

	return ffmpeg.Input(videoPath, ffmpeg.KwArgs{
		"ss": timeOffset,
	}).
		Output(thumbnailPath, ffmpeg.KwArgs{
			"vframes": "1",
			"q:v":     "2", // 1-31, lower is better
		}).
		OverWriteOutput().
		Run()
}

// TrimVideo writes the [start, end] window of videoPath to outputPath without
// re-encoding. The ffmpeg process is killed after timeout when one is set.
// Returns ErrNoEditProduced when the spec is a no-op for the given source
// duration.
func TrimVideo(videoPath, outputPath string, spec TrimSpec, sourceDuration float64, timeout time.Duration) error {
	if spec.IsNoop(sourceDuration) {
		return ErrNoEditProduced
	}

	inputArgs := ffmpeg.KwArgs{}
	if spec.StartSeconds > 0 {
		inputArgs["ss"] = fmt.Sprintf("%.3f", spec.StartSeconds)
	}

	outputArgs := ffmpeg.KwArgs{"c": "copy"}
	if spec.EndSeconds > spec.StartSeconds {
		outputArgs["t"] = fmt.Sprintf("%.3f", spec.EndSeconds-spec.StartSeconds)
	}

	stream := ffmpeg.Input(videoPath, inputArgs).
		Output(outputPath, outputArgs).
		OverWriteOutput()
	if timeout > 0 {
		stream = stream.WithTimeout(timeout)
	}
	return stream.Run()
}
