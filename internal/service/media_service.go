package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"referee_training_backend/internal/config"
	"referee_training_backend/internal/util"
	"referee_training_backend/pkg/logger"
)

const defaultEditTimeout = 600 * time.Second

// MediaService ingests uploaded clips: sniffs the MIME type, probes the
// video, grabs a thumbnail frame, applies an optional trim and hands the
// final assets to the storage provider.
type MediaService struct {
	storage *StorageService

	mu  sync.RWMutex
	cfg config.MediaConfig
}

func NewMediaService(storage *StorageService, cfg config.MediaConfig) *MediaService {
	return &MediaService{storage: storage, cfg: cfg}
}

// UpdateLimits swaps in new media limits; in-flight uploads keep the limits
// they started with.
func (s *MediaService) UpdateLimits(cfg config.MediaConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *MediaService) limits() config.MediaConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func editTimeout(cfg config.MediaConfig) time.Duration {
	if cfg.EditTimeoutSeconds <= 0 {
		return defaultEditTimeout
	}
	return time.Duration(cfg.EditTimeoutSeconds) * time.Second
}

// UploadResult describes the stored assets of one ingested clip.
type UploadResult struct {
	FileURL      string         `json:"fileUrl"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	Duration     float64        `json:"duration"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Format       string         `json:"format"`
	Size         int64          `json:"size"`
	TrimMeta     datatypes.JSON `json:"trimMeta,omitempty"`
}

// UploadVideo runs the full ingest pipeline. A trim spec that changes
// nothing surfaces ErrNoEditProduced so callers can distinguish "stored as
// uploaded" from "stored an edit".
func (s *MediaService) UploadVideo(ctx context.Context, header *multipart.FileHeader, trim *util.TrimSpec) (*UploadResult, error) {
	cfg := s.limits()
	if header.Size > cfg.MaxUploadMB*1024*1024 {
		return nil, fmt.Errorf("upload exceeds %dMB: %w", cfg.MaxUploadMB, util.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !util.IsAllowedVideoExt(ext) {
		return nil, fmt.Errorf("unsupported extension %s: %w", ext, util.ErrValidation)
	}

	src, err := header.Open()
	if err != nil {
		return nil, util.ErrValidation
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, util.ErrValidation)
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, util.ErrPersistence
	}

	// Work on a local scratch copy; ffmpeg needs a real path.
	workDir, err := os.MkdirTemp("", "clip-ingest-*")
	if err != nil {
		return nil, util.ErrPersistence
	}
	defer os.RemoveAll(workDir)

	key := uuid.New().String()
	scratch := filepath.Join(workDir, key+ext)
	out, err := os.Create(scratch)
	if err != nil {
		return nil, util.ErrPersistence
	}
	if _, err := out.ReadFrom(src); err != nil {
		out.Close()
		return nil, util.ErrPersistence
	}
	out.Close()

	info, err := util.GetVideoInfo(scratch)
	if err != nil {
		logger.Log.Error("probe uploaded video", zap.Error(err), zap.String("file", header.Filename))
		return nil, fmt.Errorf("unreadable video: %w", util.ErrValidation)
	}

	result := &UploadResult{
		Duration: info.Duration,
		Width:    info.Width,
		Height:   info.Height,
		Format:   info.Format,
		Size:     info.Size,
	}

	finalPath := scratch
	if trim != nil {
		trimmed := filepath.Join(workDir, key+"-trim"+ext)
		err := util.TrimVideo(scratch, trimmed, *trim, info.Duration, editTimeout(cfg))
		switch {
		case err == util.ErrNoEditProduced:
			// Stored as uploaded; the caller decides whether that is an error.
		case err != nil:
			logger.Log.Error("trim uploaded video", zap.Error(err))
			return nil, util.ErrPersistence
		default:
			finalPath = trimmed
			trimInfo, err := util.GetVideoInfo(trimmed)
			if err == nil {
				result.Duration = trimInfo.Duration
				result.Size = trimInfo.Size
			}
			meta, _ := json.Marshal(trim)
			result.TrimMeta = datatypes.JSON(meta)
		}
	}

	thumbPath := filepath.Join(workDir, key+".jpg")
	offset := fmt.Sprintf("00:00:%02d", cfg.ThumbnailOffsetSec)
	if err := util.GenerateThumbnail(finalPath, thumbPath, offset); err != nil {
		logger.Log.Warn("thumbnail generation failed", zap.Error(err))
	}

	objectKey := "videos/" + key + ext
	fileURL, err := s.storage.UploadFile(ctx, objectKey, finalPath, mimeType)
	if err != nil {
		logger.Log.Error("store video asset", zap.Error(err))
		return nil, util.ErrPersistence
	}
	result.FileURL = fileURL

	if _, err := os.Stat(thumbPath); err == nil {
		thumbURL, err := s.storage.UploadFile(ctx, "thumbnails/"+key+".jpg", thumbPath, util.MimeJPEG)
		if err != nil {
			logger.Log.Warn("store thumbnail", zap.Error(err))
		} else {
			result.ThumbnailURL = thumbURL
		}
	}

	return result, nil
}
