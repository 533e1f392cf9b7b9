package process

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"hazard-watch/internal/config"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"
)

type processingService struct {
	store    port.ObjectStore
	metadata port.MetadataStore
	detector port.Detector
	cfg      config.DetectorConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewProcessingService creates the orchestrator that ties one detection run to
// a single consistent record spanning both stores
func NewProcessingService(store port.ObjectStore, meta port.MetadataStore, detector port.Detector, cfg config.DetectorConfig, logger *slog.Logger) port.ProcessingService {
	return &processingService{
		store:    store,
		metadata: meta,
		detector: detector,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessAndStore runs detection on a staged local file, persists the artifact
// and its detection log to the object store, then writes the metadata rows.
// Ordering is fixed: the artifact write always precedes the metadata write. If
// the metadata store fails the artifact stays in the object store so a later
// reconciliation pass can attach metadata without re-uploading.
func (p *processingService) ProcessAndStore(ctx context.Context, localPath, originalName string, id domain.Identity) (*domain.ProcessResult, error) {
	report, err := p.detector.Detect(ctx, localPath, p.cfg.ConfidenceThreshold)
	if err != nil {
		p.logger.Error("detection failed", "path", localPath, "user", id.Username, "error", err)
		return nil, err
	}
	p.logger.Info("detection completed", "user", id.Username, "frames", len(report.Frames), "fps", report.FPS)

	artifactKey := domain.BuildArtifactKey(id.Username, originalName, p.now())
	logKey := domain.LogKeyFor(artifactKey)
	summary, hazardDetected := domain.Summarize(report.Frames)

	objectMeta := map[string]string{
		domain.MetaUsername:         id.Username,
		domain.MetaOriginalFilename: originalName,
		domain.MetaFPS:              strconv.Itoa(report.FPS),
		domain.MetaWidth:            strconv.Itoa(report.Width),
		domain.MetaHeight:           strconv.Itoa(report.Height),
		domain.MetaProcessedAt:      p.now().Format(time.RFC3339),
	}

	if err := p.store.PutArtifact(ctx, localPath, artifactKey, objectMeta); err != nil {
		p.logger.Error("artifact write failed", "key", artifactKey, "error", err)
		return nil, fmt.Errorf("put artifact %s: %w", artifactKey, err)
	}
	p.logger.Info("artifact persisted", "key", artifactKey)

	if err := p.store.PutLog(ctx, logKey, report.Frames, map[string]string{domain.MetaUsername: id.Username}); err != nil {
		p.logger.Error("detection log write failed", "key", logKey, "error", err)
		return nil, fmt.Errorf("put detection log %s: %w", logKey, err)
	}
	p.logger.Info("detection log persisted", "key", logKey)

	videoID, err := p.metadata.SaveVideoMetadata(ctx, id.UserID, artifactKey, p.store.VideoBucket(), objectMeta, domain.VideoStatusPending)
	if err != nil {
		// The artifact stays in the object store on purpose: metadata can be
		// backfilled later, re-uploading cannot be asked of the user.
		p.logger.Error("metadata write failed, artifact retained", "key", artifactKey, "error", err)
		return nil, fmt.Errorf("save video metadata for %s: %w", artifactKey, err)
	}
	p.logger.Info("video metadata written", "video_id", videoID, "key", artifactKey)

	if err := p.metadata.SaveDetectionResult(ctx, videoID, logKey, hazardDetected, summary); err != nil {
		p.logger.Error("detection result write failed, artifact retained", "video_id", videoID, "error", err)
		return nil, fmt.Errorf("save detection result for %s: %w", artifactKey, err)
	}
	p.logger.Info("detection result written", "video_id", videoID, "hazard_detected", hazardDetected)

	p.metadata.AppendActionLog(ctx, id.UserID, domain.ActionUpload, &videoID, nil)

	return &domain.ProcessResult{
		VideoID:        videoID,
		ArtifactKey:    artifactKey,
		LogKey:         logKey,
		Frames:         report.Frames,
		FPS:            report.FPS,
		HazardDetected: hazardDetected,
	}, nil
}
