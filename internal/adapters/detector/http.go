package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"hazard-watch/internal/config"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"
)

// Adapter calls the external inference service over HTTP. The service accepts
// a multipart upload and answers with per-frame detections.
type Adapter struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

var _ port.Detector = (*Adapter)(nil)

type detectResponse struct {
	FPS    int                     `json:"fps"`
	Width  int                     `json:"width"`
	Height int                     `json:"height"`
	Frames []domain.FrameDetection `json:"frames"`
}

func NewAdapter(cfg config.DetectorConfig, logger *slog.Logger) *Adapter {
	return &Adapter{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

// Detect submits a staged local file for inference
func (a *Adapter) Detect(ctx context.Context, localPath string, confidence float64) (*domain.DetectionReport, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMedia, err)
	}
	defer file.Close()

	reader, contentType := multipartBody(file, filepath.Base(localPath), confidence)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"/detect", reader)
	if err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call detector: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: detector rejected input: %s", domain.ErrInvalidMedia, body)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("detector returned status %d", resp.StatusCode)
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}

	a.logger.Info("detector responded", "path", localPath, "frames", len(decoded.Frames))

	return &domain.DetectionReport{
		Frames: decoded.Frames,
		FPS:    decoded.FPS,
		Width:  decoded.Width,
		Height: decoded.Height,
	}, nil
}

// multipartBody streams the file as a multipart form without buffering it in
// memory
func multipartBody(file *os.File, fileName string, confidence float64) (io.Reader, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer writer.Close()

		if err := writer.WriteField("confidence", strconv.FormatFloat(confidence, 'f', -1, 64)); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := writer.CreateFormFile("video", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
		}
	}()

	return pr, writer.FormDataContentType()
}
