package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"painters-telegraph/internal/api"

	"github.com/spf13/afero"
)

// Drawing is a locally selected image waiting to be uploaded.
type Drawing struct {
	Name    string
	Content io.Reader
}

// SelectDrawing reads the file at path. An empty path means nothing was
// selected.
func SelectDrawing(fs afero.Fs, path string) (*Drawing, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, api.ErrNoFileSelected
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read drawing: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing %s is empty", path)
	}
	return &Drawing{Name: filepath.Base(path), Content: bytes.NewReader(data)}, nil
}

// PartialSubmissionError means the drawing was uploaded but the submit step
// failed. URL is where the upload landed.
type PartialSubmissionError struct {
	URL string
	Err error
}

func (e *PartialSubmissionError) Error() string {
	return fmt.Sprintf("drawing uploaded to %s but not submitted: %v", e.URL, e.Err)
}

func (e *PartialSubmissionError) Unwrap() error {
	return e.Err
}

// DrawingPipeline uploads a drawing and then submits its URL for the round.
type DrawingPipeline struct {
	backend Backend
}

func NewDrawingPipeline(backend Backend) *DrawingPipeline {
	return &DrawingPipeline{backend: backend}
}

// Submit returns the uploaded URL. The submit step never runs when the
// upload fails.
func (p *DrawingPipeline) Submit(ctx context.Context, action api.GameAction, drawing *Drawing) (string, error) {
	if drawing == nil || drawing.Content == nil {
		return "", api.ErrNoFileSelected
	}
	url, err := p.backend.UploadDrawing(ctx, api.UploadDrawingInput{
		Player:   action.Player,
		FileName: drawing.Name,
		Content:  drawing.Content,
	})
	if err != nil {
		return "", err
	}
	err = p.backend.SubmitDrawing(ctx, api.SubmitDrawingInput{
		GameAction: action,
		DrawingURL: url,
	})
	if err != nil {
		return url, &PartialSubmissionError{URL: url, Err: err}
	}
	return url, nil
}
