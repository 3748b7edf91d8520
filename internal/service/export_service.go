package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/export"
	"app/internal/model"
)

var (
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrUnrenderableContent = errors.New("stored sermon content is not renderable")
	supportedExportFormats = map[string]string{
		"pdf":  "application/pdf",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"md":   "text/markdown; charset=utf-8",
	}
)

// ExportFile is a rendered artifact ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders an owned artifact to a downloadable format.
// Rendering is pure: exporting the same artifact twice yields the same
// bytes.
type ExportService interface {
	Export(ctx context.Context, artifactID, callerID, format string) (*ExportFile, error)
}

type exportService struct {
	access AccessService
}

func NewExportService(access AccessService) ExportService {
	return &exportService{access: access}
}

func (s *exportService) Export(ctx context.Context, artifactID, callerID, format string) (*ExportFile, error) {
	artifact, err := s.access.RequireOwned(ctx, artifactID, callerID)
	if err != nil {
		return nil, err
	}
	outline, err := model.ParseOutline(artifact.Sermon)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnrenderableContent, artifact.ID)
	}

	contentType, ok := supportedExportFormats[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	var data []byte
	switch format {
	case "pdf":
		data, err = export.BuildPDF(outline, artifact.Metadata, artifact.CreatedAt)
	case "docx":
		data, err = export.BuildDOCX(outline, artifact.Metadata)
	case "md":
		data = []byte(export.BuildMarkdown(outline, artifact.Metadata))
	}
	if err != nil {
		return nil, fmt.Errorf("rendering %s export for artifact %s: %w", format, artifact.ID, err)
	}

	return &ExportFile{
		Filename:    export.Filename(artifact.Metadata, artifact.ID) + "." + format,
		ContentType: contentType,
		Data:        data,
	}, nil
}
