package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestExportMarkdownIsIdempotent(t *testing.T) {
	repo := newFakeArtifactRepo()
	exports := NewExportService(NewAccessService(repo))

	owner := uuid.NewString()
	artifact := repo.add(owner)
	ctx := context.Background()

	first, err := exports.Export(ctx, artifact.ID, owner, "md")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	second, err := exports.Export(ctx, artifact.ID, owner, "md")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatal("markdown export must be byte-identical across invocations")
	}
	if first.ContentType != "text/markdown; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", first.ContentType)
	}
	if !strings.HasSuffix(first.Filename, ".md") || !strings.Contains(first.Filename, artifact.ID) {
		t.Fatalf("unexpected filename: %s", first.Filename)
	}
	if !strings.Contains(string(first.Data), "## Tese") {
		t.Fatal("markdown missing thesis section")
	}
}

func TestExportBinaryFormatsAreIdempotent(t *testing.T) {
	repo := newFakeArtifactRepo()
	exports := NewExportService(NewAccessService(repo))

	owner := uuid.NewString()
	artifact := repo.add(owner)
	ctx := context.Background()

	for _, format := range []string{"pdf", "docx"} {
		first, err := exports.Export(ctx, artifact.ID, owner, format)
		if err != nil {
			t.Fatalf("%s export: %v", format, err)
		}
		second, err := exports.Export(ctx, artifact.ID, owner, format)
		if err != nil {
			t.Fatalf("%s export: %v", format, err)
		}
		if !bytes.Equal(first.Data, second.Data) {
			t.Fatalf("%s export must be byte-identical across invocations", format)
		}
		if len(first.Data) == 0 {
			t.Fatalf("%s export is empty", format)
		}
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	repo := newFakeArtifactRepo()
	exports := NewExportService(NewAccessService(repo))

	owner := uuid.NewString()
	artifact := repo.add(owner)

	if _, err := exports.Export(context.Background(), artifact.ID, owner, "txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExportDegradedContent(t *testing.T) {
	repo := newFakeArtifactRepo()
	exports := NewExportService(NewAccessService(repo))

	owner := uuid.NewString()
	artifact := repo.add(owner)
	repo.artifacts[artifact.ID].Sermon = json.RawMessage(`{"raw":"conteúdo corrompido"}`)

	if _, err := exports.Export(context.Background(), artifact.ID, owner, "pdf"); !errors.Is(err, ErrUnrenderableContent) {
		t.Fatalf("expected ErrUnrenderableContent, got %v", err)
	}
}
