package usecases

import (
	"context"

	"github.com/myphoto-inc/myphoto/internal/infrastructure/imageproc"
)

// ImageIngester normalizes an upload and writes it to blob storage.
// *imageproc.Pipeline implements it.
type ImageIngester interface {
	Ingest(ctx context.Context, raw []byte, originalFilename string) (*imageproc.IngestResult, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DescriptionRenderer turns a markdown description into safe HTML.
type DescriptionRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}
