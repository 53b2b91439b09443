// Package imageproc turns uploaded image bytes into a stored, upright JPEG
// plus the metadata shown in the gallery.
package imageproc

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/semaphore"

	// Registers WebP with image.Decode; imaging covers JPEG, PNG, GIF, BMP and TIFF.
	_ "golang.org/x/image/webp"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/token"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
	"github.com/myphoto-inc/myphoto/internal/shared/constants"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

const (
	DefaultQuality    = 85
	filenameRandBytes = 16
	outputExtension   = ".jpg"
)

// IngestResult describes a stored image.
type IngestResult struct {
	Filename string
	Metadata gallery.ImageMetadata
}

type Pipeline struct {
	store   gallery.BlobStore
	sem     *semaphore.Weighted
	quality int
	logger  logger.Interface
}

func NewPipeline(store gallery.BlobStore, cfg config.ImageConfig, log logger.Interface) *Pipeline {
	quality := cfg.Quality
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	workers := cfg.MaxConcurrent
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		store:   store,
		sem:     semaphore.NewWeighted(int64(workers)),
		quality: quality,
		logger:  log,
	}
}

// Ingest normalizes raw into an upright JPEG, writes it to the blob store
// under a random name and returns that name with the extracted metadata.
// Nothing is written when the input cannot be decoded.
func (p *Pipeline) Ingest(ctx context.Context, raw []byte, originalFilename string) (*IngestResult, error) {
	if len(raw) == 0 {
		return nil, errors.NewDecodeError("empty image upload")
	}

	detected := mimetype.Detect(raw).String()
	if !strings.HasPrefix(detected, "image/") {
		p.logger.Warnw("rejected non-image upload",
			"detected_mime", detected,
			"filename", originalFilename,
		)
		return nil, errors.NewDecodeError("uploaded file is not an image", detected)
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	encoded, metadata, err := p.process(raw, originalFilename)
	p.sem.Release(1)
	if err != nil {
		return nil, err
	}

	name, err := generateFilename()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate filename", err.Error())
	}

	if err := p.store.Put(ctx, name, encoded, constants.ContentTypeJPEG); err != nil {
		p.logger.Errorw("failed to store image", "filename", name, "error", err)
		return nil, errors.NewStorageError("failed to store image", err.Error())
	}

	p.logger.Infow("image ingested",
		"filename", name,
		"original_name", originalFilename,
		"width", metadata.Width,
		"height", metadata.Height,
		"size", metadata.Size,
	)

	return &IngestResult{Filename: name, Metadata: metadata}, nil
}

func (p *Pipeline) process(raw []byte, originalFilename string) ([]byte, gallery.ImageMetadata, error) {
	var metadata gallery.ImageMetadata

	fields, err := readExif(raw)
	if err != nil {
		p.logger.Debugw("no usable exif data", "filename", originalFilename, "error", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, metadata, errors.NewDecodeError("failed to decode image", err.Error())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, metadata, errors.NewDecodeError("failed to encode image", err.Error())
	}
	encoded := buf.Bytes()

	if seg := extractExifSegment(raw); seg != nil {
		resetOrientation(seg)
		encoded = embedExifSegment(encoded, seg)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(encoded))
	if err != nil {
		return nil, metadata, errors.NewDecodeError("failed to read encoded image", err.Error())
	}

	metadata.Width = cfg.Width
	metadata.Height = cfg.Height
	metadata.Size = int64(len(encoded))
	metadata.MimeType = constants.ContentTypeJPEG
	fields.apply(&metadata)

	return encoded, metadata, nil
}

func generateFilename() (string, error) {
	name, err := token.RandomHex(filenameRandBytes)
	if err != nil {
		return "", fmt.Errorf("generate filename: %w", err)
	}
	return name + outputExtension, nil
}
