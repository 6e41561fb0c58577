package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	errs "github.com/techagentng/dutyreport/errors"
	"github.com/techagentng/dutyreport/models"
)

const (
	MaxFileSize    = 10 << 20
	MaxImageSide   = 1920
	ThumbnailWidth = 200
	maxParallel    = 4

	// MaxImagePixels caps width*height before an upload is decoded.
	MaxImagePixels = 50_000_000
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// MediaService normalizes uploaded images and stores them with a thumbnail.
type MediaService interface {
	UploadImage(ctx context.Context, folder string, file *multipart.FileHeader) (*models.Media, error)
	UploadImages(ctx context.Context, folder string, files []*multipart.FileHeader) ([]models.Media, error)
}

type mediaService struct {
	Config    *config.Config
	logger    *logrus.Logger
	mediaRepo db.MediaRepository
}

func NewMediaService(mediaRepo db.MediaRepository, conf *config.Config, logger *logrus.Logger) MediaService {
	return &mediaService{
		Config:    conf,
		logger:    logger,
		mediaRepo: mediaRepo,
	}
}

// UploadImages processes files concurrently and returns the results in the
// order of files. The first failure cancels the rest.
func (m *mediaService) UploadImages(ctx context.Context, folder string, files []*multipart.FileHeader) ([]models.Media, error) {
	results := make([]models.Media, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			media, err := m.UploadImage(gctx, folder, file)
			if err != nil {
				return err
			}
			results[i] = *media
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (m *mediaService) UploadImage(ctx context.Context, folder string, file *multipart.FileHeader) (*models.Media, error) {
	if file.Size > MaxFileSize {
		return nil, errs.Validation(fmt.Sprintf("%s exceeds the %d MB limit", file.Filename, MaxFileSize>>20))
	}
	data, err := readFile(file)
	if err != nil {
		config.LogError(m.logger, "services", "UploadImage", "reading upload", file.Filename, err)
		return nil, errs.Validation(fmt.Sprintf("unable to read %s", file.Filename))
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, errs.Validation(fmt.Sprintf("%s is not a supported image (%s)", file.Filename, mtype.String()))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Validation(fmt.Sprintf("%s could not be decoded", file.Filename))
	}
	if cfg.Width*cfg.Height > MaxImagePixels {
		return nil, errs.Validation(fmt.Sprintf("%s is too large (%dx%d)", file.Filename, cfg.Width, cfg.Height))
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errs.Validation(fmt.Sprintf("%s could not be decoded", file.Filename))
	}

	full, thumb, err := processImage(img)
	if err != nil {
		config.LogError(m.logger, "services", "UploadImage", "encoding image", file.Filename, err)
		return nil, errs.ErrInternalServerError
	}

	name := uuid.New().String()
	fullURL, err := m.mediaRepo.Upload(ctx, fmt.Sprintf("%s/%s.jpg", folder, name), "image/jpeg", full.Bytes())
	if err != nil {
		config.LogError(m.logger, "services", "UploadImage", "uploading image", file.Filename, err)
		return nil, errs.Internal("unable to store image")
	}
	thumbURL, err := m.mediaRepo.Upload(ctx, fmt.Sprintf("%s/%s_thumb.jpg", folder, name), "image/jpeg", thumb.Bytes())
	if err != nil {
		config.LogError(m.logger, "services", "UploadImage", "uploading thumbnail", file.Filename, err)
		return nil, errs.Internal("unable to store image")
	}

	bounds := img.Bounds()
	return &models.Media{
		FileType:     mtype.String(),
		FileSize:     file.Size,
		Filename:     file.Filename,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		FullSizeURL:  fullURL,
		ThumbnailURL: thumbURL,
	}, nil
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxFileSize))
}

// processImage bounds the longest side to MaxImageSide and renders a
// ThumbnailWidth-wide thumbnail, both as JPEG.
func processImage(img image.Image) (*bytes.Buffer, *bytes.Buffer, error) {
	bounds := img.Bounds()
	if bounds.Dx() > MaxImageSide || bounds.Dy() > MaxImageSide {
		img = imaging.Fit(img, MaxImageSide, MaxImageSide, imaging.Lanczos)
	}
	full := new(bytes.Buffer)
	if err := imaging.Encode(full, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, nil, err
	}

	thumbnail := resize.Resize(ThumbnailWidth, 0, img, resize.Lanczos3)
	thumb := new(bytes.Buffer)
	if err := imaging.Encode(thumb, thumbnail, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, nil, err
	}
	return full, thumb, nil
}

// ImageURLs flattens media into their full-size URLs.
func ImageURLs(media []models.Media) []string {
	urls := make([]string, 0, len(media))
	for _, m := range media {
		urls = append(urls, m.FullSizeURL)
	}
	return urls
}
