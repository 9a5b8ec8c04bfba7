package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
)

var allowedMediaTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

type MediaService interface {
	Upload(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaAsset, error)
	List(ctx context.Context, userID int64) ([]*models.MediaAsset, error)
}

type mediaService struct {
	ma repository.MediaAssetRepository
	r2 *R2Service
}

func NewMediaService(ma repository.MediaAssetRepository, r2 *R2Service) MediaService {
	return &mediaService{ma: ma, r2: r2}
}

// Upload sniffs the file's real type, rejects anything outside the allow-list,
// stores the bytes in R2 under a nanoid key and records the asset. The
// returned file_url can be used directly as a media_urls entry when
// scheduling.
func (s *mediaService) Upload(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaAsset, error) {
	content, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer content.Close()

	fileBytes, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("reading file content: %w", err)
	}

	kind, err := filetype.Match(fileBytes)
	if err != nil || kind == types.Unknown {
		return nil, invalid("file", "unsupported file type")
	}
	if _, ok := allowedMediaTypes[kind.Extension]; !ok {
		return nil, invalid("file", fmt.Sprintf("file type %s is not allowed", kind.Extension))
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generating object key: %w", err)
	}

	if err := s.r2.UploadToR2(ctx, key, fileBytes, kind.MIME.Value); err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	asset := &models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: kind.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FileURL:  s.r2.PublicURL(key),
	}
	assetID, err := s.ma.Create(ctx, nil, asset)
	if err != nil {
		return nil, fmt.Errorf("saving media asset: %w", err)
	}
	asset.ID = assetID

	return asset, nil
}

func (s *mediaService) List(ctx context.Context, userID int64) ([]*models.MediaAsset, error) {
	assets, err := s.ma.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing media assets: %w", err)
	}
	return assets, nil
}
