package usecase

import (
	"context"
	"fmt"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.uber.org/zap"
)

// File is one image selected for upload: the original file name (its
// extension is kept for the object key) and the raw bytes.
type File struct {
	Name string
	Data []byte
}

// PhotoUsecase uploads image batches to object storage.
type PhotoUsecase struct {
	storage domain.PhotoStorage
	logger  *zap.Logger
}

func NewPhotoUsecase(storage domain.PhotoStorage, logger *zap.Logger) *PhotoUsecase {
	return &PhotoUsecase{storage: storage, logger: logger}
}

// UploadAll uploads files one at a time, in order, and returns the public
// URLs in the same order. Uploads are deliberately sequential so the URL at
// index i always belongs to the file at index i. The first failure aborts
// the batch before the next file is attempted; objects already uploaded are
// not deleted, which can leave orphans in the bucket. Nothing references
// them, since the caller never persists a partial batch.
func (uc *PhotoUsecase) UploadAll(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, f := range files {
		url, err := uc.storage.Upload(ctx, f.Name, f.Data)
		if err != nil {
			uc.logger.Error("photo upload aborted",
				zap.Int("index", i),
				zap.String("file", f.Name),
				zap.Int("uploaded", len(urls)),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpload, f.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
