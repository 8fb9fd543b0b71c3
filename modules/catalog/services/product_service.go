package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/pkg/metrics"
	"github.com/docesofia/storefront/pkg/serrors"
	"github.com/docesofia/storefront/pkg/storage"
)

var validate = validator.New()

const imagePrefix = "products"

// ImageUpload is a raw image file received from the transport layer.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type ProductService struct {
	repo    product.Repository
	storage storage.Storage
	logger  *logrus.Logger
}

func NewProductService(repo product.Repository, store storage.Storage, logger *logrus.Logger) *ProductService {
	return &ProductService{repo: repo, storage: store, logger: logger}
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, params product.FindParams) ([]*product.Product, error) {
	return s.repo.List(ctx, params)
}

// Create validates the payload, uploads the image files and persists the
// product. Every directly created product must end up with at least one
// image. Uploaded objects are removed again if persistence fails.
func (s *ProductService) Create(ctx context.Context, data *product.CreateData, images []ImageUpload) (*product.Product, error) {
	if err := validate.Struct(data); err != nil {
		return nil, validationError(err)
	}
	if data.Price.IsNegative() {
		return nil, serrors.NewValidation("price must not be negative")
	}
	if len(images) == 0 {
		return nil, serrors.NewValidation("at least one image is required")
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	data.Images = urls
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		s.deleteImageURLs(ctx, urls)
		return nil, err
	}
	return created, nil
}

// Update merges data into the stored product. keepImages lists the previously
// uploaded URLs the caller wants to retain; every other existing image is
// deleted from storage best-effort, and newly uploaded files are appended.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, data *product.UpdateData, keepImages []string, images []ImageUpload) (*product.Product, error) {
	if data.Price != nil && data.Price.IsNegative() {
		return nil, serrors.NewValidation("price must not be negative")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := make(map[string]struct{}, len(keepImages))
	for _, url := range keepImages {
		kept[url] = struct{}{}
	}
	var removed []string
	for _, url := range existing.Images {
		if _, ok := kept[url]; !ok {
			removed = append(removed, url)
		}
	}

	newURLs, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	finalImages := append(append([]string{}, keepImages...), newURLs...)
	if len(finalImages) == 0 {
		return nil, serrors.NewValidation("the product must keep at least one image")
	}
	data.Images = &finalImages

	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		s.deleteImageURLs(ctx, newURLs)
		return nil, err
	}

	s.deleteImageURLs(ctx, removed)
	return updated, nil
}

// Delete removes the product and every image it references. Image deletion
// is best-effort: an object already absent from storage is not an error.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteImageURLs(ctx, existing.Images)
	return nil
}

func (s *ProductService) uploadImages(ctx context.Context, images []ImageUpload) ([]string, error) {
	uploaded := make([]string, 0, len(images))
	for _, img := range images {
		contentType, err := storage.SniffImage(img.Data)
		if err != nil {
			metrics.ImageUploads.WithLabelValues("rejected").Inc()
			s.deleteImageURLs(ctx, uploaded)
			return nil, err
		}
		name := storage.ObjectName(imagePrefix, img.Filename)
		url, err := s.storage.Put(ctx, name, contentType, img.Data)
		if err != nil {
			// Compensate: drop what was already written so a failed batch
			// leaves no orphans behind.
			metrics.ImageUploads.WithLabelValues("failed").Inc()
			s.deleteImageURLs(ctx, uploaded)
			return nil, serrors.NewBackendUnavailable(err)
		}
		metrics.ImageUploads.WithLabelValues("ok").Inc()
		uploaded = append(uploaded, url)
	}
	return uploaded, nil
}

func (s *ProductService) deleteImageURLs(ctx context.Context, urls []string) {
	for _, url := range urls {
		path, ok := s.storage.PathFromURL(url)
		if !ok {
			s.logger.WithField("url", url).Warn("skipping deletion of foreign image url")
			continue
		}
		if err := s.storage.Delete(ctx, path); err != nil {
			s.logger.WithError(err).WithField("path", path).Warn("failed to delete image object")
		}
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field()[:1]) + verrs[0].Field()[1:]
		return serrors.NewFieldRequired(field)
	}
	return serrors.NewValidation(err.Error())
}
