// internal/services/catalog_service.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ProductPage is the paginated listing shape the storefront client expects.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Price        float64  `json:"price" validate:"min=0"`
	Image        string   `json:"image"`
	Images       []string `json:"images,omitempty"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	CountInStock int      `json:"countInStock" validate:"min=0"`
}

// UpdateProductRequest uses pointers so a zero price or stock count is
// distinguishable from an omitted field.
type UpdateProductRequest struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Image        *string  `json:"image,omitempty"`
	Images       []string `json:"images,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Description  *string  `json:"description,omitempty"`
	CountInStock *int     `json:"countInStock,omitempty" validate:"omitempty,min=0"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// ListProducts returns one page of the catalog. The keyword, when present, is
// a case-insensitive substring match on the product name; pages count from 1
// and the listing follows insertion order.
func (s *CatalogService) ListProducts(keyword string, page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = utils.DefaultPageSize
	}

	query := s.db.Model(&models.Product{})
	if keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	products := []models.Product{}
	if err := query.Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return &ProductPage{
		Products: products,
		Page:     page,
		Pages:    utils.TotalPages(count, pageSize),
	}, nil
}

// TopRated returns the highest-rated products; ties keep insertion order.
func (s *CatalogService) TopRated(limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 3
	}

	var products []models.Product
	if err := s.db.Order("rating DESC, created_at ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return products, nil
}

func (s *CatalogService) GetByID(id string) (*models.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidID, "invalid product id")
	}

	var product models.Product
	err = s.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("reviews.created_at ASC")
	}).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "product not found")
		}
		return nil, apperrors.Upstream(err)
	}

	return &product, nil
}

func (s *CatalogService) Create(sellerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid product data", err)
	}

	product := &models.Product{
		Name:         req.Name,
		Price:        req.Price,
		SellerID:     sellerID,
		Image:        req.Image,
		Images:       req.Images,
		Brand:        req.Brand,
		Category:     req.Category,
		Description:  req.Description,
		CountInStock: req.CountInStock,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return product, nil
}

func (s *CatalogService) Update(id string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid product data", err)
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CountInStock != nil {
		product.CountInStock = *req.CountInStock
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return product, nil
}

func (s *CatalogService) Delete(id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.New(apperrors.KindInvalidID, "invalid product id")
	}

	result := s.db.Delete(&models.Product{}, "id = ?", productID)
	if result.Error != nil {
		return apperrors.Upstream(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "product not found")
	}

	return nil
}

// AddReview appends a review and folds it into the denormalized aggregate.
// The aggregate update is a single SQL running merge so concurrent reviews on
// the same product cannot lose each other's contribution, and the whole
// operation runs in one transaction: a failed persist leaves no partial state.
func (s *CatalogService) AddReview(productIDStr string, author models.User, req *AddReviewRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid review data", err)
	}

	productID, err := uuid.Parse(productIDStr)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidID, "invalid product id")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindNotFound, "product not found")
			}
			return apperrors.Upstream(err)
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ? AND author_id = ?", productID, author.ID).
			Count(&existing).Error; err != nil {
			return apperrors.Upstream(err)
		}
		if existing > 0 {
			return apperrors.New(apperrors.KindConflict, "product already reviewed")
		}

		review := models.Review{
			ProductID:  productID,
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return apperrors.Upstream(err)
		}

		// rating := (rating*n + new) / (n+1); both columns read their old row
		// values within the single UPDATE.
		if err := tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumns(map[string]interface{}{
				"rating":      gorm.Expr("(rating * num_reviews + ?) / (num_reviews + 1)", float64(req.Rating)),
				"num_reviews": gorm.Expr("num_reviews + 1"),
			}).Error; err != nil {
			return apperrors.Upstream(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(productIDStr)
}
