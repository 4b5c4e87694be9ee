package services

import (
	"context"
	"errors"

	"github.com/localnerve/storedb/internal/models"
	"github.com/localnerve/storedb/internal/types"
	"github.com/localnerve/storedb/internal/validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateProductInput is the body accepted by product creation
type CreateProductInput struct {
	ProductName string   `json:"product_name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// UpdateProductInput is a partial update; nil fields are left as they are
type UpdateProductInput struct {
	ProductName *string  `json:"product_name" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// ProductService manages product records
type ProductService struct {
	store
}

// NewProductService creates a ProductService over db
func NewProductService(db *gorm.DB, log *logrus.Logger) *ProductService {
	return &ProductService{store{db: db, log: log}}
}

// List returns every product ordered by id
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.conn(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, s.resolve("list products", err)
	}
	return products, nil
}

// Get returns the product with the given id
func (s *ProductService) Get(ctx context.Context, id uint64) (*models.Product, error) {
	product, err := findProduct(s.conn(ctx), id)
	if err != nil {
		return nil, s.resolve("get product", err)
	}
	return product, nil
}

// Create validates and stores a new product
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product := models.Product{
		ProductName: input.ProductName,
		Price:       *input.Price,
	}
	if err := s.conn(ctx).Create(&product).Error; err != nil {
		return nil, s.resolve("create product", err)
	}

	s.log.WithField("product_id", product.ID).Info("product created")
	return &product, nil
}

// Update applies the fields present in input to the product with the given id
func (s *ProductService) Update(ctx context.Context, id uint64, input UpdateProductInput) (*models.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var product *models.Product
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if product, err = findProduct(tx, id); err != nil {
			return err
		}

		if input.ProductName != nil {
			product.ProductName = *input.ProductName
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		return tx.Save(product).Error
	})
	if err != nil {
		return nil, s.resolve("update product", err)
	}

	s.log.WithField("product_id", id).Info("product updated")
	return product, nil
}

// Delete removes the product and detaches it from every order that held it
func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	var detached int64
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, id)
		if err != nil {
			return err
		}

		result := tx.Where("product_id = ?", id).Delete(&models.OrderProduct{})
		if result.Error != nil {
			return result.Error
		}
		detached = result.RowsAffected

		return tx.Delete(product).Error
	})
	if err != nil {
		return s.resolve("delete product", err)
	}

	s.log.WithFields(logrus.Fields{
		"product_id":      id,
		"orders_detached": detached,
	}).Info("product deleted")
	return nil
}

func findProduct(tx *gorm.DB, id uint64) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Product", id)
		}
		return nil, err
	}
	return &product, nil
}
