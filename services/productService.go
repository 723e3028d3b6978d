package services

import (
	"context"
	"errors"
	"fmt"

	"festa-pos/dtos"
	"festa-pos/models"
	"festa-pos/utils"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product with this id already exists")
)

type ProductService interface {
	List(ctx context.Context, includeInactive bool) ([]models.Product, error)
	Create(ctx context.Context, input dtos.ProductInput, actor dtos.Actor) (*models.Product, error)
	Update(ctx context.Context, id string, input dtos.ProductInput, actor dtos.Actor) (*models.Product, error)
}

type productService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) ProductService {
	return &productService{db: db}
}

func validateProduct(category models.Category, price int64) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, category)
	}
	if price < 0 || price > MaxUnitPrice {
		return fmt.Errorf("%w: price must be between 0 and %d", ErrInvalidItem, MaxUnitPrice)
	}
	return nil
}

func (s *productService) List(ctx context.Context, includeInactive bool) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Order("sort_order ASC").Order("id ASC")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, input dtos.ProductInput, actor dtos.Actor) (*models.Product, error) {
	product := models.Product{
		ID:        input.ID,
		Name:      input.Name,
		Price:     input.Price,
		Category:  input.Category,
		Color:     input.Color,
		SortOrder: input.SortOrder,
		Active:    input.Active == nil || *input.Active,
	}
	if err := validateProduct(product.Category, product.Price); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, "id = ?", product.ID).Error; err == nil {
			return ErrProductExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return utils.CreateProductAuditLog(tx, utils.AuditEntry{
			Action:      "create",
			EntityID:    product.ID,
			UserID:      actor.UserID,
			IPAddress:   actor.IP,
			Description: fmt.Sprintf("Product '%s' created", product.Name),
		}, nil, &product)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Update(ctx context.Context, id string, input dtos.ProductInput, actor dtos.Actor) (*models.Product, error) {
	if err := validateProduct(input.Category, input.Price); err != nil {
		return nil, err
	}

	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		oldCopy := product

		product.Name = input.Name
		product.Price = input.Price
		product.Category = input.Category
		product.Color = input.Color
		product.SortOrder = input.SortOrder
		if input.Active != nil {
			product.Active = *input.Active
		}

		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		return utils.CreateProductAuditLog(tx, utils.AuditEntry{
			Action:      "update",
			EntityID:    product.ID,
			UserID:      actor.UserID,
			IPAddress:   actor.IP,
			Description: fmt.Sprintf("Product '%s' updated", product.Name),
		}, &oldCopy, &product)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
