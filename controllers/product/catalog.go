package productcontroller

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/models"
)

var ErrProductNotFound = errors.New("product not found")

type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductInput uses pointer fields so a partial update touches exactly
// the fields the caller sent.
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func validateFields(name, description *string, price *decimal.Decimal) *models.ValidationError {
	v := models.NewValidationError()
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			v.Add("name", "This field is required.")
		} else if len(n) > models.ProductNameMaxLen {
			v.Add("name", "Name must be at most 100 characters.")
		}
	}
	if description != nil && len(*description) > models.ProductDescriptionMaxLen {
		v.Add("description", "Description must be at most 150 characters.")
	}
	if price != nil && price.IsNegative() {
		v.Add("price", "Price must not be negative.")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}

// CreateProduct persists a new catalog entry after field validation.
func CreateProduct(db *gorm.DB, in CreateProductInput) (models.Product, error) {
	if v := validateFields(&in.Name, &in.Description, &in.Price); v != nil {
		return models.Product{}, v
	}

	product := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
	}
	if err := db.Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces exactly the fields present in the input; everything
// else is left untouched.
func UpdateProduct(db *gorm.DB, id uint, in UpdateProductInput) (models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	if v := validateFields(in.Name, in.Description, in.Price); v != nil {
		return models.Product{}, v
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}

	if len(updates) > 0 {
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			return models.Product{}, err
		}
	}
	return product, nil
}

// DeleteProduct removes a catalog entry. A missing id is ErrProductNotFound,
// never a fault.
func DeleteProduct(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetProduct fetches a single product by id.
func GetProduct(db *gorm.DB, id uint) (models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func ListProducts(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts matches the substring case-insensitively against product
// names. An empty query returns the full catalog.
func SearchProducts(db *gorm.DB, query string) ([]models.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return ListProducts(db)
	}

	var products []models.Product
	pattern := "%" + strings.ToLower(q) + "%"
	if err := db.Where("LOWER(name) LIKE ?", pattern).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
