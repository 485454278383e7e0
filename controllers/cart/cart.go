package cartControllers

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sareen-software-solution/django-project/models"
)

var (
	ErrProductNotFound = errors.New("product does not exist")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

// GetOrCreateCart returns the identity's cart, creating an empty one on
// first access. Concurrent first accesses for the same identity converge on
// a single row: the insert goes through ON CONFLICT (user_id) DO NOTHING
// against the unique index, and the follow-up read picks up whichever row
// won.
func GetOrCreateCart(db *gorm.DB, userID string) (models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return models.Cart{}, err
	}

	var out models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&out).Error; err != nil {
		return models.Cart{}, err
	}
	return out, nil
}

// AddOrMergeItem adds quantity of a product to the cart. An existing
// (cart, product) row has the quantity merged into it atomically via an
// upsert on the composite unique index, so concurrent adds sum correctly and
// never produce duplicate rows. A quantity of zero removes the item if
// present and is otherwise a no-op.
func AddOrMergeItem(db *gorm.DB, cartID uint, productID uint, quantity int) (models.CartItem, error) {
	if quantity < 0 {
		return models.CartItem{}, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, ErrProductNotFound
		}
		return models.CartItem{}, err
	}

	if quantity == 0 {
		err := RemoveItem(db, cartID, productID)
		if err != nil && !errors.Is(err, ErrItemNotFound) {
			return models.CartItem{}, err
		}
		return models.CartItem{}, nil
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error; err != nil {
		return models.CartItem{}, err
	}

	// Re-read: the upsert path leaves the struct holding the pre-merge
	// quantity.
	var out models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&out).Error; err != nil {
		return models.CartItem{}, err
	}
	return out, nil
}

// RemoveItem deletes one (cart, product) row outright.
func RemoveItem(db *gorm.DB, cartID uint, productID uint) error {
	result := db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// TotalPrice sums price * quantity over the cart's items against the current
// product catalog. Prices are never frozen on the cart side.
func TotalPrice(db *gorm.DB, cartID uint) (decimal.Decimal, error) {
	var items []models.CartItem
	if err := db.Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err != nil {
			return decimal.Zero, err
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// ClearItems empties the cart. The cart row itself persists for reuse.
func ClearItems(db *gorm.DB, cartID uint) error {
	return db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
