package checkoutControllers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/models"
)

var (
	// ErrNoActiveCart: checkout was attempted for an identity with no cart
	// row, or the cart's contents were consumed by a concurrent checkout
	// before this one could commit.
	ErrNoActiveCart = errors.New("no active cart for user")
	// ErrEmptyCart: the cart exists but holds no items.
	ErrEmptyCart = errors.New("cart is empty")
)

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Checkout converts the identity's cart into one Order with one OrderItem
// per cart line, freezing product id, quantity and unit price, then empties
// the cart. The conversion and the emptying happen in a single transaction:
// a storage fault rolls everything back and the cart keeps its contents.
//
// The final delete doubles as the concurrency guard. If another checkout for
// the same cart commits first, this transaction's delete affects fewer rows
// than it read, and the whole thing rolls back with ErrNoActiveCart — two
// checkouts can never both convert the same cart contents.
func Checkout(db *gorm.DB, userID string) (models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNoActiveCart
		}
		return models.Order{}, err
	}
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.CartID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrNoActiveCart
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
		}

		order = models.Order{
			UserID:    userID,
			OrderRef:  generateOrderRef(),
			Status:    models.OrderStatusPending,
			Items:     orderItems,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		result := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(items)) {
			// Someone else emptied the cart underneath us.
			return ErrNoActiveCart
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}
