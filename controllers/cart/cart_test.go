package cartControllers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price)}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestGetOrCreateCart_SameCartBothTimes(t *testing.T) {
	db := openTestDB(t)

	first, err := GetOrCreateCart(db, "alice")
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	second, err := GetOrCreateCart(db, "alice")
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if first.CartID != second.CartID {
		t.Fatalf("expected same cart id, got %d and %d", first.CartID, second.CartID)
	}

	var count int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", "alice").Count(&count).Error; err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cart row, got %d", count)
	}
}

func TestGetOrCreateCart_ConcurrentSingleCart(t *testing.T) {
	db := openTestDB(t)

	const N = 25
	ids := make(chan uint, N)

	var g errgroup.Group
	for i := 0; i < N; i++ {
		g.Go(func() error {
			cart, err := GetOrCreateCart(db, "bob")
			if err != nil {
				return err
			}
			ids <- cart.CartID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent GetOrCreateCart failed: %v", err)
	}
	close(ids)

	seen := map[uint]struct{}{}
	for id := range ids {
		seen[id] = struct{}{}
	}
	if len(seen) != 1 {
		t.Fatalf("expected exactly 1 cart id, got %d: %v", len(seen), seen)
	}
}

func TestAddOrMergeItem_MergesQuantities(t *testing.T) {
	db := openTestDB(t)
	product := createProduct(t, db, "shirt", "10")
	cart, _ := GetOrCreateCart(db, "alice")

	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := AddOrMergeItem(db, cart.CartID, product.ID, 4)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 7 {
		t.Fatalf("expected merged quantity 7, got %d", item.Quantity)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cart item row, got %d", count)
	}
}

func TestAddOrMergeItem_ConcurrentAddsSum(t *testing.T) {
	db := openTestDB(t)
	product := createProduct(t, db, "socks", "5")
	cart, _ := GetOrCreateCart(db, "bob")

	const N = 50
	var g errgroup.Group
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := AddOrMergeItem(db, cart.CartID, product.ID, 1)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent adds failed: %v", err)
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error; err != nil {
		t.Fatalf("fetch item: %v", err)
	}
	if item.Quantity != N {
		t.Fatalf("expected quantity %d, got %d", N, item.Quantity)
	}
}

func TestAddOrMergeItem_ZeroQuantityRemoves(t *testing.T) {
	db := openTestDB(t)
	product := createProduct(t, db, "hat", "20")
	cart, _ := GetOrCreateCart(db, "alice")

	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, 0); err != nil {
		t.Fatalf("zero-quantity add failed: %v", err)
	}

	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&count)
	if count != 0 {
		t.Fatalf("expected item removed on zero quantity, got %d rows", count)
	}

	// Zero quantity against an absent item is a no-op, not an error.
	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, 0); err != nil {
		t.Fatalf("zero-quantity no-op failed: %v", err)
	}
}

func TestAddOrMergeItem_Validation(t *testing.T) {
	db := openTestDB(t)
	product := createProduct(t, db, "belt", "15")
	cart, _ := GetOrCreateCart(db, "alice")

	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := AddOrMergeItem(db, cart.CartID, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestTotalPrice(t *testing.T) {
	db := openTestDB(t)
	productA := createProduct(t, db, "productA", "10")
	productB := createProduct(t, db, "productB", "15")
	cart, _ := GetOrCreateCart(db, "alice")

	if _, err := AddOrMergeItem(db, cart.CartID, productA.ID, 3); err != nil {
		t.Fatalf("add A: %v", err)
	}
	if _, err := AddOrMergeItem(db, cart.CartID, productB.ID, 2); err != nil {
		t.Fatalf("add B: %v", err)
	}

	total, err := TotalPrice(db, cart.CartID)
	if err != nil {
		t.Fatalf("TotalPrice failed: %v", err)
	}
	if want := decimal.NewFromInt(60); !total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, total)
	}
}

func TestTotalPrice_ReflectsCurrentPrices(t *testing.T) {
	db := openTestDB(t)
	product := createProduct(t, db, "jacket", "100")
	cart, _ := GetOrCreateCart(db, "alice")

	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.NewFromInt(120)).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	total, err := TotalPrice(db, cart.CartID)
	if err != nil {
		t.Fatalf("TotalPrice failed: %v", err)
	}
	if want := decimal.NewFromInt(240); !total.Equal(want) {
		t.Fatalf("expected live-priced total %s, got %s", want, total)
	}
}

func TestClearItems_KeepsCartRow(t *testing.T) {
	db := openTestDB(t)
	product := createProduct(t, db, "shoes", "80")
	cart, _ := GetOrCreateCart(db, "alice")

	if _, err := AddOrMergeItem(db, cart.CartID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ClearItems(db, cart.CartID); err != nil {
		t.Fatalf("ClearItems failed: %v", err)
	}

	var itemCount int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("expected empty cart, got %d items", itemCount)
	}

	var cartCount int64
	db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Count(&cartCount)
	if cartCount != 1 {
		t.Fatalf("expected cart row to persist, got %d rows", cartCount)
	}
}

func TestRemoveItem_NotFound(t *testing.T) {
	db := openTestDB(t)
	cart, _ := GetOrCreateCart(db, "alice")

	if err := RemoveItem(db, cart.CartID, 42); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
