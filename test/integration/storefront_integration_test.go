// test/integration/storefront_integration_test.go
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sportsplus-backend/internal/domain/cart"
	"github.com/your-org/sportsplus-backend/internal/domain/order"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/domain/user"
	"github.com/your-org/sportsplus-backend/internal/domain/wishlist"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	usr := user.User{
		Email:     email,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "Shopper",
		IsActive:  true,
	}
	require.NoError(t, db.Create(&usr).Error)
	return usr.ID
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) uint {
	t.Helper()
	cat := product.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&cat).Error)
	return cat.ID
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price int64, salePrice *int64) uint {
	t.Helper()
	prod := product.Product{
		Name:       name,
		Price:      price,
		SalePrice:  salePrice,
		CategoryID: categoryID,
		Stock:      100,
	}
	require.NoError(t, db.Create(&prod).Error)
	return prod.ID
}

func TestCartMergeOnAdd(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)

	userID := seedUser(t, tdb.DB, "merge@example.com")
	catID := seedCategory(t, tdb.DB, "Running", "running")
	prodID := seedProduct(t, tdb.DB, catID, "Trail Shoe", 10000, nil)

	first, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "duplicate add must merge into the existing line")
	assert.Equal(t, 5, second.Quantity)

	resp, err := cartService.GetCart(userID)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, int64(50000), resp.Totals.Subtotal)
}

func TestCartDefaultQuantityAndBounds(t *testing.T) {
	tdb := SetupTestDB(t)
	cartService := cart.NewService(tdb.DB, TestConfig())

	userID := seedUser(t, tdb.DB, "bounds@example.com")
	catID := seedCategory(t, tdb.DB, "Fitness", "fitness")
	prodID := seedProduct(t, tdb.DB, catID, "Yoga Mat", 3999, nil)

	item, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity, "omitted quantity defaults to one")

	_, err = cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: 99})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidInput, apperrors.KindOf(err), "merged quantity above the cap is rejected")

	_, err = cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: -1})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidInput, apperrors.KindOf(err))

	_, err = cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: 999999})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestCartOwnershipIsolation(t *testing.T) {
	tdb := SetupTestDB(t)
	cartService := cart.NewService(tdb.DB, TestConfig())

	alice := seedUser(t, tdb.DB, "alice@example.com")
	bob := seedUser(t, tdb.DB, "bob@example.com")
	catID := seedCategory(t, tdb.DB, "Outdoor", "outdoor")
	prodID := seedProduct(t, tdb.DB, catID, "Water Bottle", 3499, nil)

	item, err := cartService.AddToCart(alice, &cart.AddToCartRequest{ProductID: prodID, Quantity: 1})
	require.NoError(t, err)

	// Bob cannot see, update or remove Alice's cart line
	bobCart, err := cartService.GetCart(bob)
	require.NoError(t, err)
	assert.Empty(t, bobCart.Items)

	_, err = cartService.UpdateQuantity(bob, item.ID, 5)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	err = cartService.RemoveItem(bob, item.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	aliceCart, err := cartService.GetCart(alice)
	require.NoError(t, err)
	assert.Len(t, aliceCart.Items, 1)
}

func TestCartToleratesWithdrawnProduct(t *testing.T) {
	tdb := SetupTestDB(t)
	cartService := cart.NewService(tdb.DB, TestConfig())

	userID := seedUser(t, tdb.DB, "withdrawn@example.com")
	catID := seedCategory(t, tdb.DB, "Clearance", "clearance")
	liveID := seedProduct(t, tdb.DB, catID, "Tennis Racket", 8999, nil)
	goneID := seedProduct(t, tdb.DB, catID, "Last Season Jersey", 4999, nil)

	_, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: liveID, Quantity: 1})
	require.NoError(t, err)
	withdrawn, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: goneID, Quantity: 2})
	require.NoError(t, err)

	// Withdraw the second product from the catalog
	require.NoError(t, tdb.DB.Delete(&product.Product{}, goneID).Error)

	resp, err := cartService.GetCart(userID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2, "the withdrawn line still appears in the cart")

	for _, item := range resp.Items {
		if item.ProductID == goneID {
			assert.Nil(t, item.Product, "withdrawn line carries no product details")
		} else {
			assert.NotNil(t, item.Product)
		}
	}
	assert.Equal(t, int64(8999), resp.Totals.Subtotal, "only live products contribute to the subtotal")

	// The withdrawn line can still be adjusted and removed
	updated, err := cartService.UpdateQuantity(userID, withdrawn.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)
	assert.Nil(t, updated.Product)

	require.NoError(t, cartService.RemoveItem(userID, withdrawn.ID))
}

func TestWishlistIdempotentSet(t *testing.T) {
	tdb := SetupTestDB(t)
	wishlistService := wishlist.NewService(tdb.DB, TestConfig())

	userID := seedUser(t, tdb.DB, "wish@example.com")
	catID := seedCategory(t, tdb.DB, "Basketball", "basketball")
	prodID := seedProduct(t, tdb.DB, catID, "Pro Ball", 2999, nil)

	_, err := wishlistService.AddToWishlist(userID, &wishlist.AddToWishlistRequest{ProductID: prodID})
	require.NoError(t, err)

	// Second add is a no-op, not an error
	_, err = wishlistService.AddToWishlist(userID, &wishlist.AddToWishlistRequest{ProductID: prodID})
	require.NoError(t, err)

	resp, err := wishlistService.GetWishlist(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	in, err := wishlistService.IsInWishlist(userID, prodID)
	require.NoError(t, err)
	assert.True(t, in)

	// Remove twice: second removal is also a no-op
	require.NoError(t, wishlistService.RemoveFromWishlist(userID, prodID))
	require.NoError(t, wishlistService.RemoveFromWishlist(userID, prodID))

	in, err = wishlistService.IsInWishlist(userID, prodID)
	require.NoError(t, err)
	assert.False(t, in)

	// A wishlisted product withdrawn from the catalog keeps its entry,
	// just without product details
	goneID := seedProduct(t, tdb.DB, catID, "Retired Ball", 1999, nil)
	_, err = wishlistService.AddToWishlist(userID, &wishlist.AddToWishlistRequest{ProductID: goneID})
	require.NoError(t, err)
	require.NoError(t, tdb.DB.Delete(&product.Product{}, goneID).Error)

	resp, err = wishlistService.GetWishlist(userID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Nil(t, resp.Items[0].Product)
}

func TestPlaceOrderSnapshotsPricesAndClearsCart(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)
	orderService := order.NewService(tdb.DB, cfg)

	userID := seedUser(t, tdb.DB, "checkout@example.com")
	catID := seedCategory(t, tdb.DB, "Team Sports", "team-sports")
	prodA := seedProduct(t, tdb.DB, catID, "Soccer Ball", 1000, nil)
	prodB := seedProduct(t, tdb.DB, catID, "Shin Guards", 500, nil)

	_, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodA, Quantity: 2})
	require.NoError(t, err)
	_, err = cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodB, Quantity: 1})
	require.NoError(t, err)

	placed, err := orderService.PlaceOrder(userID, &order.PlaceOrderRequest{
		FullName:      "Test Shopper",
		Address:       "1 Main St",
		City:          "Springfield",
		ZipCode:       "12345",
		PaymentMethod: order.PaymentMethodCredit,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), placed.Total, "stored total is the pre-tax sum of snapshot lines")
	assert.Len(t, placed.Items, 2)
	assert.Regexp(t, `^ORD-\d{8}-\d{5}$`, placed.OrderNumber)
	assert.Equal(t, order.OrderStatusPending, placed.Status)

	// Cart is empty after a successful checkout
	cartResp, err := cartService.GetCart(userID)
	require.NoError(t, err)
	assert.Empty(t, cartResp.Items)

	// Raising the catalog price afterwards does not touch the order
	require.NoError(t, tdb.DB.Model(&product.Product{}).Where("id = ?", prodA).Update("price", 99999).Error)

	reloaded, err := orderService.GetOrder(userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), reloaded.Total)
	for _, item := range reloaded.Items {
		if item.ProductID == prodA {
			assert.Equal(t, int64(1000), item.UnitPrice)
		}
	}
}

func TestPlaceOrderUsesSalePrice(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)
	orderService := order.NewService(tdb.DB, cfg)

	userID := seedUser(t, tdb.DB, "sale@example.com")
	catID := seedCategory(t, tdb.DB, "Running", "running")
	sale := int64(14999)
	prodID := seedProduct(t, tdb.DB, catID, "Discounted Shoe", 18999, &sale)

	_, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: 1})
	require.NoError(t, err)

	placed, err := orderService.PlaceOrder(userID, &order.PlaceOrderRequest{
		FullName:      "Sale Shopper",
		Address:       "2 Side St",
		City:          "Springfield",
		ZipCode:       "12345",
		PaymentMethod: order.PaymentMethodPayPal,
	})
	require.NoError(t, err)

	require.Len(t, placed.Items, 1)
	assert.Equal(t, int64(14999), placed.Items[0].UnitPrice)
	assert.Equal(t, int64(14999), placed.Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	tdb := SetupTestDB(t)
	orderService := order.NewService(tdb.DB, TestConfig())

	userID := seedUser(t, tdb.DB, "empty@example.com")

	_, err := orderService.PlaceOrder(userID, &order.PlaceOrderRequest{
		FullName:      "Empty Cart",
		Address:       "3 Back St",
		City:          "Springfield",
		ZipCode:       "12345",
		PaymentMethod: order.PaymentMethodCashOnDelivery,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)
	orderService := order.NewService(tdb.DB, cfg)

	userID := seedUser(t, tdb.DB, "payment@example.com")
	catID := seedCategory(t, tdb.DB, "Fitness", "fitness")
	prodID := seedProduct(t, tdb.DB, catID, "Kettlebell", 4999, nil)

	_, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: 1})
	require.NoError(t, err)

	_, err = orderService.PlaceOrder(userID, &order.PlaceOrderRequest{
		FullName:      "Bad Payment",
		Address:       "4 High St",
		City:          "Springfield",
		ZipCode:       "12345",
		PaymentMethod: "barter",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidInput, apperrors.KindOf(err))
}

func TestOrderOwnershipAndLifecycle(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)
	orderService := order.NewService(tdb.DB, cfg)

	alice := seedUser(t, tdb.DB, "alice-orders@example.com")
	bob := seedUser(t, tdb.DB, "bob-orders@example.com")
	catID := seedCategory(t, tdb.DB, "Outdoor", "outdoor")
	prodID := seedProduct(t, tdb.DB, catID, "Backpack", 11999, nil)

	_, err := cartService.AddToCart(alice, &cart.AddToCartRequest{ProductID: prodID, Quantity: 1})
	require.NoError(t, err)

	placed, err := orderService.PlaceOrder(alice, &order.PlaceOrderRequest{
		FullName:      "Alice",
		Address:       "5 Hill Rd",
		City:          "Springfield",
		ZipCode:       "12345",
		PaymentMethod: order.PaymentMethodCredit,
	})
	require.NoError(t, err)

	// Bob cannot read or cancel Alice's order
	_, err = orderService.GetOrder(bob, placed.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	_, err = orderService.CancelOrder(bob, placed.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	// Status machine: pending -> processing -> shipped -> delivered
	_, err = orderService.UpdateOrderStatus(placed.ID, order.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = orderService.UpdateOrderStatus(placed.ID, order.OrderStatusShipped)
	require.NoError(t, err)

	// A shipped order can no longer be cancelled
	_, err = orderService.CancelOrder(alice, placed.ID)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))

	_, err = orderService.UpdateOrderStatus(placed.ID, order.OrderStatusDelivered)
	require.NoError(t, err)

	// Delivered is terminal
	_, err = orderService.UpdateOrderStatus(placed.ID, order.OrderStatusProcessing)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}

func TestCancelOrderRestoresStock(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)
	orderService := order.NewService(tdb.DB, cfg)

	userID := seedUser(t, tdb.DB, "restock@example.com")
	catID := seedCategory(t, tdb.DB, "Basketball", "basketball")
	prodID := seedProduct(t, tdb.DB, catID, "Indoor Ball", 2999, nil)

	_, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodID, Quantity: 3})
	require.NoError(t, err)

	placed, err := orderService.PlaceOrder(userID, &order.PlaceOrderRequest{
		FullName:      "Restock Shopper",
		Address:       "6 Court Ave",
		City:          "Springfield",
		ZipCode:       "12345",
		PaymentMethod: order.PaymentMethodCredit,
	})
	require.NoError(t, err)

	var prod product.Product
	require.NoError(t, tdb.DB.First(&prod, prodID).Error)
	assert.Equal(t, 97, prod.Stock, "checkout decrements stock")

	_, err = orderService.CancelOrder(userID, placed.ID)
	require.NoError(t, err)

	require.NoError(t, tdb.DB.First(&prod, prodID).Error)
	assert.Equal(t, 100, prod.Stock, "cancellation restores stock")
}

func TestPlaceOrderLeavesConcurrentlyAddedLines(t *testing.T) {
	tdb := SetupTestDB(t)
	cfg := TestConfig()
	cartService := cart.NewService(tdb.DB, cfg)
	orderService := order.NewService(tdb.DB, cfg)

	userID := seedUser(t, tdb.DB, "concurrent@example.com")
	catID := seedCategory(t, tdb.DB, "Cycling", "cycling")
	prodA := seedProduct(t, tdb.DB, catID, "Helmet", 5999, nil)
	prodB := seedProduct(t, tdb.DB, catID, "Bike Light", 1999, nil)

	_, err := cartService.AddToCart(userID, &cart.AddToCartRequest{ProductID: prodA, Quantity: 1})
	require.NoError(t, err)

	// Hold the existing cart row locked so checkout parks on its
	// FOR UPDATE read, then land a new line while it waits.
	blockTx := tdb.DB.Begin()
	require.NoError(t, blockTx.Error)
	require.NoError(t, blockTx.Exec("SELECT id FROM cart_items WHERE user_id = ? FOR UPDATE", userID).Error)

	done := make(chan error, 1)
	go func() {
		_, err := orderService.PlaceOrder(userID, &order.PlaceOrderRequest{
			FullName:      "Concurrent Shopper",
			Address:       "7 Loop Ln",
			City:          "Springfield",
			ZipCode:       "12345",
			PaymentMethod: order.PaymentMethodCredit,
		})
		done <- err
	}()

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, tdb.DB.Create(&cart.CartItem{UserID: userID, ProductID: prodB, Quantity: 1}).Error)
	require.NoError(t, blockTx.Commit().Error)

	require.NoError(t, <-done)

	// Checkout converted only the line it read under lock; the line
	// added mid-checkout survives for the next one.
	resp, err := cartService.GetCart(userID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, prodB, resp.Items[0].ProductID)
}

func TestCatalogSearch(t *testing.T) {
	tdb := SetupTestDB(t)
	productService := product.NewService(tdb.DB, TestConfig())

	catID := seedCategory(t, tdb.DB, "Running", "running")
	seedProduct(t, tdb.DB, catID, "Trail Running Shoe", 12999, nil)
	seedProduct(t, tdb.DB, catID, "Road Shoe", 10999, nil)
	seedProduct(t, tdb.DB, catID, "Hydration Vest", 7999, nil)

	results, err := productService.SearchProducts("shoe")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = productService.SearchProducts("SHOE")
	require.NoError(t, err)
	assert.Len(t, results, 2, "search is case-insensitive")

	results, err = productService.SearchProducts("kayak")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCategoryBrowse(t *testing.T) {
	tdb := SetupTestDB(t)
	productService := product.NewService(tdb.DB, TestConfig())

	running := seedCategory(t, tdb.DB, "Running", "running")
	fitness := seedCategory(t, tdb.DB, "Fitness", "fitness")
	seedProduct(t, tdb.DB, running, "Pegasus", 12999, nil)
	seedProduct(t, tdb.DB, fitness, "Dumbbells", 24999, nil)

	products, err := productService.GetProductsByCategory(running)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pegasus", products[0].Name)

	_, err = productService.GetCategory(999999)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	cat, err := productService.GetCategoryBySlug("fitness")
	require.NoError(t, err)
	assert.Equal(t, "Fitness", cat.Name)
}

func TestAccountAndSessionLifecycle(t *testing.T) {
	tdb := SetupTestDB(t)
	rdb := SetupTestRedis(t)
	userService := user.NewService(tdb.DB, TestConfig(), rdb)

	ctx := context.Background()

	registered, err := userService.Register(ctx, &user.RegisterRequest{
		Email:           "New.Shopper@Example.com",
		Password:        "super-secret-1",
		ConfirmPassword: "super-secret-1",
		FirstName:       "New",
		LastName:        "Shopper",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.shopper@example.com", registered.User.Email, "email is normalized")
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Empty(t, registered.User.Password)

	// Duplicate registration conflicts
	_, err = userService.Register(ctx, &user.RegisterRequest{
		Email:           "new.shopper@example.com",
		Password:        "super-secret-1",
		ConfirmPassword: "super-secret-1",
		FirstName:       "Other",
		LastName:        "Shopper",
	})
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))

	// Login with the right and wrong password
	loggedIn, err := userService.Login(ctx, &user.LoginRequest{
		Email:    "new.shopper@example.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	_, err = userService.Login(ctx, &user.LoginRequest{
		Email:    "new.shopper@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, apperrors.InvalidInput, apperrors.KindOf(err))

	// Refresh with the current token succeeds and rotates the session
	refreshed, err := userService.RefreshToken(ctx, loggedIn.RefreshToken)
	require.NoError(t, err)

	// The superseded token no longer refreshes
	_, err = userService.RefreshToken(ctx, loggedIn.RefreshToken)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))

	// Logout closes the session entirely
	require.NoError(t, userService.Logout(ctx, registered.User.ID))
	_, err = userService.RefreshToken(ctx, refreshed.RefreshToken)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}
