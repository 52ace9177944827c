package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/constants"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/pricing"
	"github.com/mesa-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db       *gorm.DB
	menu     *MenuService
	carts    *CartService
	settings *SettingService
	checkout *CheckoutService
	orders   repository.OrderRepository

	margherita *models.Product
	cola       *models.Product
	hidden     *models.Product
	cheese     models.Ingredient
	bacon      models.Ingredient
	onion      models.Ingredient
	dough      models.ProductOption
}

func money(v string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(v))
}

func setupServiceTest(t *testing.T) *serviceFixture {
	t.Helper()
	cache.SetClient(nil, "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	f := &serviceFixture{db: db}
	f.cheese = models.Ingredient{NameJSON: models.LocalizedText{"es": "Queso", "en": "Cheese"}, IsExtra: true, Price: money("1.00")}
	f.bacon = models.Ingredient{NameJSON: models.LocalizedText{"es": "Bacon"}, IsExtra: true, Price: money("1.50")}
	f.onion = models.Ingredient{NameJSON: models.LocalizedText{"es": "Cebolla"}}
	for _, ing := range []*models.Ingredient{&f.cheese, &f.bacon, &f.onion} {
		if err := db.Create(ing).Error; err != nil {
			t.Fatalf("create ingredient failed: %v", err)
		}
	}
	f.dough = models.ProductOption{
		NameJSON:   models.LocalizedText{"es": "Masa"},
		IsRequired: true,
		Choices: []models.ProductOptionChoice{
			{NameJSON: models.LocalizedText{"es": "Fina", "en": "Thin"}, Icon: "🍕", SortOrder: 1},
			{NameJSON: models.LocalizedText{"es": "Gruesa", "en": "Thick"}, SortOrder: 2},
		},
	}
	if err := db.Create(&f.dough).Error; err != nil {
		t.Fatalf("create option failed: %v", err)
	}

	products := repository.NewProductRepository(db)
	f.margherita = &models.Product{
		NameJSON:               models.LocalizedText{"es": "Margarita", "en": "Margherita"},
		Price:                  money("9.50"),
		Available:              true,
		AllowsExtraIngredients: true,
		AllowIngredientSwap:    true,
		Ingredients:            []models.Ingredient{f.onion},
		Options:                []models.ProductOption{f.dough},
	}
	f.cola = &models.Product{NameJSON: models.LocalizedText{"es": "Cola"}, Price: money("2.00"), Available: true}
	f.hidden = &models.Product{NameJSON: models.LocalizedText{"es": "Barbacoa"}, Price: money("11.00"), Available: true}
	for _, p := range []*models.Product{f.margherita, f.cola, f.hidden} {
		if err := products.Create(p); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}
	f.cola.AllowsExtraIngredients = false
	if err := products.Update(f.cola); err != nil {
		t.Fatalf("update cola failed: %v", err)
	}
	f.hidden.Available = false
	if err := products.Update(f.hidden); err != nil {
		t.Fatalf("update hidden failed: %v", err)
	}

	f.menu = NewMenuService(products, repository.NewCategoryRepository(db), repository.NewIngredientRepository(db))
	f.carts = NewCartService(f.menu, cart.NewMemoryStore(), config.CartConfig{Key: "cart", IDGenerator: constants.CartIDGeneratorSequence, LockStripes: 8})
	f.settings = NewSettingService(repository.NewSettingRepository(db), config.CompanyConfig{
		Name:              "Mesa",
		WhatsAppPhone:     "+34 623 736 566",
		DeliveryLocations: []string{"Ardales", "Carratraca"},
	})
	f.orders = repository.NewOrderRepository(db)
	f.checkout = NewCheckoutService(f.carts, f.settings, f.orders, nil, nil, pricing.NewFormatter("€"))
	// 2026-03-04 为周三
	f.checkout.now = func() time.Time { return time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC) }
	return f
}

func (f *serviceFixture) firstChoice() uint {
	return f.dough.Choices[0].ID
}

func TestCartServiceAddMergesPlainLines(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	if _, err := f.carts.AddItem(ctx, "s1", AddCartItemInput{ProductID: f.cola.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	line, err := f.carts.AddItem(ctx, "s1", AddCartItemInput{ProductID: f.cola.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if line.Quantity != 3 {
		t.Fatalf("plain lines should merge, got quantity %d", line.Quantity)
	}
	lines, _ := f.carts.List(ctx, "s1")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	other, _ := f.carts.List(ctx, "s2")
	if len(other) != 0 {
		t.Fatalf("sessions must not share carts")
	}
}

func TestCartServiceAddValidation(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input AddCartItemInput
		want  error
	}{
		{"zero_quantity", AddCartItemInput{ProductID: f.cola.ID, Quantity: 0}, ErrInvalidQuantity},
		{"unknown_product", AddCartItemInput{ProductID: 9999, Quantity: 1}, ErrProductNotAvailable},
		{"unavailable_product", AddCartItemInput{ProductID: f.hidden.ID, Quantity: 1}, ErrProductNotAvailable},
		{"extras_not_allowed", AddCartItemInput{ProductID: f.cola.ID, Quantity: 1, ExtraIDs: []uint{f.cheese.ID}}, ErrExtraNotAllowed},
		{"ingredient_not_extra", AddCartItemInput{ProductID: f.margherita.ID, Quantity: 1, ExtraIDs: []uint{f.onion.ID}, Options: map[uint]uint{f.dough.ID: f.firstChoice()}}, ErrExtraNotAllowed},
		{"missing_required_option", AddCartItemInput{ProductID: f.margherita.ID, Quantity: 1}, ErrOptionRequired},
		{"unknown_choice", AddCartItemInput{ProductID: f.margherita.ID, Quantity: 1, Options: map[uint]uint{f.dough.ID: 9999}}, ErrInvalidOption},
		{"unknown_option", AddCartItemInput{ProductID: f.margherita.ID, Quantity: 1, Options: map[uint]uint{f.dough.ID: f.firstChoice(), 9999: 1}}, ErrInvalidOption},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.carts.AddItem(ctx, "s1", tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if lines, _ := f.carts.List(ctx, "s1"); len(lines) != 0 {
		t.Fatalf("rejected adds must not touch the cart")
	}
}

func TestCartServiceLineOperations(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	line, err := f.carts.AddItem(ctx, "s1", AddCartItemInput{ProductID: f.cola.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := f.carts.Increment(ctx, "s1", line.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if err := f.carts.UpdateQuantity(ctx, "s1", line.ID, 5); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := f.carts.Decrement(ctx, "s1", line.ID); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	summary, err := f.carts.Summary(ctx, "s1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.ItemCount != 4 || summary.LineCount != 1 || !summary.TotalPrice.Equal(decimal.RequireFromString("8")) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Quantities[f.cola.ID] != 4 {
		t.Fatalf("unexpected per-product quantity: %+v", summary.Quantities)
	}

	if err := f.carts.RemoveItem(ctx, "s1", "missing"); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound, got %v", err)
	}
	if err := f.carts.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if lines, _ := f.carts.List(ctx, "s1"); len(lines) != 0 {
		t.Fatalf("cart should be empty after clear")
	}
	if err := f.carts.Clear(ctx, " "); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("blank session should be rejected, got %v", err)
	}
}

func (f *serviceFixture) addCustomPizza(t *testing.T, sessionID string) cart.Line {
	t.Helper()
	line, err := f.carts.AddItem(context.Background(), sessionID, AddCartItemInput{
		ProductID:             f.margherita.ID,
		Quantity:              1,
		ExtraIDs:              []uint{f.cheese.ID, f.bacon.ID},
		Options:               map[uint]uint{f.dough.ID: f.firstChoice()},
		AdditionalNotes:       "  bien hecha ",
		DeselectedIngredients: []string{"Cebolla", " "},
		Locale:                "es",
	})
	if err != nil {
		t.Fatalf("add custom pizza failed: %v", err)
	}
	return line
}

func TestCartServiceCustomizationSnapshot(t *testing.T) {
	f := setupServiceTest(t)
	line := f.addCustomPizza(t, "s1")

	custom := line.Customization
	if custom == nil {
		t.Fatalf("customized line must carry a customization")
	}
	if len(custom.SelectedExtras) != 2 || custom.SelectedExtras[0].ID != f.cheese.ID {
		t.Fatalf("unexpected extras: %+v", custom.SelectedExtras)
	}
	if custom.DeselectedIngredientsCount != 1 || custom.AdditionalNotes != "bien hecha" {
		t.Fatalf("unexpected customization: %+v", custom)
	}
	choice, ok := custom.SelectedOptions[fmt.Sprint(f.dough.ID)]
	if !ok || choice.ChoiceName != "Fina" || choice.ChoiceID != f.firstChoice() {
		t.Fatalf("unexpected option snapshot: %+v", custom.SelectedOptions)
	}

	second := f.addCustomPizza(t, "s1")
	if second.ID == line.ID {
		t.Fatalf("customized lines must never merge")
	}
}

func TestCheckoutPreviewKeepsBothTotals(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	f.addCustomPizza(t, "s1")
	if _, err := f.carts.AddItem(ctx, "s1", AddCartItemInput{ProductID: f.cola.ID, Quantity: 2}); err != nil {
		t.Fatalf("add cola failed: %v", err)
	}

	preview, err := f.checkout.Preview(ctx, "s1", "es")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	// 购物车总价：9.50 + 1.00 + 1.50 + 2 × 2.00
	if !preview.CartTotal.Equal(decimal.RequireFromString("16")) {
		t.Fatalf("unexpected cart total %s", preview.CartTotal)
	}
	// 去掉一个原配料，最贵的 Bacon 免费
	if !preview.ChargedTotal.Equal(decimal.RequireFromString("14.5")) {
		t.Fatalf("unexpected charged total %s", preview.ChargedTotal)
	}
	if !preview.SwapDiscount.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("unexpected discount %s", preview.SwapDiscount)
	}
	pizza := preview.Lines[0]
	if pizza.Extras.FreeExtrasCount != 1 || pizza.Extras.FreeExtras[0].ID != f.bacon.ID {
		t.Fatalf("bacon should be the free extra: %+v", pizza.Extras)
	}
	if pizza.Name != "Margarita" || !pizza.UnitPrice.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("unexpected pizza line: %+v", pizza)
	}
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		CustomerName: "Ana",
		Phone:        "+34 600 111 222",
		Street:       "Calle Mayor",
		HouseNumber:  "3",
		Location:     "ardales",
		Notes:        "Timbre roto",
		Locale:       "es",
	}
}

func TestCheckoutPlaceOrder(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	f.addCustomPizza(t, "s1")

	result, err := f.checkout.PlaceOrder(ctx, "s1", validCheckout())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	order := result.Order
	if order.ID == 0 || order.Status != constants.OrderStatusPending || order.DeliveryLocation != "Ardales" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.TotalPrice.String() != "10.50" || order.CartTotal.String() != "12.00" {
		t.Fatalf("unexpected totals: total=%s cart=%s", order.TotalPrice.String(), order.CartTotal.String())
	}
	if !strings.HasPrefix(result.WhatsAppURL, "https://wa.me/34623736566?text=") {
		t.Fatalf("unexpected whatsapp url: %s", result.WhatsAppURL)
	}
	for _, want := range []string{fmt.Sprintf("#%d", order.ID), "Ana", "Calle Mayor 3, Ardales", "Sin: Cebolla", "Bacon (gratis)", "Total: €10.50"} {
		if !strings.Contains(result.Message, want) {
			t.Fatalf("message missing %q:\n%s", want, result.Message)
		}
	}

	stored, err := f.orders.GetByID(order.ID)
	if err != nil || stored == nil || len(stored.Items) != 1 {
		t.Fatalf("order not persisted: %+v (%v)", stored, err)
	}
	if stored.Items[0].UnitPrice.String() != "10.50" || stored.Items[0].CustomizationJSON["additionalNotes"] != "bien hecha" {
		t.Fatalf("unexpected order item: %+v", stored.Items[0])
	}
	if lines, _ := f.carts.List(ctx, "s1"); len(lines) != 0 {
		t.Fatalf("cart should be cleared after checkout")
	}

	visible, err := f.checkout.GetOrderForCustomer(ctx, order.ID, "s1", "")
	if err != nil || visible.ID != order.ID {
		t.Fatalf("session owner should see the order: %v", err)
	}
	if _, err := f.checkout.GetOrderForCustomer(ctx, order.ID, "other", ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other sessions must not see the order, got %v", err)
	}
	list, total, err := f.checkout.ListSessionOrders(ctx, "s1", 1, 10)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("unexpected session orders total=%d err=%v", total, err)
	}
}

func TestCheckoutRejections(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	if _, err := f.checkout.PlaceOrder(ctx, "s1", validCheckout()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	f.addCustomPizza(t, "s1")

	missingName := validCheckout()
	missingName.CustomerName = " "
	if _, err := f.checkout.PlaceOrder(ctx, "s1", missingName); !errors.Is(err, ErrDeliveryInfoInvalid) {
		t.Fatalf("expected ErrDeliveryInfoInvalid, got %v", err)
	}
	badEmail := validCheckout()
	badEmail.CustomerEmail = "ana@"
	if _, err := f.checkout.PlaceOrder(ctx, "s1", badEmail); !errors.Is(err, ErrDeliveryInfoInvalid) {
		t.Fatalf("expected ErrDeliveryInfoInvalid for email, got %v", err)
	}
	badLocation := validCheckout()
	badLocation.Location = "Madrid"
	if _, err := f.checkout.PlaceOrder(ctx, "s1", badLocation); !errors.Is(err, ErrDeliveryLocationInvalid) {
		t.Fatalf("expected ErrDeliveryLocationInvalid, got %v", err)
	}

	company, _ := f.settings.GetCompany(ctx)
	company.DeliveryEnabledDays = map[string]bool{"Mie": false}
	if _, err := f.settings.UpdateCompany(ctx, company); err != nil {
		t.Fatalf("update company failed: %v", err)
	}
	if _, err := f.checkout.PlaceOrder(ctx, "s1", validCheckout()); !errors.Is(err, ErrDeliveryUnavailable) {
		t.Fatalf("expected ErrDeliveryUnavailable, got %v", err)
	}
	if lines, _ := f.carts.List(ctx, "s1"); len(lines) != 1 {
		t.Fatalf("rejected checkout must keep the cart")
	}
}

func TestCheckoutCancelOrder(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	f.addCustomPizza(t, "s1")
	result, err := f.checkout.PlaceOrder(ctx, "s1", validCheckout())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	id := result.Order.ID

	if _, err := f.checkout.CancelOrder(ctx, id, "+34 699 000 000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("wrong phone should look like a missing order, got %v", err)
	}
	cancelled, err := f.checkout.CancelOrder(ctx, id, "34600111222")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("order should be cancelled: %+v", cancelled)
	}
	if _, err := f.checkout.CancelOrder(ctx, id, "34600111222"); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("expected ErrOrderNotCancellable, got %v", err)
	}
	if _, err := f.checkout.CancelOrder(ctx, 9999, "34600111222"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCartServiceSwapQuote(t *testing.T) {
	f := setupServiceTest(t)
	quote, err := f.carts.SwapQuote(context.Background(), SwapQuoteInput{
		ProductID:       f.margherita.ID,
		ExtraIDs:        []uint{f.cheese.ID, f.bacon.ID},
		DeselectedCount: 2,
	})
	if err != nil {
		t.Fatalf("swap quote failed: %v", err)
	}
	if !quote.TotalPrice.IsZero() || quote.FreeExtrasCount != 2 {
		t.Fatalf("both extras should be free: %+v", quote)
	}
}

func TestSettingServiceCompanyDefaultsAndUpdate(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	company, err := f.settings.GetCompany(ctx)
	if err != nil {
		t.Fatalf("get company failed: %v", err)
	}
	if company.Name != "Mesa" || len(company.DeliveryLocations) != 2 || !company.DeliveryLocations[0].Enabled {
		t.Fatalf("unexpected defaults: %+v", company)
	}

	company.Email = " pedidos@mesa.test "
	company.DeliveryLocations[1].Enabled = false
	if _, err := f.settings.UpdateCompany(ctx, company); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	reloaded, err := f.settings.GetCompany(ctx)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Email != "pedidos@mesa.test" || len(reloaded.EnabledLocations()) != 1 {
		t.Fatalf("unexpected stored company: %+v", reloaded)
	}
	if _, ok := reloaded.ResolveDeliveryLocation("Carratraca"); ok {
		t.Fatalf("disabled location must be rejected")
	}
}

func TestCompanyDeliveryDays(t *testing.T) {
	company := CompanySetting{DeliveryEnabledDays: map[string]bool{"Lun": false, "Mar": true}}
	monday := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if company.DeliveryAllowedOn(monday) {
		t.Fatalf("monday is disabled")
	}
	if !company.DeliveryAllowedOn(monday.AddDate(0, 0, 1)) {
		t.Fatalf("tuesday is enabled")
	}
	if !company.DeliveryAllowedOn(monday.AddDate(0, 0, 2)) {
		t.Fatalf("unconfigured days default to enabled")
	}
}

func TestMenuServiceListsByCategory(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	pizzas := &models.Category{Slug: "pizzas", NameJSON: models.LocalizedText{"es": "Pizzas"}}
	if err := repository.NewCategoryRepository(f.db).Create(pizzas); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := f.db.Model(f.margherita).Association("Categories").Append(pizzas); err != nil {
		t.Fatalf("link category failed: %v", err)
	}

	all, err := f.menu.ListProducts(ctx, 0)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 available products, got %d (%v)", len(all), err)
	}
	inCategory, err := f.menu.ListProducts(ctx, pizzas.ID)
	if err != nil || len(inCategory) != 1 || inCategory[0].ID != f.margherita.ID {
		t.Fatalf("unexpected category listing: %+v (%v)", inCategory, err)
	}
	extras, err := f.menu.ListExtras(ctx)
	if err != nil || len(extras) != 2 {
		t.Fatalf("expected 2 extras, got %d (%v)", len(extras), err)
	}
	if _, err := f.menu.GetProduct(ctx, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCaptchaServiceScenes(t *testing.T) {
	disabled := NewCaptchaService(config.CaptchaConfig{Provider: "none", Scenes: config.CaptchaSceneConfig{Checkout: true}})
	if err := disabled.Verify(constants.CaptchaSceneCheckout, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("provider none should skip verification, got %v", err)
	}
	if _, err := disabled.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected ErrCaptchaConfigInvalid, got %v", err)
	}

	enabled := NewCaptchaService(config.CaptchaConfig{Provider: "image", Scenes: config.CaptchaSceneConfig{Checkout: true}})
	if !enabled.PublicSetting().Scenes[constants.CaptchaSceneCheckout] {
		t.Fatalf("checkout scene should be reported as enabled")
	}
	if err := enabled.Verify(constants.CaptchaSceneCheckout, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}
	if err := enabled.Verify(constants.CaptchaSceneCheckout, CaptchaVerifyPayload{CaptchaID: "nope", CaptchaCode: "abc"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}
}

func TestBuildWhatsAppURL(t *testing.T) {
	got := BuildWhatsAppURL("+34 623-736-566", "Hola mundo & co\n*Total*")
	want := "https://wa.me/34623736566?text=Hola%20mundo%20%26%20co%0A%2ATotal%2A"
	if got != want {
		t.Fatalf("unexpected url:\n got %s\nwant %s", got, want)
	}
}

func TestMenuServiceSearchProducts(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	found, err := f.menu.SearchProducts(ctx, "MARGHER", 0)
	if err != nil || len(found) != 1 || found[0].ID != f.margherita.ID {
		t.Fatalf("english name should match: %+v (%v)", found, err)
	}
	if hidden, _ := f.menu.SearchProducts(ctx, "barbacoa", 0); len(hidden) != 0 {
		t.Fatalf("unavailable products must not be searchable")
	}
	if empty, err := f.menu.SearchProducts(ctx, "  ", 0); err != nil || len(empty) != 0 {
		t.Fatalf("blank keyword should return nothing")
	}
}
