package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/constants"
	handlershared "github.com/mesa-next/internal/http/handlers/shared"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/provider"
	"github.com/mesa-next/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testSessionHeader = "X-Test-Session"

type publicFixture struct {
	db     *gorm.DB
	engine *gin.Engine
	cola   *models.Product
	hidden *models.Product
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicTest(t *testing.T) *publicFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	products := repository.NewProductRepository(db)
	f := &publicFixture{
		db: db,
		cola:   &models.Product{NameJSON: models.LocalizedText{"es": "Cola"}, Price: models.NewMoneyFromDecimal(decimal.RequireFromString("2.00")), Available: true},
		hidden: &models.Product{NameJSON: models.LocalizedText{"es": "Barbacoa"}, Price: models.NewMoneyFromDecimal(decimal.RequireFromString("11.00")), Available: true},
	}
	for _, p := range []*models.Product{f.cola, f.hidden} {
		if err := products.Create(p); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}
	f.cola.AllowsExtraIngredients = false
	f.hidden.Available = false
	for _, p := range []*models.Product{f.cola, f.hidden} {
		if err := products.Update(p); err != nil {
			t.Fatalf("update product failed: %v", err)
		}
	}

	cfg := &config.Config{
		Cart: config.CartConfig{Store: constants.CartStoreMemory, Key: "cart", LockStripes: 4},
		Company: config.CompanyConfig{
			Name:              "Mesa",
			WhatsAppPhone:     "+34 623 736 566",
			DeliveryLocations: []string{"Ardales", "Carratraca"},
		},
		Pricing: config.PricingConfig{CurrencySymbol: "€"},
	}
	h := New(provider.NewContainerWithDB(cfg, db))

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if sid := c.GetHeader(testSessionHeader); sid != "" {
			c.Set(handlershared.CartSessionKey, sid)
		}
		c.Next()
	})
	api.GET("/public/promotions", h.GetPromotions)
	api.GET("/public/carousel", h.GetCarouselCards)
	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.POST("/cart/items/:id/increment", h.IncrementCartItem)
	api.DELETE("/cart/items/:id", h.RemoveCartItem)
	api.GET("/cart/summary", h.GetCartSummary)
	api.POST("/checkout", h.PlaceOrder)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders/:id/cancel", h.CancelOrder)
	f.engine = r
	return f
}

func (f *publicFixture) do(t *testing.T, method, path, session string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Locale", "es")
	if session != "" {
		req.Header.Set(testSessionHeader, session)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v (%s)", err, w.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp envelope, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, dest); err != nil {
		t.Fatalf("unmarshal data failed: %v (%s)", err, resp.Data)
	}
}

func validCheckout() gin.H {
	return gin.H{
		"customer_name": "Ana",
		"phone":         "+34 600 000 000",
		"street":        "Calle Mayor",
		"house_number":  "3",
		"location":      "ardales",
	}
}

func TestCartEndpointsRequireSession(t *testing.T) {
	f := setupPublicTest(t)
	resp := f.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestAddCartItemFlow(t *testing.T) {
	f := setupPublicTest(t)

	resp := f.do(t, http.MethodPost, "/api/v1/cart/items", "s-1", gin.H{"product_id": f.cola.ID})
	if resp.StatusCode != 0 {
		t.Fatalf("add should succeed, got %d %s", resp.StatusCode, resp.Msg)
	}
	resp = f.do(t, http.MethodPost, "/api/v1/cart/items", "s-1", gin.H{"product_id": f.cola.ID, "quantity": 2})
	if resp.StatusCode != 0 {
		t.Fatalf("second add should succeed, got %d", resp.StatusCode)
	}

	var view struct {
		Lines []struct {
			LineID   string `json:"line_id"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
		ItemCount    int    `json:"item_count"`
		CartTotal    string `json:"cart_total"`
		ChargedTotal string `json:"charged_total"`
	}
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/cart", "s-1", nil), &view)
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 3 || view.ItemCount != 3 {
		t.Fatalf("plain lines should merge into quantity 3: %+v", view)
	}
	if view.CartTotal != "6.00" || view.ChargedTotal != "6.00" {
		t.Fatalf("unexpected totals %+v", view)
	}

	decodeData(t, f.do(t, http.MethodPost, "/api/v1/cart/items/"+view.Lines[0].LineID+"/increment", "s-1", nil), &view)
	if view.Lines[0].Quantity != 4 || view.CartTotal != "8.00" {
		t.Fatalf("increment should bump quantity: %+v", view)
	}

	var summary struct {
		LineCount  int    `json:"line_count"`
		ItemCount  int    `json:"item_count"`
		TotalPrice string `json:"total_price"`
	}
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/cart/summary", "s-1", nil), &summary)
	if summary.LineCount != 1 || summary.ItemCount != 4 || summary.TotalPrice != "8.00" {
		t.Fatalf("unexpected summary %+v", summary)
	}

	other := f.do(t, http.MethodGet, "/api/v1/cart/summary", "s-2", nil)
	decodeData(t, other, &summary)
	if summary.ItemCount != 0 {
		t.Fatalf("carts must be isolated per session, got %+v", summary)
	}
}

func TestAddCartItemErrors(t *testing.T) {
	f := setupPublicTest(t)

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{name: "unavailable", body: gin.H{"product_id": f.hidden.ID}, want: 400},
		{name: "missing product", body: gin.H{"product_id": 9999}, want: 400},
		{name: "zero quantity", body: gin.H{"product_id": f.cola.ID, "quantity": 0}, want: 400},
		{name: "extras not allowed", body: gin.H{"product_id": f.cola.ID, "extra_ids": []uint{1}}, want: 400},
		{name: "malformed", body: gin.H{"quantity": 1}, want: 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/api/v1/cart/items", "s-err", tc.body)
			if resp.StatusCode != tc.want {
				t.Fatalf("status_code want %d got %d (%s)", tc.want, resp.StatusCode, resp.Msg)
			}
		})
	}

	resp := f.do(t, http.MethodDelete, "/api/v1/cart/items/unknown", "s-err", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("removing unknown line want 404 got %d", resp.StatusCode)
	}
}

func TestPlaceOrderAndCancel(t *testing.T) {
	f := setupPublicTest(t)

	resp := f.do(t, http.MethodPost, "/api/v1/checkout", "s-1", validCheckout())
	if resp.StatusCode != 400 {
		t.Fatalf("empty cart checkout want 400 got %d", resp.StatusCode)
	}

	f.do(t, http.MethodPost, "/api/v1/cart/items", "s-1", gin.H{"product_id": f.cola.ID, "quantity": 2})

	bad := validCheckout()
	bad["location"] = "Málaga"
	if resp := f.do(t, http.MethodPost, "/api/v1/checkout", "s-1", bad); resp.StatusCode != 400 {
		t.Fatalf("unknown location want 400 got %d", resp.StatusCode)
	}

	var placed struct {
		Order struct {
			ID               uint   `json:"id"`
			Status           string `json:"status"`
			DeliveryLocation string `json:"delivery_location"`
			TotalPrice       string `json:"total_price"`
		} `json:"order"`
		Message      string `json:"message"`
		WhatsAppURL  string `json:"whatsapp_url"`
		ChargedTotal string `json:"charged_total"`
	}
	resp = f.do(t, http.MethodPost, "/api/v1/checkout", "s-1", validCheckout())
	if resp.StatusCode != 0 {
		t.Fatalf("checkout should succeed, got %d %s", resp.StatusCode, resp.Msg)
	}
	decodeData(t, resp, &placed)
	if placed.Order.Status != constants.OrderStatusPending || placed.Order.DeliveryLocation != "Ardales" {
		t.Fatalf("unexpected order %+v", placed.Order)
	}
	if placed.Order.TotalPrice != "4.00" || placed.ChargedTotal != "4.00" {
		t.Fatalf("unexpected totals %+v", placed)
	}
	if !strings.HasPrefix(placed.WhatsAppURL, "https://wa.me/34623736566?text=") || !strings.Contains(placed.Message, "Cola") {
		t.Fatalf("unexpected whatsapp output url=%s message=%s", placed.WhatsAppURL, placed.Message)
	}

	var summary struct {
		ItemCount int `json:"item_count"`
	}
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/cart/summary", "s-1", nil), &summary)
	if summary.ItemCount != 0 {
		t.Fatalf("cart should be cleared after checkout")
	}

	list := f.do(t, http.MethodGet, "/api/v1/orders", "s-1", nil)
	var orders []struct {
		ID uint `json:"id"`
	}
	decodeData(t, list, &orders)
	if len(orders) != 1 || orders[0].ID != placed.Order.ID {
		t.Fatalf("session should list its order: %s", list.Data)
	}

	orderPath := fmt.Sprintf("/api/v1/orders/%d", placed.Order.ID)
	if resp := f.do(t, http.MethodGet, orderPath, "s-2", nil); resp.StatusCode != 404 {
		t.Fatalf("foreign session want 404 got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodGet, orderPath+"?phone=%2B34600000000", "s-2", nil); resp.StatusCode != 0 {
		t.Fatalf("matching phone should see order, got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodGet, "/api/v1/orders/abc", "s-1", nil); resp.StatusCode != 400 {
		t.Fatalf("bad id want 400 got %d", resp.StatusCode)
	}

	cancelPath := orderPath + "/cancel"
	if resp := f.do(t, http.MethodPost, cancelPath, "s-2", gin.H{"phone": "+34 611 111 111"}); resp.StatusCode != 404 {
		t.Fatalf("wrong phone want 404 got %d", resp.StatusCode)
	}
	var cancelled struct {
		Status string `json:"status"`
	}
	resp = f.do(t, http.MethodPost, cancelPath, "s-2", gin.H{"phone": "+34 600 000 000"})
	if resp.StatusCode != 0 {
		t.Fatalf("cancel should succeed, got %d %s", resp.StatusCode, resp.Msg)
	}
	decodeData(t, resp, &cancelled)
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	if resp := f.do(t, http.MethodPost, cancelPath, "s-2", gin.H{"phone": "+34 600 000 000"}); resp.StatusCode != 409 {
		t.Fatalf("second cancel want 409 got %d", resp.StatusCode)
	}
}

func TestPromotionEndpoints(t *testing.T) {
	f := setupPublicTest(t)
	repo := repository.NewPromotionRepository(f.db)
	spring := &models.Promotion{
		Title:           "spring",
		DescriptionJSON: models.LocalizedText{"es": "2x1 en pizzas", "en": "2 for 1 pizzas"},
		Image:           "/media/promotions/spring.jpg",
		SortOrder:       1,
	}
	retired := &models.Promotion{Title: "retired", Image: "/media/promotions/old.jpg"}
	for _, p := range []*models.Promotion{spring, retired} {
		if err := repo.CreatePromotion(p); err != nil {
			t.Fatalf("create promotion failed: %v", err)
		}
	}
	if err := repo.SetPromotionActive(retired.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := repo.CreateCarouselCard(&models.CarouselCard{TextJSON: models.LocalizedText{"es": "Hamburguesas", "en": "Burgers"}, Emoji: "🍔"}); err != nil {
		t.Fatalf("create card failed: %v", err)
	}

	resp := f.do(t, http.MethodGet, "/api/v1/public/promotions?lang=en", "", nil)
	var promotions []PublicPromotionView
	decodeData(t, resp, &promotions)
	if resp.StatusCode != 0 || len(promotions) != 1 {
		t.Fatalf("expected one active promotion, got %+v", promotions)
	}
	if promotions[0].Description != "2 for 1 pizzas" || promotions[0].ImageURL != "/media/promotions/spring.jpg" {
		t.Fatalf("unexpected promotion view %+v", promotions[0])
	}

	resp = f.do(t, http.MethodGet, "/api/v1/public/carousel", "", nil)
	var cards []PublicCarouselCardView
	decodeData(t, resp, &cards)
	if len(cards) != 1 || cards[0].Text != "Hamburguesas" || cards[0].BackgroundColor != "#FF6B35" {
		t.Fatalf("unexpected carousel %+v", cards)
	}
}
