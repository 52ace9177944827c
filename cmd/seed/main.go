package main

import (
	"context"
	"fmt"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/repository"
	"github.com/mesa-next/internal/service"

	"github.com/shopspring/decimal"
)

func money(v string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(v))
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		stdLog.Printf("Redis unavailable, menu cache will not be invalidated: %v", err)
	}
	ctx := context.Background()

	// 添加分类
	categories := []models.Category{
		{Slug: "pizzas", NameJSON: models.LocalizedText{"es": "Pizzas", "en": "Pizzas"}, Icon: "🍕", SortOrder: 1},
		{Slug: "hamburguesas", NameJSON: models.LocalizedText{"es": "Hamburguesas", "en": "Burgers"}, Icon: "🍔", SortOrder: 2},
		{Slug: "bebidas", NameJSON: models.LocalizedText{"es": "Bebidas", "en": "Drinks"}, Icon: "🥤", SortOrder: 3},
	}
	categoryBySlug := map[string]models.Category{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Category already exists: %s", cat.Slug)
			categoryBySlug[cat.Slug] = existing
			continue
		}
		if err := models.DB.Create(&cat).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			continue
		}
		stdLog.Printf("Created category: %s", cat.Slug)
		categoryBySlug[cat.Slug] = cat
	}

	var productCount int64
	models.DB.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		stdLog.Printf("Menu already seeded (%d products), skipping products", productCount)
	} else {
		seedMenu(stdLog, categoryBySlug)
	}

	// 店铺设置
	settings := service.NewSettingService(repository.NewSettingRepository(models.DB), cfg.Company)
	company := service.CompanyDefaultSetting(cfg.Company)
	if company.Name == "" {
		company.Name = "Mesa"
	}
	if company.WhatsAppPhone == "" {
		company.WhatsAppPhone = "+34 623 736 566"
	}
	if len(company.DeliveryLocations) == 0 {
		company.DeliveryLocations = []service.DeliveryLocation{
			{ID: 1, Name: "Ardales", Value: "Ardales", Enabled: true},
			{ID: 2, Name: "Carratraca", Value: "Carratraca", Enabled: true},
			{ID: 3, Name: "El Burgo", Value: "El Burgo", Enabled: true},
		}
	}
	if len(company.DeliveryEnabledDays) == 0 {
		company.DeliveryEnabledDays = map[string]bool{
			"Lun": false, "Mar": true, "Mie": true, "Jue": true, "Vie": true, "Sab": true, "Dom": true,
		}
	}
	if _, err := settings.UpdateCompany(ctx, company); err != nil {
		stdLog.Printf("Failed to save company setting: %v", err)
	} else {
		stdLog.Println("Saved company setting")
	}

	menu := service.NewMenuService(
		repository.NewProductRepository(models.DB),
		repository.NewCategoryRepository(models.DB),
		repository.NewIngredientRepository(models.DB),
	)
	menu.InvalidateCache(ctx)

	var promotionCount int64
	models.DB.Model(&models.Promotion{}).Count(&promotionCount)
	if promotionCount > 0 {
		stdLog.Printf("Promotions already seeded (%d), skipping", promotionCount)
	} else {
		seedPromotions(stdLog)
	}
	service.NewPromotionService(repository.NewPromotionRepository(models.DB)).InvalidateCache(ctx)

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 6 Ingredients (4 extras)")
	fmt.Println("- 5 Products with meat and dough options")
	fmt.Println("- Company setting")
	fmt.Println("- 2 Promotions, 3 Carousel cards")
}

func seedPromotions(stdLog interface {
	Printf(format string, v ...interface{})
}) {
	repo := repository.NewPromotionRepository(models.DB)
	promotions := []models.Promotion{
		{Title: "2x1 martes", DescriptionJSON: models.LocalizedText{"es": "Martes 2x1 en pizzas", "en": "Tuesday 2 for 1 pizzas"}, Image: "/media/promotions/2x1.jpg", SortOrder: 1},
		{Title: "Envio gratis", DescriptionJSON: models.LocalizedText{"es": "Envío gratis desde 25€", "en": "Free delivery over 25€"}, Image: "/media/promotions/envio.jpg", SortOrder: 2},
	}
	for i := range promotions {
		if err := repo.CreatePromotion(&promotions[i]); err != nil {
			stdLog.Printf("Failed to create promotion %s: %v", promotions[i].Title, err)
		}
	}

	cards := []models.CarouselCard{
		{TextJSON: models.LocalizedText{"es": "Pizzas artesanas", "en": "Handmade pizzas"}, Emoji: "🍕", BackgroundColor: "#FF6B35", SortOrder: 1},
		{TextJSON: models.LocalizedText{"es": "Hamburguesas", "en": "Burgers"}, Emoji: "🍔", BackgroundColor: "#2EC4B6", SortOrder: 2},
		{TextJSON: models.LocalizedText{"es": "Bebidas frías", "en": "Cold drinks"}, Emoji: "🥤", BackgroundColor: "#3A86FF", SortOrder: 3},
	}
	for i := range cards {
		if err := repo.CreateCarouselCard(&cards[i]); err != nil {
			stdLog.Printf("Failed to create carousel card: %v", err)
		}
	}
}

func seedMenu(stdLog interface {
	Printf(format string, v ...interface{})
}, categoryBySlug map[string]models.Category) {
	// 配料
	cheese := models.Ingredient{NameJSON: models.LocalizedText{"es": "Queso extra", "en": "Extra cheese"}, Icon: "🧀", IsExtra: true, Price: money("1.00")}
	bacon := models.Ingredient{NameJSON: models.LocalizedText{"es": "Bacon", "en": "Bacon"}, Icon: "🥓", IsExtra: true, Price: money("1.50")}
	egg := models.Ingredient{NameJSON: models.LocalizedText{"es": "Huevo", "en": "Egg"}, Icon: "🍳", IsExtra: true, Price: money("1.00")}
	jalapeno := models.Ingredient{NameJSON: models.LocalizedText{"es": "Jalapeños", "en": "Jalapeños"}, Icon: "🌶️", IsExtra: true, Price: money("0.80")}
	tomato := models.Ingredient{NameJSON: models.LocalizedText{"es": "Tomate", "en": "Tomato"}, Icon: "🍅"}
	onion := models.Ingredient{NameJSON: models.LocalizedText{"es": "Cebolla", "en": "Onion"}, Icon: "🧅"}
	for _, ing := range []*models.Ingredient{&cheese, &bacon, &egg, &jalapeno, &tomato, &onion} {
		if err := models.DB.Create(ing).Error; err != nil {
			stdLog.Printf("Failed to create ingredient: %v", err)
		}
	}

	// 选项
	meat := models.ProductOption{
		NameJSON:   models.LocalizedText{"es": "Tipo de carne", "en": "Meat"},
		IsRequired: true,
		SortOrder:  1,
		Choices: []models.ProductOptionChoice{
			{NameJSON: models.LocalizedText{"es": "Pollo", "en": "Chicken"}, Icon: "🍗", SortOrder: 1},
			{NameJSON: models.LocalizedText{"es": "Ternera", "en": "Beef"}, Icon: "🥩", SortOrder: 2},
		},
	}
	dough := models.ProductOption{
		NameJSON:   models.LocalizedText{"es": "Masa", "en": "Dough"},
		IsRequired: true,
		SortOrder:  2,
		Choices: []models.ProductOptionChoice{
			{NameJSON: models.LocalizedText{"es": "Fina", "en": "Thin"}, SortOrder: 1},
			{NameJSON: models.LocalizedText{"es": "Gruesa", "en": "Thick"}, SortOrder: 2},
		},
	}
	for _, opt := range []*models.ProductOption{&meat, &dough} {
		if err := models.DB.Create(opt).Error; err != nil {
			stdLog.Printf("Failed to create option: %v", err)
		}
	}

	category := func(slug string) []models.Category {
		if cat, ok := categoryBySlug[slug]; ok {
			return []models.Category{cat}
		}
		return nil
	}

	products := []models.Product{
		{
			NameJSON:               models.LocalizedText{"es": "Pizza Margarita", "en": "Margherita pizza"},
			DescriptionJSON:        models.LocalizedText{"es": "Tomate, mozzarella y albahaca", "en": "Tomato, mozzarella and basil"},
			Price:                  money("9.50"),
			Stock:                  20,
			Available:              true,
			AllowsExtraIngredients: true,
			AllowIngredientSwap:    true,
			SortOrder:              1,
			Categories:             category("pizzas"),
			Ingredients:            []models.Ingredient{tomato},
			Options:                []models.ProductOption{dough},
		},
		{
			NameJSON:               models.LocalizedText{"es": "Pizza Barbacoa", "en": "BBQ pizza"},
			DescriptionJSON:        models.LocalizedText{"es": "Salsa barbacoa, carne y cebolla", "en": "BBQ sauce, meat and onion"},
			Price:                  money("11.00"),
			Stock:                  4,
			Available:              true,
			AllowsExtraIngredients: true,
			AllowIngredientSwap:    true,
			SortOrder:              2,
			Categories:             category("pizzas"),
			Ingredients:            []models.Ingredient{onion, tomato},
			Options:                []models.ProductOption{meat, dough},
		},
		{
			NameJSON:               models.LocalizedText{"es": "Hamburguesa clásica", "en": "Classic burger"},
			DescriptionJSON:        models.LocalizedText{"es": "Pan brioche, tomate y cebolla", "en": "Brioche bun, tomato and onion"},
			Price:                  money("8.50"),
			Stock:                  15,
			Available:              true,
			AllowsExtraIngredients: true,
			SortOrder:              1,
			Categories:             category("hamburguesas"),
			Ingredients:            []models.Ingredient{tomato, onion},
			Options:                []models.ProductOption{meat},
		},
		{
			NameJSON:    models.LocalizedText{"es": "Refresco de cola", "en": "Cola"},
			Price:       money("2.00"),
			Stock:       50,
			Available:   true,
			SortOrder:   1,
			Categories:  category("bebidas"),
			Ingredients: nil,
		},
		{
			NameJSON:   models.LocalizedText{"es": "Agua mineral", "en": "Still water"},
			Price:      money("1.50"),
			Stock:      0,
			Available:  true,
			SortOrder:  2,
			Categories: category("bebidas"),
		},
	}

	for i := range products {
		product := &products[i]
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.NameJSON["es"], err)
			continue
		}
		stdLog.Printf("Created product: %s", product.NameJSON["es"])
	}

	// 饮品不允许加料；默认值为 true，需创建后再更新
	for _, product := range products[3:] {
		if product.ID == 0 {
			continue
		}
		if err := models.DB.Model(&models.Product{}).Where("id = ?", product.ID).Update("allows_extra_ingredients", false).Error; err != nil {
			stdLog.Printf("Failed to update product %d: %v", product.ID, err)
		}
	}
}
