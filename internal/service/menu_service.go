package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/repository"
)

const (
	menuCacheTTL           = 5 * time.Minute
	menuCategoriesCacheKey = "menu:categories"
	menuProductsCacheKey   = "menu:products"
	menuExtrasCacheKey     = "menu:extras"
	maxMenuSearchLength    = 64
)

// MenuService 菜单读取服务（分类、菜品、加料）
type MenuService struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	ingredients repository.IngredientRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(products repository.ProductRepository, categories repository.CategoryRepository, ingredients repository.IngredientRepository) *MenuService {
	return &MenuService{products: products, categories: categories, ingredients: ingredients}
}

// ListCategories 分类列表
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.readCache(ctx, menuCategoriesCacheKey, &cached) {
		return cached, nil
	}
	categories, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, menuCategoriesCacheKey, categories)
	return categories, nil
}

// ListProducts 可售菜品列表，categoryID 为 0 时返回全部
func (s *MenuService) ListProducts(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products, err := s.availableProducts(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == 0 {
		return products, nil
	}
	filtered := make([]models.Product, 0, len(products))
	for _, product := range products {
		for _, category := range product.Categories {
			if category.ID == categoryID {
				filtered = append(filtered, product)
				break
			}
		}
	}
	return filtered, nil
}

// SearchProducts 按多语言名称或描述搜索可售菜品（不走缓存）
func (s *MenuService) SearchProducts(_ context.Context, keyword string, categoryID uint) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Product{}, nil
	}
	if len([]rune(keyword)) > maxMenuSearchLength {
		keyword = string([]rune(keyword)[:maxMenuSearchLength])
	}
	return s.products.List(repository.ProductListFilter{
		CategoryID:    categoryID,
		OnlyAvailable: true,
		WithRelations: true,
		Search:        keyword,
	})
}

func (s *MenuService) availableProducts(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if s.readCache(ctx, menuProductsCacheKey, &cached) {
		return cached, nil
	}
	products, err := s.products.List(repository.ProductListFilter{OnlyAvailable: true, WithRelations: true})
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, menuProductsCacheKey, products)
	return products, nil
}

// GetProduct 菜品详情（直接读库，用于加购校验）
func (s *MenuService) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListExtras 可加购配料
func (s *MenuService) ListExtras(ctx context.Context) ([]models.Ingredient, error) {
	var cached []models.Ingredient
	if s.readCache(ctx, menuExtrasCacheKey, &cached) {
		return cached, nil
	}
	extras, err := s.ingredients.ListExtras()
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, menuExtrasCacheKey, extras)
	return extras, nil
}

// InvalidateCache 清除菜单缓存
func (s *MenuService) InvalidateCache(ctx context.Context) {
	for _, key := range []string{menuCategoriesCacheKey, menuProductsCacheKey, menuExtrasCacheKey} {
		if err := cache.Del(ctx, key); err != nil {
			logger.Warnw("menu_cache_invalidate_failed", "key", key, "error", err)
		}
	}
}

// ResolveExtras 按 ID 解析加料并校验是否允许
func (s *MenuService) ResolveExtras(_ context.Context, product *models.Product, ids []uint) ([]cart.ExtraIngredient, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	if product == nil || !product.AllowsExtraIngredients {
		return nil, ErrExtraNotAllowed
	}
	rows, err := s.ingredients.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, ErrExtraNotAllowed
	}
	extras := make([]cart.ExtraIngredient, 0, len(rows))
	for _, row := range rows {
		if !row.IsExtra {
			return nil, ErrExtraNotAllowed
		}
		extras = append(extras, ExtraSnapshot(row))
	}
	return extras, nil
}

// ResolveOptions 校验选项选择（option_id → choice_id）并生成快照
func ResolveOptions(product *models.Product, selections map[uint]uint, locale string) (map[string]cart.OptionChoice, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	known := make(map[uint]models.ProductOption, len(product.Options))
	for _, option := range product.Options {
		known[option.ID] = option
	}
	for optionID := range selections {
		if _, ok := known[optionID]; !ok {
			return nil, ErrInvalidOption
		}
	}

	result := make(map[string]cart.OptionChoice)
	for _, option := range product.Options {
		choiceID, selected := selections[option.ID]
		if !selected || choiceID == 0 {
			if option.IsRequired {
				return nil, fmt.Errorf("%w: option %d", ErrOptionRequired, option.ID)
			}
			continue
		}
		var matched *models.ProductOptionChoice
		for i := range option.Choices {
			if option.Choices[i].ID == choiceID {
				matched = &option.Choices[i]
				break
			}
		}
		if matched == nil {
			return nil, ErrInvalidOption
		}
		result[strconv.FormatUint(uint64(option.ID), 10)] = cart.OptionChoice{
			ChoiceID:   matched.ID,
			ChoiceName: i18n.Pick(matched.NameJSON, locale),
			Icon:       matched.Icon,
		}
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// Snapshot 生成购物车商品快照
func Snapshot(product *models.Product) cart.ProductSnapshot {
	if product == nil {
		return cart.ProductSnapshot{}
	}
	translations := make(map[string]cart.ProductTranslation, len(product.NameJSON))
	for locale, name := range product.NameJSON {
		translations[locale] = cart.ProductTranslation{
			Name:        name,
			Description: product.DescriptionJSON[locale],
		}
	}
	return cart.ProductSnapshot{
		ID:                     product.ID,
		Price:                  product.Price.Price(),
		Translations:           translations,
		Image:                  product.Image,
		AllowsExtraIngredients: product.AllowsExtraIngredients,
		AllowIngredientSwap:    product.AllowIngredientSwap,
	}
}

// ExtraSnapshot 生成加料快照
func ExtraSnapshot(ingredient models.Ingredient) cart.ExtraIngredient {
	name := make(map[string]string, len(ingredient.NameJSON))
	for k, v := range ingredient.NameJSON {
		name[k] = v
	}
	return cart.ExtraIngredient{
		ID:    ingredient.ID,
		Name:  name,
		Price: ingredient.Price.Price(),
		Icon:  ingredient.Icon,
	}
}

// SnapshotName 快照在指定语言下的名称
func SnapshotName(snapshot cart.ProductSnapshot, locale string) string {
	names := make(map[string]string, len(snapshot.Translations))
	for k, v := range snapshot.Translations {
		names[k] = v.Name
	}
	name := i18n.Pick(names, locale)
	if strings.TrimSpace(name) == "" {
		return "#" + strconv.FormatUint(uint64(snapshot.ID), 10)
	}
	return name
}

func (s *MenuService) readCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.Warnw("menu_cache_read_failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *MenuService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := cache.SetJSON(ctx, key, value, menuCacheTTL); err != nil {
		logger.Warnw("menu_cache_write_failed", "key", key, "error", err)
	}
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
