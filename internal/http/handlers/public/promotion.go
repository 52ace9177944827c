package public

import (
	"strconv"

	"github.com/mesa-next/internal/http/response"
	"github.com/mesa-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// PublicPromotionView 前台横幅
type PublicPromotionView struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

// PublicCarouselCardView 前台滚动卡片
type PublicCarouselCardView struct {
	ID              uint   `json:"id"`
	Text            string `json:"text"`
	Emoji           string `json:"emoji"`
	BackgroundColor string `json:"background_color"`
	SortOrder       int    `json:"sort_order"`
}

// GetPromotions 获取当前有效的促销横幅
func (h *Handler) GetPromotions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	promotions, err := h.PromotionService.ListActivePromotions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.promotion_fetch_failed", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	items := make([]PublicPromotionView, 0, len(promotions))
	for _, promotion := range promotions {
		items = append(items, PublicPromotionView{
			ID:          promotion.ID,
			Description: i18n.Pick(promotion.DescriptionJSON, locale),
			ImageURL:    promotion.Image,
			SortOrder:   promotion.SortOrder,
		})
	}
	response.Success(c, items)
}

// GetCarouselCards 获取首页滚动卡片
func (h *Handler) GetCarouselCards(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	cards, err := h.PromotionService.ListCarouselCards(c.Request.Context(), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.promotion_fetch_failed", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	items := make([]PublicCarouselCardView, 0, len(cards))
	for _, card := range cards {
		items = append(items, PublicCarouselCardView{
			ID:              card.ID,
			Text:            i18n.Pick(card.TextJSON, locale),
			Emoji:           card.Emoji,
			BackgroundColor: card.BackgroundColor,
			SortOrder:       card.SortOrder,
		})
	}
	response.Success(c, items)
}
