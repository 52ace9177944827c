package cart

import (
	"bytes"
	"encoding/json"
	"maps"
	"strings"

	"github.com/mesa-next/internal/pricing"
)

// ExtraIngredient 额外配料快照
type ExtraIngredient = pricing.Extra

// ProductTranslation 商品多语言文案
type ProductTranslation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductSnapshot 加入购物车时的商品快照（按值复制，不跟随商品改价）
type ProductSnapshot struct {
	ID                     uint                          `json:"id"`
	Price                  pricing.Price                 `json:"price"`
	Translations           map[string]ProductTranslation `json:"translations"`
	Image                  string                        `json:"image"`
	AllowsExtraIngredients bool                          `json:"allows_extra_ingredients"`
	AllowIngredientSwap    bool                          `json:"allow_ingredient_swap"`
}

// OptionChoice 选项的已选值
type OptionChoice struct {
	ChoiceID   uint   `json:"choiceId"`
	ChoiceName string `json:"choiceName"`
	Icon       string `json:"icon"`
}

// Customization 商品定制内容
type Customization struct {
	SelectedExtras             []ExtraIngredient       `json:"selectedExtras"`
	SelectedOptions            map[string]OptionChoice `json:"selectedOptions"`
	AdditionalNotes            string                  `json:"additionalNotes"`
	DeselectedIngredientsCount int                     `json:"deselectedIngredientsCount"`
	DeselectedIngredients      []string                `json:"deselectedIngredients,omitempty"`
}

// Clone 深拷贝定制内容
func (c *Customization) Clone() *Customization {
	if c == nil {
		return nil
	}
	out := *c
	if c.SelectedExtras != nil {
		out.SelectedExtras = make([]ExtraIngredient, len(c.SelectedExtras))
		for i, extra := range c.SelectedExtras {
			extra.Name = maps.Clone(extra.Name)
			out.SelectedExtras[i] = extra
		}
	}
	out.SelectedOptions = maps.Clone(c.SelectedOptions)
	if c.DeselectedIngredients != nil {
		out.DeselectedIngredients = append([]string(nil), c.DeselectedIngredients...)
	}
	return &out
}

// Line 购物车行
type Line struct {
	ID            string          `json:"id"`
	Product       ProductSnapshot `json:"product"`
	Quantity      int             `json:"quantity"`
	Customization *Customization  `json:"customization"`
}

// UnmarshalJSON 兼容字符串与数字形式的 id；无法识别的 id 置空，恢复时重新生成
func (l *Line) UnmarshalJSON(data []byte) error {
	type lineFields Line
	aux := struct {
		ID json.RawMessage `json:"id"`
		*lineFields
	}{lineFields: (*lineFields)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.ID = decodeLineID(aux.ID)
	return nil
}

func decodeLineID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}
	return ""
}

// Customized 是否携带定制
func (l Line) Customized() bool {
	return l.Customization != nil
}

func (l Line) clone() Line {
	out := l
	if l.Product.Translations != nil {
		out.Product.Translations = maps.Clone(l.Product.Translations)
	}
	out.Customization = l.Customization.Clone()
	return out
}
