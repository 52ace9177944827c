package service

import (
	"cmp"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/pricing"
)

const whatsAppBaseURL = "https://wa.me/"

// BuildWhatsAppItems 生成订单明细文本（消息与邮件共用）
func BuildWhatsAppItems(preview CheckoutPreview, locale string, formatter pricing.Formatter) string {
	var b strings.Builder
	for i, line := range preview.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%dx %s - %s", line.Quantity, line.Name, formatter.Format(line.LineTotal))
		custom := line.Line.Customization
		if custom == nil {
			continue
		}
		if len(custom.DeselectedIngredients) > 0 {
			b.WriteString("\n  ")
			b.WriteString(i18n.Sprintf(locale, "whatsapp.without", strings.Join(custom.DeselectedIngredients, ", ")))
		}
		if len(custom.SelectedExtras) > 0 {
			names := make([]string, 0, len(custom.SelectedExtras))
			free := i18n.T(locale, "whatsapp.free")
			for _, extra := range line.Extras.PaidExtras {
				names = append(names, fmt.Sprintf("%s (+%s)", i18n.Pick(extra.Name, locale), formatter.Format(extra.Price.Decimal())))
			}
			for _, extra := range line.Extras.FreeExtras {
				names = append(names, fmt.Sprintf("%s (%s)", i18n.Pick(extra.Name, locale), free))
			}
			b.WriteString("\n  ")
			b.WriteString(i18n.Sprintf(locale, "whatsapp.extras", strings.Join(names, ", ")))
		}
		if len(custom.SelectedOptions) > 0 {
			choices := make([]string, 0, len(custom.SelectedOptions))
			for _, key := range sortedOptionKeys(custom.SelectedOptions) {
				choice := custom.SelectedOptions[key]
				label := strings.TrimSpace(strings.TrimSpace(choice.Icon) + " " + choice.ChoiceName)
				choices = append(choices, label)
			}
			b.WriteString("\n  ")
			b.WriteString(i18n.Sprintf(locale, "whatsapp.options", strings.Join(choices, ", ")))
		}
		if notes := strings.TrimSpace(custom.AdditionalNotes); notes != "" {
			b.WriteString("\n  ")
			b.WriteString(i18n.Sprintf(locale, "whatsapp.line_notes", notes))
		}
	}
	return b.String()
}

// BuildWhatsAppMessage 生成下单消息全文
func BuildWhatsAppMessage(order *models.Order, preview CheckoutPreview, locale string, formatter pricing.Formatter) string {
	var b strings.Builder
	b.WriteString(i18n.Sprintf(locale, "whatsapp.title", order.ID))
	b.WriteString("\n")
	b.WriteString(i18n.Sprintf(locale, "whatsapp.customer", order.CustomerName))
	b.WriteString("\n")
	b.WriteString(i18n.Sprintf(locale, "whatsapp.phone", order.Phone))
	b.WriteString("\n")
	b.WriteString(i18n.Sprintf(locale, "whatsapp.address", order.DeliveryStreet, order.DeliveryHouseNumber, order.DeliveryLocation))
	if notes := strings.TrimSpace(order.Notes); notes != "" {
		b.WriteString("\n")
		b.WriteString(i18n.Sprintf(locale, "whatsapp.notes", notes))
	}
	b.WriteString("\n\n")
	b.WriteString(i18n.T(locale, "whatsapp.items"))
	b.WriteString("\n")
	b.WriteString(BuildWhatsAppItems(preview, locale, formatter))
	b.WriteString("\n\n")
	b.WriteString(i18n.Sprintf(locale, "whatsapp.total", formatter.Format(preview.ChargedTotal)))
	return b.String()
}

// BuildWhatsAppURL 生成 wa.me 链接，号码只保留数字
func BuildWhatsAppURL(phone, message string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBaseURL + string(digits) + "?text=" + text
}

// sortedOptionKeys 选项 key 为数字 ID，按数值顺序输出
func sortedOptionKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return cmp.Compare(len(a), len(b))
		}
		return strings.Compare(a, b)
	})
	return keys
}
