package i18n

import (
	"fmt"
	"strings"

	"github.com/mesa-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleES = constants.LocaleES
	LocaleEN = constants.LocaleEN
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleES

// ResolveLocale 从请求中解析语言：lang 参数 > X-Locale 头 > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale, ok := normalize(c.Query("lang")); ok {
		return locale
	}
	if locale, ok := normalize(c.GetHeader("X-Locale")); ok {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale, ok := normalize(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

// Normalize 将任意语言标签归一为支持的语言，不支持时返回默认语言
func Normalize(raw string) string {
	if locale, ok := normalize(raw); ok {
		return locale
	}
	return DefaultLocale
}

func normalize(raw string) (string, bool) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return "", false
	}
	if idx := strings.IndexAny(tag, "-_"); idx > 0 {
		tag = tag[:idx]
	}
	switch tag {
	case LocaleES, LocaleEN:
		return tag, true
	}
	return "", false
}

// T 按语言取文案，缺失时回退到默认语言，再缺失返回 key 本身
func T(locale, key string) string {
	if msg, ok := messages[Normalize(locale)][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 取文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Pick 从多语言字段中选出当前语言的值，依次回退到 es、en 和任意非空值
func Pick(values map[string]string, locale string) string {
	if len(values) == 0 {
		return ""
	}
	if v := strings.TrimSpace(values[Normalize(locale)]); v != "" {
		return v
	}
	if v := strings.TrimSpace(values[DefaultLocale]); v != "" {
		return v
	}
	if v := strings.TrimSpace(values[LocaleEN]); v != "" {
		return v
	}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
