package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/models"
)

// DeliveryLocation 配送地点
type DeliveryLocation struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// CompanySetting 店铺设置
type CompanySetting struct {
	Name                string             `json:"name"`
	Email               string             `json:"email"`
	WhatsAppPhone       string             `json:"whatsapp_phone"`
	BusinessHours       string             `json:"business_hours"`
	DeliveryLocations   []DeliveryLocation `json:"delivery_locations"`
	DeliveryEnabledDays map[string]bool    `json:"delivery_enabled_days"`
}

// 配送日键，与后台保存格式一致（周日为 0）
var deliveryDayKeys = [7]string{"Dom", "Lun", "Mar", "Mie", "Jue", "Vie", "Sab"}

// CompanyDefaultSetting 由配置文件生成默认店铺设置
func CompanyDefaultSetting(cfg config.CompanyConfig) CompanySetting {
	locations := make([]DeliveryLocation, 0, len(cfg.DeliveryLocations))
	for i, raw := range cfg.DeliveryLocations {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		locations = append(locations, DeliveryLocation{ID: i + 1, Name: name, Value: name, Enabled: true})
	}
	days := make(map[string]bool, len(cfg.DeliveryEnabledDays))
	for k, v := range cfg.DeliveryEnabledDays {
		days[k] = v
	}
	return NormalizeCompanySetting(CompanySetting{
		Name:                cfg.Name,
		Email:               cfg.Email,
		WhatsAppPhone:       cfg.WhatsAppPhone,
		BusinessHours:       cfg.BusinessHours,
		DeliveryLocations:   locations,
		DeliveryEnabledDays: days,
	})
}

// NormalizeCompanySetting 清理字段
func NormalizeCompanySetting(s CompanySetting) CompanySetting {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.WhatsAppPhone = strings.TrimSpace(s.WhatsAppPhone)
	s.BusinessHours = strings.TrimSpace(s.BusinessHours)
	locations := make([]DeliveryLocation, 0, len(s.DeliveryLocations))
	for _, loc := range s.DeliveryLocations {
		loc.Name = strings.TrimSpace(loc.Name)
		loc.Value = strings.TrimSpace(loc.Value)
		if loc.Value == "" {
			loc.Value = loc.Name
		}
		if loc.Value == "" {
			continue
		}
		if loc.Name == "" {
			loc.Name = loc.Value
		}
		locations = append(locations, loc)
	}
	s.DeliveryLocations = locations
	if s.DeliveryEnabledDays == nil {
		s.DeliveryEnabledDays = map[string]bool{}
	}
	return s
}

// companySettingFromJSON 将数据库中的 JSON 合并到默认值之上
func companySettingFromJSON(value models.JSON, fallback CompanySetting) (CompanySetting, error) {
	if len(value) == 0 {
		return fallback, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fallback, err
	}
	merged := fallback
	if err := json.Unmarshal(raw, &merged); err != nil {
		return fallback, err
	}
	return NormalizeCompanySetting(merged), nil
}

// CompanySettingToJSON 转换为设置表存储格式
func CompanySettingToJSON(s CompanySetting) (models.JSON, error) {
	raw, err := json.Marshal(NormalizeCompanySetting(s))
	if err != nil {
		return nil, err
	}
	var out models.JSON
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliveryAllowedOn 判断某天是否接单；未配置的日期视为可配送
func (s CompanySetting) DeliveryAllowedOn(t time.Time) bool {
	enabled, ok := s.DeliveryEnabledDays[deliveryDayKeys[int(t.Weekday())]]
	if !ok {
		return true
	}
	return enabled
}

// ResolveDeliveryLocation 匹配启用中的配送地点；未配置地点时接受任意非空值
func (s CompanySetting) ResolveDeliveryLocation(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if len(s.DeliveryLocations) == 0 {
		return value, true
	}
	for _, loc := range s.DeliveryLocations {
		if !loc.Enabled {
			continue
		}
		if strings.EqualFold(loc.Value, value) || strings.EqualFold(loc.Name, value) {
			return loc.Value, true
		}
	}
	return "", false
}

// EnabledLocations 前台可选配送地点
func (s CompanySetting) EnabledLocations() []DeliveryLocation {
	out := make([]DeliveryLocation, 0, len(s.DeliveryLocations))
	for _, loc := range s.DeliveryLocations {
		if loc.Enabled {
			out = append(out, loc)
		}
	}
	return out
}
