package service

import (
	"context"
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/constants"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/repository"
)

const companySettingCacheTTL = 5 * time.Minute

// SettingService 设置业务服务
type SettingService struct {
	repo     repository.SettingRepository
	defaults config.CompanyConfig
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository, defaults config.CompanyConfig) *SettingService {
	return &SettingService{repo: repo, defaults: defaults}
}

func companySettingCacheKey() string {
	return "setting:" + constants.SettingKeyCompany
}

// GetCompany 获取店铺设置（数据库值覆盖配置默认值）
func (s *SettingService) GetCompany(ctx context.Context) (CompanySetting, error) {
	if s == nil {
		return CompanyDefaultSetting(config.CompanyConfig{}), nil
	}
	fallback := CompanyDefaultSetting(s.defaults)
	if s.repo == nil {
		return fallback, nil
	}

	var cached CompanySetting
	if hit, err := cache.GetJSON(ctx, companySettingCacheKey(), &cached); err != nil {
		logger.Warnw("company_setting_cache_read_failed", "error", err)
	} else if hit {
		return NormalizeCompanySetting(cached), nil
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyCompany)
	if err != nil {
		return fallback, err
	}
	result := fallback
	if setting != nil {
		result, err = companySettingFromJSON(setting.ValueJSON, fallback)
		if err != nil {
			return fallback, err
		}
	}
	if err := cache.SetJSON(ctx, companySettingCacheKey(), result, companySettingCacheTTL); err != nil {
		logger.Warnw("company_setting_cache_write_failed", "error", err)
	}
	return result, nil
}

// UpdateCompany 保存店铺设置并使缓存失效
func (s *SettingService) UpdateCompany(ctx context.Context, input CompanySetting) (CompanySetting, error) {
	normalized := NormalizeCompanySetting(input)
	value, err := CompanySettingToJSON(normalized)
	if err != nil {
		return CompanySetting{}, err
	}
	if _, err := s.repo.Upsert(constants.SettingKeyCompany, value); err != nil {
		return CompanySetting{}, err
	}
	if err := cache.Del(ctx, companySettingCacheKey()); err != nil {
		logger.Warnw("company_setting_cache_invalidate_failed", "error", err)
	}
	return normalized, nil
}
