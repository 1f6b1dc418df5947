package openreview

import "fmt"

// Config OpenReview 平台配置。
// 平台在 2024 年切换到 API v2，切换前后的年份走不同的 base url 与 invitation 形态
type Config struct {
	APIBaseV1     string  `mapstructure:"api_base_v1" yaml:"api_base_v1"` // 旧版 API 地址（切换前年份）
	APIBaseV2     string  `mapstructure:"api_base_v2" yaml:"api_base_v2"` // 新版 API 地址
	Proxy         string  `mapstructure:"proxy" yaml:"proxy"`
	Timeout       int     `mapstructure:"timeout" yaml:"timeout"`               // 单请求超时（秒）
	PageSize      int     `mapstructure:"page_size" yaml:"page_size"`           // 分页大小
	MaxPages      int     `mapstructure:"max_pages" yaml:"max_pages"`           // 分页安全上限，超出视为异常
	RatePerSecond float64 `mapstructure:"rate_per_second" yaml:"rate_per_second"` // 每秒请求数上限
	CutoverYear   int     `mapstructure:"cutover_year" yaml:"cutover_year"`     // 从该年份起使用 API v2
}

func DefaultConfig() *Config {
	return &Config{
		APIBaseV1:     "https://api.openreview.net",
		APIBaseV2:     "https://api2.openreview.net",
		Timeout:       30,
		PageSize:      100,
		MaxPages:      500,
		RatePerSecond: 1.0,
		CutoverYear:   2024,
	}
}

func (c *Config) Validate() error {
	if c.APIBaseV1 == "" || c.APIBaseV2 == "" {
		return fmt.Errorf("api_base 不能为空")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout 必须为正数")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size 必须为正数")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages 必须为正数")
	}
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second 必须为正数")
	}
	if c.CutoverYear <= 0 {
		return fmt.Errorf("cutover_year 必须为正数")
	}
	return nil
}
