package profile

import "fmt"

// Config 作者主页抓取配置
type Config struct {
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"` // 主页地址，按 ?id=<author_id> 拼接
	Proxy       string `mapstructure:"proxy" yaml:"proxy"`
	Timeout     int    `mapstructure:"timeout" yaml:"timeout"`         // 单请求超时（秒）
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"` // 同时打开的连接数上限
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://openreview.net/profile",
		Timeout:     30,
		Concurrency: 50,
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url 不能为空")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout 必须为正数")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency 必须为正数")
	}
	return nil
}
