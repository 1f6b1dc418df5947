package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"ReviewHarvest/internal/openreview"
	"ReviewHarvest/internal/profile"
	"ReviewHarvest/pkg/logger"
)

// OutputConfig 导出配置
type OutputConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`                 // 输出目录
	Format     string `mapstructure:"format" yaml:"format"`           // 导出格式: csv/json
	AuthorRows string `mapstructure:"author_rows" yaml:"author_rows"` // 作者展平策略: summary/expanded
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// AppConfig 应用总配置(全局 + 各阶段)
type AppConfig struct {
	Env        string            `mapstructure:"env" yaml:"env"`               // 运行环境:dev/prod
	LogLevel   string            `mapstructure:"log_level" yaml:"log_level"`   // 日志级别
	OpenReview openreview.Config `mapstructure:"openreview" yaml:"openreview"` // notes 列表接口配置
	Profile    profile.Config    `mapstructure:"profile" yaml:"profile"`       // 作者主页抓取配置
	Output     OutputConfig      `mapstructure:"output" yaml:"output"`         // 导出配置
	Server     ServerConfig      `mapstructure:"server" yaml:"server"`         // HTTP 服务配置
}

var (
	global     *AppConfig
	once       sync.Once
	globalErr  error
	configPath string // 当前使用的配置文件路径
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "prod")
	v.SetDefault("log_level", "INFO")

	v.SetDefault("openreview.api_base_v1", "https://api.openreview.net")
	v.SetDefault("openreview.api_base_v2", "https://api2.openreview.net")
	v.SetDefault("openreview.proxy", "")
	v.SetDefault("openreview.timeout", 30)
	v.SetDefault("openreview.page_size", 100)
	v.SetDefault("openreview.max_pages", 500)
	v.SetDefault("openreview.rate_per_second", 1.0)
	v.SetDefault("openreview.cutover_year", 2024)

	v.SetDefault("profile.base_url", "https://openreview.net/profile")
	v.SetDefault("profile.proxy", "")
	v.SetDefault("profile.timeout", 30)
	v.SetDefault("profile.concurrency", 50)

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.format", "csv")
	v.SetDefault("output.author_rows", "summary")

	v.SetDefault("server.port", 8002)
}

// Init 可额外传入目录或具体文件路径
func Init(configPaths ...string) (*AppConfig, error) {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		homedir, _ := os.UserHomeDir()
		configDir := filepath.Join(homedir, ".reviewharvest", "config")

		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir)

		for _, p := range configPaths {
			if p == "" {
				continue
			}
			if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
				v.SetConfigFile(p)
			} else {
				v.AddConfigPath(p)
			}
		}

		v.SetEnvPrefix("RH")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				globalErr = fmt.Errorf("读取配置文件失败: %w", err)
				return
			}
			// 配置文件不存在，创建示例配置文件
			if err := CreateExampleConfig(); err != nil {
				globalErr = fmt.Errorf("创建示例配置文件失败: %w", err)
				return
			}
		} else {
			configPath = v.ConfigFileUsed()
		}

		cfg := &AppConfig{}
		if err := v.Unmarshal(&cfg); err != nil {
			globalErr = fmt.Errorf("配置解析失败: %w", err)
			return
		}

		if err := cfg.OpenReview.Validate(); err != nil {
			globalErr = fmt.Errorf("openreview 配置不合法: %w", err)
			return
		}

		if err := cfg.Profile.Validate(); err != nil {
			globalErr = fmt.Errorf("profile 配置不合法: %w", err)
			return
		}

		global = cfg
	})
	return global, globalErr
}

func MustInit(configPaths ...string) *AppConfig {
	cfg, err := Init(configPaths...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Get() *AppConfig {
	if global == nil {
		_, _ = Init()
	}
	return global
}

func GetConfigPath() string {
	if configPath == "" {
		_, _ = Init()
	}
	return configPath
}

func CreateExampleConfig() error {
	homedir, _ := os.UserHomeDir()
	configDir := filepath.Join(homedir, ".reviewharvest", "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yaml")

	_, err := os.Stat(configFile)
	if err == nil {
		logger.Warn("home 目录下已存在配置文件，请前往编辑即可")
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("检查配置文件时出错: %w", err)
	}

	exampleContent := `# ReviewHarvest 配置文件
# 请根据你的需求修改以下配置

# OpenReview notes 列表接口
openreview:
  proxy: ""            # 代理设置，如: "http://127.0.0.1:7890"
  timeout: 30          # 单请求超时（秒）
  page_size: 100       # 分页大小
  max_pages: 500       # 分页安全上限
  rate_per_second: 1.0 # 每秒请求数上限
  cutover_year: 2024   # 从该年份起使用 API v2

# 作者主页抓取
profile:
  proxy: ""
  timeout: 30
  concurrency: 50      # 同时打开的连接数上限

# 导出
output:
  dir: "output"          # 输出目录
  format: "csv"          # csv 或 json
  author_rows: "summary" # summary（每作者一行）或 expanded（每段经历一行）

# HTTP 服务
server:
  port: 8002
`

	if err := os.WriteFile(configFile, []byte(exampleContent), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	logger.Info("已在 %s 中创建配置文件", configFile)
	return nil
}
