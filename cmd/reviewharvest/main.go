package main

import (
	"os"

	"github.com/spf13/cobra"

	"ReviewHarvest/config"
	"ReviewHarvest/internal/collector"
	"ReviewHarvest/internal/export"
	"ReviewHarvest/internal/openreview"
	"ReviewHarvest/internal/profile"
	"ReviewHarvest/pkg/logger"

	// 注册导出格式
	_ "ReviewHarvest/internal/export/csv"
	_ "ReviewHarvest/internal/export/json"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "reviewharvest",
	Short:         "ICLR 论文 / 评审 / 作者档案采集器",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "配置文件路径")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// setup 加载配置、初始化日志并装配一次运行所需的全部资源
func setup() (*config.AppConfig, *collector.Collector, error) {
	cfg, err := config.Init(configFile)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel, cfg.Env != "prod")

	client, err := openreview.NewClient(&cfg.OpenReview)
	if err != nil {
		return nil, nil, err
	}
	fetcher, err := profile.NewFetcher(&cfg.Profile)
	if err != nil {
		return nil, nil, err
	}

	provider, ok := export.Get(cfg.Output.Format)
	if !ok {
		provider, _ = export.Get("csv")
	}

	policy := profile.PolicySummary
	if cfg.Output.AuthorRows == "expanded" {
		policy = profile.PolicyExpanded
	}

	col := collector.New(client, fetcher, provider, cfg.Output.Dir, policy)
	return cfg, col, nil
}
