package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ReviewHarvest/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务，按请求触发采集运行",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, col, err := setup()
	if err != nil {
		return err
	}

	srv := server.New(col)
	return srv.Start(fmt.Sprintf(":%d", cfg.Server.Port))
}
