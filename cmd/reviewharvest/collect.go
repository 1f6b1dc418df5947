package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ReviewHarvest/internal/collector"
	"ReviewHarvest/pkg/logger"
)

var withReviews bool

func init() {
	collectCmd.Flags().BoolVar(&withReviews, "with-reviews", false, "同时采集评审与作者档案")
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(fetchCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect <year> [year...]",
	Short: "采集指定年份的论文（可选评审与作者档案）",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	years, err := parseYears(args)
	if err != nil {
		return err
	}

	_, col, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if withReviews {
		summary, err := col.CollectAll(ctx, years)
		if err != nil {
			return err
		}
		report(summary.Years)
		if summary.Authors != nil {
			logger.Info("作者档案: %d 条 → %s", summary.Authors.AuthorCount, summary.Authors.File)
		}
		return nil
	}

	summary, err := col.CollectPapers(ctx, years)
	if err != nil {
		return err
	}
	report(summary.Years)
	return nil
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <year> <category>",
	Short: "按决定类别（oral/spotlight/poster/submitted/reject/withdrawn）采集单个年份",
	Args:  cobra.ExactArgs(2),
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("年份不合法: %q", args[0])
	}

	_, col, err := setup()
	if err != nil {
		return err
	}

	summary, err := col.CollectFiltered(cmd.Context(), year, args[1])
	if err != nil {
		return err
	}
	logger.Info("ICLR %d %s: %d 篇 → %s", summary.Year, summary.Category, summary.NoteCount, summary.PapersFile)
	return nil
}

func report(years []collector.YearSummary) {
	for _, ys := range years {
		if ys.Error != "" {
			logger.Error("ICLR %d 采集失败: %s", ys.Year, ys.Error)
			continue
		}
		if ys.ReviewsFile != "" {
			logger.Info("ICLR %d: %d 篇论文, %d 条评审 → %s, %s", ys.Year, ys.PaperCount, ys.ReviewCount, ys.PapersFile, ys.ReviewsFile)
		} else {
			logger.Info("ICLR %d: %d 篇论文 → %s", ys.Year, ys.PaperCount, ys.PapersFile)
		}
	}
}

func parseYears(args []string) ([]int, error) {
	years := make([]int, 0, len(args))
	for _, a := range args {
		y, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("年份不合法: %q", a)
		}
		years = append(years, y)
	}
	return years, nil
}
