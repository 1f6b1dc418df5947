package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ReviewHarvest/internal/export"
	"ReviewHarvest/internal/models"
	"ReviewHarvest/internal/openreview"
	"ReviewHarvest/internal/profile"
	"ReviewHarvest/pkg/logger"
)

// Collector 一次采集运行的编排器。
// 论文 / 评审阶段逐年串行（列表接口是瓶颈，评审嵌套在同一响应里），
// 作者主页阶段是唯一的并发环节；跨运行不保留任何状态
type Collector struct {
	client        *openreview.Client
	profiles      *profile.Fetcher
	exporter      export.Exporter
	ext           string
	outputDir     string
	flattenPolicy profile.FlattenPolicy
}

func New(client *openreview.Client, profiles *profile.Fetcher, provider export.Provider, outputDir string, policy profile.FlattenPolicy) *Collector {
	return &Collector{
		client:        client,
		profiles:      profiles,
		exporter:      provider.New(),
		ext:           provider.Ext,
		outputDir:     outputDir,
		flattenPolicy: policy,
	}
}

// YearSummary 单个年份的采集结果摘要
type YearSummary struct {
	Year        int    `json:"year"`
	PaperCount  int    `json:"total_papers"`
	ReviewCount int    `json:"total_reviews,omitempty"`
	PapersFile  string `json:"papers_file,omitempty"`
	ReviewsFile string `json:"reviews_file,omitempty"`
	Error       string `json:"error,omitempty"`
}

// AuthorSummary 作者档案批次的结果摘要
type AuthorSummary struct {
	AuthorCount int    `json:"author_count"`
	File        string `json:"file"`
}

// RunSummary 整次运行的结果摘要，按年份展开
type RunSummary struct {
	Years   []YearSummary  `json:"years"`
	Authors *AuthorSummary `json:"author_profiles,omitempty"`
}

// FilteredSummary 按类别筛选运行的结果摘要
type FilteredSummary struct {
	Year       int    `json:"year"`
	Category   string `json:"filter_type"`
	NoteCount  int    `json:"note_count"`
	PapersFile string `json:"file_saved"`
}

// CollectPapers 只采集论文。年份之间相互独立：
// 某一年列表拉取失败只终止该年份，失败原因记进摘要，其余年份继续
func (c *Collector) CollectPapers(ctx context.Context, years []int) (RunSummary, error) {
	var summary RunSummary
	for _, year := range years {
		ys := c.collectYear(ctx, year, false)
		summary.Years = append(summary.Years, ys)
	}
	return summary, nil
}

// CollectAll 采集论文 + 评审，随后对全部年份收集到的作者 ID
// 去重后跑一个作者档案批次
func (c *Collector) CollectAll(ctx context.Context, years []int) (RunSummary, error) {
	var summary RunSummary
	var allPapers []models.PaperRecord

	for _, year := range years {
		ys, papers := c.collectYearRecords(ctx, year, true)
		summary.Years = append(summary.Years, ys)
		allPapers = append(allPapers, papers...)
	}

	authorIDs := openreview.CollectAuthorIDs(allPapers)
	if len(authorIDs) == 0 {
		return summary, nil
	}

	logger.Info("[Collector] 共 %d 个去重后的作者 ID，开始抓取主页", len(authorIDs))
	profiles := c.profiles.FetchAll(ctx, authorIDs)

	table := profile.Flatten(profiles, c.flattenPolicy)
	path, err := c.outputPath("ICLR_author_profiles")
	if err != nil {
		return summary, err
	}
	if err := c.exporter.Export(table, path); err != nil {
		return summary, fmt.Errorf("导出作者档案失败: %w", err)
	}
	logger.Info("[Collector] 已保存 %d 条作者档案到 %s", len(profiles), path)

	summary.Authors = &AuthorSummary{AuthorCount: len(authorIDs), File: path}
	return summary, nil
}

// CollectFiltered 按决定类别采集单个年份的论文。
// 类别不支持时返回 ConfigError，调用方据此映射成客户端错误
func (c *Collector) CollectFiltered(ctx context.Context, year int, category string) (FilteredSummary, error) {
	subs, err := c.client.FilteredSubmissions(ctx, year, category)
	if err != nil {
		return FilteredSummary{}, err
	}

	venue := openreview.VenueID(year)
	papers := make([]models.PaperRecord, 0, len(subs))
	for i := range subs {
		papers = append(papers, openreview.ExtractPaper(&subs[i], year, venue))
	}

	path, err := c.outputPath(fmt.Sprintf("ICLR_%d_%s_papers", year, category))
	if err != nil {
		return FilteredSummary{}, err
	}
	if err := c.exportPapers(papers, path); err != nil {
		return FilteredSummary{}, err
	}
	logger.Info("[Collector] 已保存 %d 篇 %s 论文到 %s", len(papers), category, path)

	return FilteredSummary{
		Year:       year,
		Category:   category,
		NoteCount:  len(papers),
		PapersFile: path,
	}, nil
}

func (c *Collector) collectYear(ctx context.Context, year int, withReviews bool) YearSummary {
	ys, _ := c.collectYearRecords(ctx, year, withReviews)
	return ys
}

// collectYearRecords 采集单个年份并落盘，同时把论文记录返回给
// 调用方做作者 ID 收集
func (c *Collector) collectYearRecords(ctx context.Context, year int, withReviews bool) (YearSummary, []models.PaperRecord) {
	ys := YearSummary{Year: year}

	logger.Info("[Collector] 开始采集 ICLR %d", year)
	subs, err := c.client.Submissions(ctx, year)
	if err != nil {
		logger.Error("[Collector] %d 年列表拉取失败: %v", year, err)
		ys.Error = err.Error()
		return ys, nil
	}

	venue := openreview.VenueID(year)
	papers := make([]models.PaperRecord, 0, len(subs))
	var reviews []models.ReviewRecord
	for i := range subs {
		papers = append(papers, openreview.ExtractPaper(&subs[i], year, venue))
		if withReviews {
			reviews = append(reviews, openreview.ExtractReviews(&subs[i], year, venue)...)
		}
	}

	papersPath, err := c.outputPath(fmt.Sprintf("ICLR_%d_papers", year))
	if err != nil {
		ys.Error = err.Error()
		return ys, nil
	}
	if err := c.exportPapers(papers, papersPath); err != nil {
		ys.Error = err.Error()
		return ys, nil
	}
	ys.PaperCount = len(papers)
	ys.PapersFile = papersPath
	logger.Info("[Collector] 已保存 %d 篇论文到 %s", len(papers), papersPath)

	if withReviews {
		reviewsPath, err := c.outputPath(fmt.Sprintf("ICLR_%d_reviews", year))
		if err != nil {
			ys.Error = err.Error()
			return ys, papers
		}
		if err := c.exportReviews(reviews, reviewsPath); err != nil {
			ys.Error = err.Error()
			return ys, papers
		}
		ys.ReviewCount = len(reviews)
		ys.ReviewsFile = reviewsPath
		logger.Info("[Collector] 已保存 %d 条评审到 %s", len(reviews), reviewsPath)
	}

	return ys, papers
}

func (c *Collector) exportPapers(papers []models.PaperRecord, path string) error {
	table := export.Table{Name: "papers", Header: models.PaperHeader()}
	for i := range papers {
		table.Rows = append(table.Rows, papers[i].Row())
	}
	if err := c.exporter.Export(table, path); err != nil {
		return fmt.Errorf("导出论文失败: %w", err)
	}
	return nil
}

func (c *Collector) exportReviews(reviews []models.ReviewRecord, path string) error {
	table := export.Table{Name: "reviews", Header: models.ReviewHeader()}
	for i := range reviews {
		table.Rows = append(table.Rows, reviews[i].Row())
	}
	if err := c.exporter.Export(table, path); err != nil {
		return fmt.Errorf("导出评审失败: %w", err)
	}
	return nil
}

// outputPath 确保输出目录存在并拼出目标文件路径。
// 建目录失败时带上目录名返回，避免后续报错只指向文件
func (c *Collector) outputPath(stem string) (string, error) {
	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录 %s 失败: %w", c.outputDir, err)
	}
	return filepath.Join(c.outputDir, stem+c.ext), nil
}
