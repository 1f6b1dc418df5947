package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"ReviewHarvest/internal/core"
	"ReviewHarvest/internal/models"
	"ReviewHarvest/pkg/logger"
)

// Fetcher 作者主页批量抓取器。
// 一批之内所有抓取并发执行，受连接数上限约束；
// 单个主页失败只产出降级记录，绝不让整批失败
type Fetcher struct {
	config     *Config
	httpClient *http.Client
}

func NewFetcher(config *Config) (*Fetcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Fetcher{
		config:     config,
		httpClient: core.NewHTTPClient(config.Timeout, config.Proxy),
	}, nil
}

// FetchAll 抓取一组作者 ID 对应的全部主页。
// 入参应当已经去重；每个任务只写自己下标对应的结果槽，无需加锁。
// 返回值与入参等长且顺序一致
func (f *Fetcher) FetchAll(ctx context.Context, authorIDs []string) []models.AuthorProfile {
	results := make([]models.AuthorProfile, len(authorIDs))
	sem := make(chan struct{}, f.config.Concurrency)
	var wg sync.WaitGroup

	logger.Info("[Profile] 开始抓取 %d 个作者主页，并发上限 %d", len(authorIDs), f.config.Concurrency)

	for i, id := range authorIDs {
		wg.Add(1)
		go func(slot int, authorID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[slot] = f.fetchOne(ctx, authorID)
		}(i, id)
	}
	wg.Wait()

	failed := 0
	for i := range results {
		if results[i].FetchError != "" {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("[Profile] %d/%d 个主页降级为部分记录", failed, len(authorIDs))
	}
	return results
}

// fetchOne 抓取并解析单个作者主页。
// 任何失败（非 200 / 网络错误 / 解析错误）都转成降级记录返回
func (f *Fetcher) fetchOne(ctx context.Context, authorID string) models.AuthorProfile {
	pageURL := f.config.BaseURL + "?id=" + url.QueryEscape(authorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return degraded(authorID, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return degraded(authorID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return degraded(authorID, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	parsed, err := parseProfile(resp.Body)
	if err != nil {
		return degraded(authorID, err)
	}
	parsed.AuthorID = authorID
	return parsed
}

func degraded(authorID string, err error) models.AuthorProfile {
	logger.Debug("[Profile] 主页降级: id=%s err=%v", authorID, err)
	return models.AuthorProfile{
		AuthorID:   authorID,
		FetchError: err.Error(),
	}
}
