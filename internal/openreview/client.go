package openreview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"ReviewHarvest/internal/core"
	"ReviewHarvest/internal/models"
	"ReviewHarvest/pkg/logger"
)

// 支持的筛选类别 → content.venue 取值模板（仅 v2 年份支持按类别筛选）
var categoryVenues = map[string]string{
	"oral":      "ICLR %d oral",
	"spotlight": "ICLR %d spotlight",
	"poster":    "ICLR %d poster",
	"submitted": "Submitted to ICLR %d",
	"reject":    "ICLR %d Rejected Submission",
	"withdrawn": "ICLR %d Withdrawn Submission",
}

// Client 面向 notes 列表接口的客户端。
// 持有运行级的 http.Client 与限速器，在一次采集运行开始时构造
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config:     config,
		httpClient: core.NewHTTPClient(config.Timeout, config.Proxy),
		limiter:    rate.NewLimiter(rate.Limit(config.RatePerSecond), 1),
	}, nil
}

// VenueID 某一年会议的 venue 标识，如 "ICLR.cc/2024/Conference"
func VenueID(year int) string {
	return fmt.Sprintf("ICLR.cc/%d/Conference", year)
}

// usesV2 该年份是否已切换到 API v2
func (c *Client) usesV2(year int) bool {
	return year >= c.config.CutoverYear
}

// Submissions 拉取某一年的全部投稿（含嵌套 replies）。
// 切换后年份走 v2 的 Submission invitation + directReplies，
// 之前的年份走 v1 的 Blind_Submission invitation + replies
func (c *Client) Submissions(ctx context.Context, year int) ([]models.Submission, error) {
	params := url.Values{}
	if c.usesV2(year) {
		params.Set("invitation", VenueID(year)+"/-/Submission")
		params.Set("details", "directReplies")
		return c.listNotes(ctx, c.config.APIBaseV2, params)
	}
	params.Set("invitation", VenueID(year)+"/-/Blind_Submission")
	params.Set("details", "replies")
	return c.listNotes(ctx, c.config.APIBaseV1, params)
}

// FilteredSubmissions 按决定类别拉取某一年的投稿。
// 不支持的类别在发起网络请求前直接返回 ConfigError
func (c *Client) FilteredSubmissions(ctx context.Context, year int, category string) ([]models.Submission, error) {
	tmpl, ok := categoryVenues[category]
	if !ok {
		return nil, &ConfigError{Msg: fmt.Sprintf("不支持的筛选类别: %q", category)}
	}
	if !c.usesV2(year) {
		return nil, &ConfigError{Msg: fmt.Sprintf("%d 年早于平台切换年份，不支持按类别筛选", year)}
	}

	params := url.Values{}
	params.Set("content.venue", fmt.Sprintf(tmpl, year))
	params.Set("details", "directReplies")
	return c.listNotes(ctx, c.config.APIBaseV2, params)
}

// notesResponse 列表接口的响应体，notes 为空即表示翻完了所有页
type notesResponse struct {
	Notes []models.Submission `json:"notes"`
	Count int                 `json:"count"`
}

// listNotes 分页拉取：offset 从 0 开始，每页前缀相同的 filter 参数，
// 空页终止，按页序拼接。页数超过 max_pages 安全上限视为异常终止，
// 而不是无声地继续翻页
func (c *Client) listNotes(ctx context.Context, base string, filter url.Values) ([]models.Submission, error) {
	var all []models.Submission
	offset := 0

	for page := 0; ; page++ {
		if page >= c.config.MaxPages {
			return nil, fmt.Errorf("分页超过安全上限 %d 页（已累计 %d 条），远端可能永不终止", c.config.MaxPages, len(all))
		}

		params := url.Values{}
		for k, vs := range filter {
			for _, v := range vs {
				params.Add(k, v)
			}
		}
		params.Set("limit", fmt.Sprintf("%d", c.config.PageSize))
		params.Set("offset", fmt.Sprintf("%d", offset))

		apiURL := base + "/notes?" + params.Encode()
		logger.Debug("[OpenReview] 请求列表: offset=%d, limit=%d", offset, c.config.PageSize)

		resp, err := c.getNotes(ctx, apiURL)
		if err != nil {
			return nil, err
		}

		if len(resp.Notes) == 0 {
			logger.Debug("[OpenReview] 空页，分页结束，共 %d 条", len(all))
			return all, nil
		}

		logger.Debug("[OpenReview] 本页获取 %d 条", len(resp.Notes))
		all = append(all, resp.Notes...)
		offset += c.config.PageSize
	}
}

// getNotes 发起一次带限速的 GET 并解码响应体
func (c *Client) getNotes(ctx context.Context, apiURL string) (*notesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{StatusCode: resp.StatusCode, URL: apiURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed notesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &parsed, nil
}

// Categories 返回全部受支持的筛选类别（给 HTTP 层做入参校验提示用）
func Categories() []string {
	return []string{"oral", "spotlight", "poster", "submitted", "reject", "withdrawn"}
}
