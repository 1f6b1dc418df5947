package openreview

import "fmt"

// ConfigError 请求了不支持的筛选类别或年份，在发起任何网络调用之前就失败
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// FetchError 列表接口返回了非 2xx 状态码，携带状态码与请求地址。
// 该错误终止当前年份的采集，但不影响同一批次中的其他年份
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}
