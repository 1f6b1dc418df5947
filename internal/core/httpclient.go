package core

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"
)

// NewHTTPClient 创建一个通用的 HTTP 客户端
// - timeoutSec: 单个请求的超时时间（秒），所有请求都必须带超时
// - proxy: 代理地址，例如 "http://127.0.0.1:7890"，留空则不设置代理
// notes 拉取与作者主页抓取各自持有独立的 client，
// 在一次运行开始时显式构造、随运行结束丢弃，不做进程级隐藏全局
func NewHTTPClient(timeoutSec int, proxy string) *http.Client {
	if timeoutSec <= 0 {
		timeoutSec = 30
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: time.Duration(timeoutSec) * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   64, // 作者主页批量抓取会对同一 host 并发保持连接
	}

	if proxy != "" {
		if proxyURL, err := url.Parse(proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Timeout:   time.Duration(timeoutSec) * time.Second,
		Transport: transport,
	}
}
