package models

import (
	"encoding/json"
	"fmt"
)

// Submission 评审平台返回的一篇论文原始记录（note），
// 一次采集运行内是不可变的，replies 嵌套在 details 中
type Submission struct {
	ID          string             `json:"id"`
	Number      int                `json:"number"`
	Invitation  string             `json:"invitation"`  // v1 单个 invitation
	Invitations []string           `json:"invitations"` // v2 是数组
	CDate       int64              `json:"cdate"`       // 创建时间（毫秒时间戳）
	Content     Content            `json:"content"`
	Details     *SubmissionDetails `json:"details,omitempty"`
}

// SubmissionDetails v1 用 replies，v2 用 directReplies，两者不会同时出现
type SubmissionDetails struct {
	Replies       []Reply `json:"replies,omitempty"`
	DirectReplies []Reply `json:"directReplies,omitempty"`
}

// AllReplies 返回该投稿下的全部回复，兼容两个 API 版本的字段名
func (s *Submission) AllReplies() []Reply {
	if s.Details == nil {
		return nil
	}
	if len(s.Details.DirectReplies) > 0 {
		return s.Details.DirectReplies
	}
	return s.Details.Replies
}

// Reply 投稿下的一条回复（评审 / 决定 / 评论），由 invitation 字符串区分类型
type Reply struct {
	ID          string   `json:"id"`
	Invitation  string   `json:"invitation"`
	Invitations []string `json:"invitations"`
	Signatures  []string `json:"signatures"`
	CDate       int64    `json:"cdate"`
	Content     Content  `json:"content"`
}

// Content note 的内容字段。平台迁移前后有两种形态：
//   - v1: {"title": "..."}
//   - v2: {"title": {"value": "..."}}
// 取值统一走 Text / List，由它们负责解包 value 包装
type Content map[string]json.RawMessage

// Text 取标量字段渲染成文本，缺失或形态不符时返回空串，绝不 panic。
// 评分类字段（rating / confidence / soundness 等）在 v2 里是数值，
// 同样要原样保留，不能因为不是字符串就丢成空串
func (c Content) Text(key string) string {
	raw, ok := c[key]
	if !ok {
		return ""
	}
	// v2 的 {"value": ...} 包装，里面可能是字符串也可能是数值
	var wrapped struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Value) > 0 {
		return scalarText(wrapped.Value)
	}
	return scalarText(raw)
}

// scalarText 把字符串 / 数值 / 布尔标量渲染成文本，其他形态返回空串
func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprint(b)
	}
	return ""
}

// List 取字符串列表字段，同样兼容两种形态，缺失返回 nil
func (c Content) List(key string) []string {
	raw, ok := c[key]
	if !ok {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var wrapped struct {
		Value []string `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Value
	}
	return nil
}
