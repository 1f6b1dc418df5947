package models

import (
	"strconv"
	"time"
)

// PaperRecord 一篇论文的扁平记录，一个 Submission 恰好产出一条。
// 列表字段用 ", " 拼成单个字符串方便表格导出；
// 作者名里若本身含逗号会与分隔符混淆，这是已接受的限制
type PaperRecord struct {
	PaperID        string
	Title          string
	Abstract       string
	Authors        string
	AuthorIDs      string
	Keywords       string
	PrimaryArea    string
	Year           int
	Venue          string
	PDFURL         string
	ForumURL       string
	SubmissionDate string
}

// PaperHeader CSV 表头，与 Row 的列顺序严格对应
func PaperHeader() []string {
	return []string{
		"paper_id", "title", "abstract", "authors", "author_ids",
		"keywords", "primary_area", "year", "venue", "pdf_url",
		"forum_url", "submission_date",
	}
}

func (p *PaperRecord) Row() []string {
	return []string{
		p.PaperID, p.Title, p.Abstract, p.Authors, p.AuthorIDs,
		p.Keywords, p.PrimaryArea, strconv.Itoa(p.Year), p.Venue,
		p.PDFURL, p.ForumURL, p.SubmissionDate,
	}
}

// ReviewRecord 一条官方评审的扁平记录，paper_id 指向同一次运行产出的 PaperRecord
type ReviewRecord struct {
	ReviewID       string
	PaperID        string
	Year           int
	Venue          string
	Reviewer       string
	FullReviewText string
	Rating         string
	Confidence     string
	Summary        string
	Strengths      string
	Weaknesses     string
	Questions      string
	Limitations    string
	Soundness      string
	Presentation   string
	Contribution   string
	Recommendation string
	ReviewDate     string
}

func ReviewHeader() []string {
	return []string{
		"review_id", "paper_id", "year", "venue", "reviewer",
		"full_review_text", "rating", "confidence", "summary",
		"strengths", "weaknesses", "questions", "limitations",
		"soundness", "presentation", "contribution", "recommendation",
		"review_date",
	}
}

func (r *ReviewRecord) Row() []string {
	return []string{
		r.ReviewID, r.PaperID, strconv.Itoa(r.Year), r.Venue, r.Reviewer,
		r.FullReviewText, r.Rating, r.Confidence, r.Summary,
		r.Strengths, r.Weaknesses, r.Questions, r.Limitations,
		r.Soundness, r.Presentation, r.Contribution, r.Recommendation,
		r.ReviewDate,
	}
}

// FormatMillis 毫秒时间戳转日期字符串，0 值返回空串
func FormatMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}
