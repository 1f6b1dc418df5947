package openreview

import (
	"fmt"
	"strings"

	"ReviewHarvest/internal/models"
	"ReviewHarvest/pkg/logger"
)

// 评审正文的固定拼接顺序，缺失或为空的小节直接跳过
var reviewSections = []string{
	"summary", "strengths", "weaknesses", "questions", "limitations", "review",
}

// 官方评审的 invitation 标记。各年命名不完全一致，
// 所以这里是子串匹配而不是精确比较
const reviewMarker = "Official_Review"

// ExtractPaper 把一条原始投稿映射成扁平的论文记录，一条投稿恰好产出一条。
// 所有内容字段都是宽容取值：缺失落为空串 / 空列表，绝不报错
func ExtractPaper(sub *models.Submission, year int, venue string) models.PaperRecord {
	content := sub.Content
	return models.PaperRecord{
		PaperID:        sub.ID,
		Title:          content.Text("title"),
		Abstract:       content.Text("abstract"),
		Authors:        strings.Join(content.List("authors"), ", "),
		AuthorIDs:      strings.Join(content.List("authorids"), ", "),
		Keywords:       strings.Join(content.List("keywords"), ", "),
		PrimaryArea:    content.Text("primary_area"),
		Year:           year,
		Venue:          venue,
		PDFURL:         fmt.Sprintf("https://openreview.net/pdf?id=%s", sub.ID),
		ForumURL:       fmt.Sprintf("https://openreview.net/forum?id=%s", sub.ID),
		SubmissionDate: models.FormatMillis(sub.CDate),
	}
}

// ExtractReviews 从投稿的嵌套回复里提取全部官方评审，顺序跟随回复顺序。
// 单条回复解析失败只记日志并跳过，不影响同一投稿下的其他回复
func ExtractReviews(sub *models.Submission, year int, venue string) []models.ReviewRecord {
	var reviews []models.ReviewRecord
	replies := sub.AllReplies()
	for i := range replies {
		reply := &replies[i]
		if !isOfficialReview(reply) {
			continue
		}
		record, err := extractReview(reply, sub.ID, year, venue)
		if err != nil {
			logger.Warn("[OpenReview] 提取评审失败，已跳过: paper=%s reply=%s err=%v", sub.ID, reply.ID, err)
			continue
		}
		reviews = append(reviews, record)
	}
	return reviews
}

// isOfficialReview 回复是否是一条官方评审；v1 看单个 invitation，v2 看数组
func isOfficialReview(reply *models.Reply) bool {
	if strings.Contains(reply.Invitation, reviewMarker) {
		return true
	}
	for _, inv := range reply.Invitations {
		if strings.Contains(inv, reviewMarker) {
			return true
		}
	}
	return false
}

func extractReview(reply *models.Reply, paperID string, year int, venue string) (models.ReviewRecord, error) {
	if reply.ID == "" {
		return models.ReviewRecord{}, fmt.Errorf("回复缺少 id")
	}
	content := reply.Content

	reviewer := "Anonymous"
	if len(reply.Signatures) > 0 {
		reviewer = reply.Signatures[0]
	}

	return models.ReviewRecord{
		ReviewID:       reply.ID,
		PaperID:        paperID,
		Year:           year,
		Venue:          venue,
		Reviewer:       reviewer,
		FullReviewText: joinSections(content),
		Rating:         content.Text("rating"),
		Confidence:     content.Text("confidence"),
		Summary:        content.Text("summary"),
		Strengths:      content.Text("strengths"),
		Weaknesses:     content.Text("weaknesses"),
		Questions:      content.Text("questions"),
		Limitations:    content.Text("limitations"),
		Soundness:      content.Text("soundness"),
		Presentation:   content.Text("presentation"),
		Contribution:   content.Text("contribution"),
		Recommendation: content.Text("recommendation"),
		ReviewDate:     models.FormatMillis(reply.CDate),
	}, nil
}

// joinSections 按固定小节顺序拼出完整评审文本：
// 每个非空小节渲染成 "SECTION: text"，小节之间空一行
func joinSections(content models.Content) string {
	var parts []string
	for _, section := range reviewSections {
		text := content.Text(section)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(section), text))
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// CollectAuthorIDs 从论文记录里收集去重后的作者 ID 集合。
// 展开 ", " 拼接串并去掉空项，保证每个 ID 只触发一次主页抓取
func CollectAuthorIDs(papers []models.PaperRecord) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, p := range papers {
		for _, id := range strings.Split(p.AuthorIDs, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
