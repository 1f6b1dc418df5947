package profile

import (
	"fmt"
	"sort"
	"strings"

	"ReviewHarvest/internal/export"
	"ReviewHarvest/internal/models"
)

// FlattenPolicy 作者导出时的展平策略。
// 一次导出只能用一种策略，不允许两种行形混在同一张表里
type FlattenPolicy int

const (
	// PolicySummary 每个作者一行，嵌套列表拼成 "; " 分隔的摘要串
	PolicySummary FlattenPolicy = iota
	// PolicyExpanded 每段职业经历一行，标量字段跨行复制；
	// 经历为空时保底输出一行，职位 / 机构 / 时间段留空
	PolicyExpanded
)

// Flatten 按指定策略把整批作者档案展成表格
func Flatten(profiles []models.AuthorProfile, policy FlattenPolicy) export.Table {
	switch policy {
	case PolicyExpanded:
		return flattenExpanded(profiles)
	default:
		return flattenSummary(profiles)
	}
}

func flattenSummary(profiles []models.AuthorProfile) export.Table {
	t := export.Table{
		Name: "authors",
		Header: []string{
			"author_id", "name", "preferred_name", "affiliation", "emails",
			"joined_date", "personal_links", "positions", "institutions",
			"timeframes", "advisors", "expertise", "fetch_error",
		},
	}

	for i := range profiles {
		p := &profiles[i]
		var positions, institutions, timeframes []string
		for _, h := range p.History {
			positions = append(positions, h.Position)
			institutions = append(institutions, h.Institution)
			timeframes = append(timeframes, h.Timeframe)
		}
		t.Rows = append(t.Rows, []string{
			p.AuthorID, p.Name, p.PreferredName, p.Affiliation,
			strings.Join(p.Emails, "; "),
			p.JoinedDate,
			joinLinks(p.PersonalLinks),
			strings.Join(positions, "; "),
			strings.Join(institutions, "; "),
			strings.Join(timeframes, "; "),
			joinRelations(p.Relations),
			joinExpertise(p.Expertise),
			p.FetchError,
		})
	}
	return t
}

func flattenExpanded(profiles []models.AuthorProfile) export.Table {
	t := export.Table{
		Name: "authors",
		Header: []string{
			"author_id", "name", "preferred_name", "affiliation", "emails",
			"joined_date", "personal_links", "position", "institution",
			"timeframe", "advisors", "expertise", "fetch_error",
		},
	}

	for i := range profiles {
		p := &profiles[i]
		history := p.History
		if len(history) == 0 {
			history = []models.Position{{}} // 保底行
		}
		for _, h := range history {
			t.Rows = append(t.Rows, []string{
				p.AuthorID, p.Name, p.PreferredName, p.Affiliation,
				strings.Join(p.Emails, "; "),
				p.JoinedDate,
				joinLinks(p.PersonalLinks),
				h.Position, h.Institution, h.Timeframe,
				joinRelations(p.Relations),
				joinExpertise(p.Expertise),
				p.FetchError,
			})
		}
	}
	return t
}

func joinLinks(links map[string]string) string {
	if len(links) == 0 {
		return ""
	}
	// map 遍历无序，导出前排个序保证重复运行输出逐字节一致
	keys := make([]string, 0, len(links))
	for k := range links {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		// 没抓到 URL 的条目不进导出串
		if links[k] == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, links[k]))
	}
	return strings.Join(parts, ", ")
}

func joinRelations(relations []models.Relation) string {
	parts := make([]string, 0, len(relations))
	for _, r := range relations {
		parts = append(parts, fmt.Sprintf("%s: %s (%s)", r.Type, r.Name, r.Timeframe))
	}
	return strings.Join(parts, "; ")
}

func joinExpertise(expertise []models.Expertise) string {
	parts := make([]string, 0, len(expertise))
	for _, e := range expertise {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Area, e.Timeframe))
	}
	return strings.Join(parts, "; ")
}
