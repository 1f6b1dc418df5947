package profile

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ReviewHarvest/internal/models"
)

// parseProfile 把作者主页 HTML 解析成结构化记录。
// 页面结构不归我们管：每条规则都是独立可选的，
// 找不到对应标记时落为空字段，而不是让整批抓取失败
func parseProfile(r io.Reader) (models.AuthorProfile, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.AuthorProfile{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	p := models.AuthorProfile{
		PersonalLinks: map[string]string{},
	}

	// 头部区块的前两个文本元素依次是姓名与单位
	header := doc.Find(".profile-header").Children()
	if header.Length() > 0 {
		p.Name = cleanText(header.Eq(0).Text())
	}
	if header.Length() > 1 {
		p.Affiliation = cleanText(header.Eq(1).Text())
	}

	// 首选名，缺失时退回主名
	p.PreferredName = cleanText(doc.Find("section.names .preferred-name").First().Text())
	if p.PreferredName == "" {
		p.PreferredName = p.Name
	}

	doc.Find("section.emails span").Each(func(_ int, s *goquery.Selection) {
		if email := cleanText(s.Text()); email != "" {
			p.Emails = append(p.Emails, email)
		}
	})

	// 个人链接：标签小写、空格换下划线
	doc.Find("section.links a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		label := cleanText(s.Text())
		if !ok || label == "" {
			return
		}
		key := strings.ReplaceAll(strings.ToLower(label), " ", "_")
		p.PersonalLinks[key] = href
	})

	// 职业 / 教育经历：列依次为职位、机构、时间段
	doc.Find("section.history tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		p.History = append(p.History, models.Position{
			Position:    cleanText(cells.Eq(0).Text()),
			Institution: cleanText(cells.Eq(1).Text()),
			Timeframe:   normalizeTimeframe(cells.Eq(2).Text()),
		})
	})

	// 关系行至少 4 列才算完整（类型、姓名、邮箱、时间段），不足的整行跳过
	doc.Find("section.relations tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		p.Relations = append(p.Relations, models.Relation{
			Type:      cleanText(cells.Eq(0).Text()),
			Name:      cleanText(cells.Eq(1).Text()),
			Timeframe: normalizeTimeframe(cells.Eq(3).Text()),
		})
	})

	// 研究方向行至少 2 列（方向、时间段）
	doc.Find("section.expertise tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		p.Expertise = append(p.Expertise, models.Expertise{
			Area:      cleanText(cells.Eq(0).Text()),
			Timeframe: normalizeTimeframe(cells.Eq(1).Text()),
		})
	})

	// 注册时间跟在日历图标旁边，图标不存在时保持为空
	if marker := doc.Find(".glyphicon-calendar").First(); marker.Length() > 0 {
		text := cleanText(marker.Parent().Text())
		p.JoinedDate = strings.TrimSpace(strings.TrimPrefix(text, "Joined"))
	}

	return p, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeTimeframe 时间段里的连接号（en-dash）统一成 ASCII 连字符
func normalizeTimeframe(s string) string {
	return strings.ReplaceAll(cleanText(s), "–", "-")
}
