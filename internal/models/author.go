package models

// AuthorProfile 作者主页抓取后的结构化结果。
// 每个去重后的 author_id 一次运行内只抓取一次；
// 抓取或解析失败时产出降级记录：只保留 AuthorID 和 FetchError
type AuthorProfile struct {
	AuthorID      string
	Name          string
	PreferredName string
	Affiliation   string
	Emails        []string
	JoinedDate    string
	PersonalLinks map[string]string
	History       []Position
	Relations     []Relation
	Expertise     []Expertise
	FetchError    string
}

// Position 职业 / 教育经历中的一段
type Position struct {
	Position    string
	Institution string
	Timeframe   string
}

// Relation 导师 / 合作等关系记录
type Relation struct {
	Type      string
	Name      string
	Timeframe string
}

// Expertise 研究方向
type Expertise struct {
	Area      string
	Timeframe string
}
