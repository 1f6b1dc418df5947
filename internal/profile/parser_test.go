package profile

import (
	"strings"
	"testing"
)

const sampleProfileHTML = `
<html><body>
  <div class="profile-header">
    <h1>Ada Lovelace</h1>
    <h3>Analytical Engines Inc</h3>
  </div>
  <section class="names">
    <span class="preferred-name">Ada L</span>
  </section>
  <section class="emails">
    <span>ada@example.com</span>
    <span>lovelace@example.org</span>
  </section>
  <section class="links">
    <a href="https://ada.example.com">Homepage</a>
    <a href="https://scholar.example.com/ada">Google Scholar</a>
  </section>
  <section class="history">
    <table>
      <tr><td>Professor</td><td>MIT</td><td>2015&#8211;2018</td></tr>
      <tr><td>PhD Student</td><td>Cambridge</td><td>2010&#8211;2015</td></tr>
    </table>
  </section>
  <section class="relations">
    <table>
      <tr><td>PhD Advisor</td><td>Charles Babbage</td><td>babbage@example.com</td><td>2010&#8211;2015</td></tr>
      <tr><td>Coworker</td><td>Incomplete Row</td></tr>
    </table>
  </section>
  <section class="expertise">
    <table>
      <tr><td>symbolic computation</td><td>2012&#8211;Present</td></tr>
      <tr><td>only-one-column</td></tr>
    </table>
  </section>
  <div><span class="glyphicon-calendar"></span> Joined March 2019</div>
</body></html>`

func TestParseProfile(t *testing.T) {
	p, err := parseProfile(strings.NewReader(sampleProfileHTML))
	if err != nil {
		t.Fatalf("parseProfile() error: %v", err)
	}

	if p.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Affiliation != "Analytical Engines Inc" {
		t.Errorf("Affiliation = %q", p.Affiliation)
	}
	if p.PreferredName != "Ada L" {
		t.Errorf("PreferredName = %q", p.PreferredName)
	}
	if len(p.Emails) != 2 || p.Emails[0] != "ada@example.com" {
		t.Errorf("Emails = %v", p.Emails)
	}
	if p.JoinedDate != "March 2019" {
		t.Errorf("JoinedDate = %q", p.JoinedDate)
	}
}

func TestParseProfileLinks(t *testing.T) {
	p, err := parseProfile(strings.NewReader(sampleProfileHTML))
	if err != nil {
		t.Fatal(err)
	}

	// 标签小写、空格换下划线
	if got := p.PersonalLinks["homepage"]; got != "https://ada.example.com" {
		t.Errorf("homepage = %q", got)
	}
	if got := p.PersonalLinks["google_scholar"]; got != "https://scholar.example.com/ada" {
		t.Errorf("google_scholar = %q", got)
	}
}

func TestParseProfileHistory(t *testing.T) {
	p, err := parseProfile(strings.NewReader(sampleProfileHTML))
	if err != nil {
		t.Fatal(err)
	}

	if len(p.History) != 2 {
		t.Fatalf("got %d history entries, want 2", len(p.History))
	}
	first := p.History[0]
	if first.Position != "Professor" || first.Institution != "MIT" {
		t.Errorf("history[0] = %+v", first)
	}
	// en-dash 必须归一成 ASCII 连字符
	if first.Timeframe != "2015-2018" {
		t.Errorf("Timeframe = %q, want 2015-2018", first.Timeframe)
	}
}

func TestParseProfileRelationRowsNeedFourColumns(t *testing.T) {
	p, err := parseProfile(strings.NewReader(sampleProfileHTML))
	if err != nil {
		t.Fatal(err)
	}

	// 不足 4 列的关系行整行跳过
	if len(p.Relations) != 1 {
		t.Fatalf("got %d relations, want 1", len(p.Relations))
	}
	r := p.Relations[0]
	if r.Type != "PhD Advisor" || r.Name != "Charles Babbage" || r.Timeframe != "2010-2015" {
		t.Errorf("relation = %+v", r)
	}
}

func TestParseProfileExpertiseRowsNeedTwoColumns(t *testing.T) {
	p, err := parseProfile(strings.NewReader(sampleProfileHTML))
	if err != nil {
		t.Fatal(err)
	}

	if len(p.Expertise) != 1 {
		t.Fatalf("got %d expertise entries, want 1", len(p.Expertise))
	}
	if p.Expertise[0].Area != "symbolic computation" {
		t.Errorf("expertise = %+v", p.Expertise[0])
	}
}

func TestParseProfileMissingSections(t *testing.T) {
	// 页面结构变了（所有 class 名都对不上）只会得到空字段，不报错
	p, err := parseProfile(strings.NewReader(`<html><body><div>nothing here</div></body></html>`))
	if err != nil {
		t.Fatalf("parseProfile() error: %v", err)
	}
	if p.Name != "" || p.Affiliation != "" || p.JoinedDate != "" {
		t.Errorf("expected empty scalar fields, got %+v", p)
	}
	if len(p.Emails) != 0 || len(p.History) != 0 || len(p.Relations) != 0 {
		t.Errorf("expected empty lists, got %+v", p)
	}
}

func TestParseProfilePreferredNameFallback(t *testing.T) {
	html := `<div class="profile-header"><h1>Grace Hopper</h1><h3>Navy</h3></div>`
	p, err := parseProfile(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	if p.PreferredName != "Grace Hopper" {
		t.Errorf("PreferredName = %q, want fallback to Name", p.PreferredName)
	}
}
