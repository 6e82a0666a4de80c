package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/logger"
)

// CurriculumMetadata summarizes a curriculum page without pulling the full
// lesson list.
type CurriculumMetadata struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	CurriculumType string   `json:"curriculum_type"`
	GradeLevels    []string `json:"grade_levels"`
	SubjectAreas   []string `json:"subject_areas"`
	TotalLessons   int      `json:"total_lessons"`
	LastUpdated    string   `json:"last_updated,omitempty"`
	URL            string   `json:"url"`
}

type Scraper interface {
	ScrapeLessons(ctx context.Context, url string, classID int) ([]calendar.Lesson, error)
	ScrapeCalendar(ctx context.Context, url string, schoolID int) ([]calendar.RawRow, error)
	ScrapeCurriculumMetadata(ctx context.Context, url string) (*CurriculumMetadata, error)
}

type scraper struct {
	log    *logger.Logger
	client *http.Client
	cfg    *ScrapeConfig
}

func NewScraper(log *logger.Logger, cfg *ScrapeConfig) Scraper {
	if cfg == nil {
		cfg = DefaultScrapeConfig()
	}
	return &scraper{
		log:    log.With("service", "Scraper"),
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
	}
}

func (s *scraper) fetch(ctx context.Context, url string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, 16<<20)
	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// ScrapeLessons pulls the lesson list from a curriculum page. Selector
// patterns are tried in order and the first one that matches anything wins,
// so a page is read with one consistent structure.
func (s *scraper) ScrapeLessons(ctx context.Context, url string, classID int) ([]calendar.Lesson, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var nodes []*html.Node
	for _, sel := range s.cfg.LessonSelectors {
		nodes = collectMatches(doc, sel)
		if len(nodes) > 0 {
			break
		}
	}
	if len(nodes) == 0 {
		s.log.Warn("no lesson elements found", "url", url)
		return nil, nil
	}

	lessons := make([]calendar.Lesson, 0, len(nodes))
	for i, n := range nodes {
		content := nodeText(n)
		title := headingText(n)
		if title == "" {
			title = firstLine(content)
		}
		if title == "" {
			title = fmt.Sprintf("Lesson %d", i+1)
		}

		dur := ParseDuration(content)
		lessons = append(lessons, calendar.Lesson{
			ClassID:        classID,
			LessonNumber:   i + 1,
			Title:          title,
			DurationHours:  dur.Hours,
			DurationType:   dur.Type,
			SequenceNumber: dur.SequenceNumber,
			TotalSequence:  dur.TotalSequence,
			Status:         "planned",
			Notes:          content,
			SourceFile:     url,
			FileType:       "web",
			Content:        content,
		})
	}
	s.log.Info("scraped lessons", "url", url, "count", len(lessons))
	return lessons, nil
}

// ScrapeCalendar pulls dated events from a district calendar page into raw
// rows ready for normalization. Elements without a recognizable date are
// skipped.
func (s *scraper) ScrapeCalendar(ctx context.Context, url string, schoolID int) ([]calendar.RawRow, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var nodes []*html.Node
	for _, sel := range s.cfg.EventSelectors {
		nodes = collectMatches(doc, sel)
		if len(nodes) > 0 {
			break
		}
	}
	if len(nodes) == 0 {
		s.log.Warn("no calendar elements found", "url", url)
		return nil, nil
	}

	rows := make([]calendar.RawRow, 0, len(nodes))
	for _, n := range nodes {
		dateStr := eventDate(n)
		if dateStr == "" {
			continue
		}
		title := nodeText(n)
		className := attrValue(n, "class")
		rows = append(rows, calendar.RawRow{
			"date":          dateStr,
			"title":         title,
			"is_school_day": s.cfg.IsSchoolDay(className, title),
			"day_type":      s.cfg.DayType(className, title),
			"notes":         title,
			"school_id":     schoolID,
		})
	}
	s.log.Info("scraped calendar events", "url", url, "count", len(rows))
	return rows, nil
}

var gradePattern = regexp.MustCompile(`(?i)grade\s+(\d+)|(\d+)th\s+grade`)

var subjectKeywords = []string{
	"computer science", "programming", "coding", "cybersecurity",
	"engineering", "mathematics", "science", "technology",
}

func (s *scraper) ScrapeCurriculumMetadata(ctx context.Context, url string) (*CurriculumMetadata, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	md := &CurriculumMetadata{URL: url}
	md.Title = pageTitle(doc)
	md.Description = metaContent(doc, "description")
	md.CurriculumType = curriculumType(md.Title)

	bodyText := strings.ToLower(nodeText(doc))
	seen := map[string]bool{}
	for _, m := range gradePattern.FindAllStringSubmatch(bodyText, -1) {
		g := m[1]
		if g == "" {
			g = m[2]
		}
		if g != "" && !seen[g] {
			seen[g] = true
			md.GradeLevels = append(md.GradeLevels, g)
		}
	}
	for _, kw := range subjectKeywords {
		if strings.Contains(bodyText, kw) {
			md.SubjectAreas = append(md.SubjectAreas, kw)
		}
	}
	for _, sel := range []string{".lesson", ".assignment", ".activity", ".module"} {
		md.TotalLessons += len(collectMatches(doc, sel))
	}
	for _, sel := range []string{".last-updated", ".updated", ".modified", "[data-updated]", ".date-modified"} {
		if nodes := collectMatches(doc, sel); len(nodes) > 0 {
			md.LastUpdated = strings.TrimSpace(nodeText(nodes[0]))
			break
		}
	}
	return md, nil
}

func curriculumType(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "pltw"):
		return "PLTW"
	case strings.Contains(t, "ap"):
		return "AP"
	case strings.Contains(t, "ib"):
		return "IB"
	default:
		return "Custom"
	}
}

// ---------- node helpers ----------

// collectMatches supports the two selector shapes the tables use: ".name"
// (class token) and "[attr]" (attribute presence).
func collectMatches(root *html.Node, sel string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && matchesSelector(n, sel) {
			out = append(out, n)
			// matched containers are not descended into; nested hits
			// would double-count lessons
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func matchesSelector(n *html.Node, sel string) bool {
	if strings.HasPrefix(sel, "[") && strings.HasSuffix(sel, "]") {
		attr := sel[1 : len(sel)-1]
		for _, a := range n.Attr {
			if a.Key == attr {
				return true
			}
		}
		return false
	}
	if strings.HasPrefix(sel, ".") {
		want := sel[1:]
		for _, token := range strings.Fields(attrValue(n, "class")) {
			if token == want {
				return true
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			b.WriteString(" ")
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

var headingSelectors = []string{"h1", "h2", "h3", "h4"}

var headingClasses = map[string]bool{"title": true, "name": true, "lesson-title": true}

func headingText(n *html.Node) string {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, tag := range headingSelectors {
				if n.Data == tag {
					found = n
					return
				}
			}
			for _, token := range strings.Fields(attrValue(n, "class")) {
				if headingClasses[token] {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	if found == nil {
		return ""
	}
	return strings.TrimSpace(nodeText(found))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// eventDate resolves an event's date: data-date on the element, then
// data-date on any descendant, then date-looking text.
func eventDate(n *html.Node) string {
	if v := attrValue(n, "data-date"); v != "" {
		return v
	}
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode {
			if v := attrValue(n, "data-date"); v != "" {
				found = v
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	if found != "" {
		return found
	}
	return ExtractDateString(nodeText(n))
}

func pageTitle(doc *html.Node) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			found = strings.TrimSpace(nodeText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func metaContent(doc *html.Node, name string) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" && attrValue(n, "name") == name {
			found = attrValue(n, "content")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}
