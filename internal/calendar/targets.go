package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Target is a learning target recovered from lesson content.
type Target struct {
	TargetOrder   int     `json:"target_order"`
	Code          string  `json:"code"`
	ShortName     string  `json:"short_name"`
	Description   string  `json:"description"`
	Domain        string  `json:"domain"`
	BloomLevel    string  `json:"bloom_level"`
	LessonNumber  int     `json:"lesson_number"`
	LessonTitle   string  `json:"lesson_title"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Mapping ties a scheduled lesson segment back to one of its targets.
type Mapping struct {
	LessonNumber  int        `json:"lesson_number"`
	TargetOrder   int        `json:"target_order"`
	Code          string     `json:"code"`
	Weight        float64    `json:"weight"`
	Required      bool       `json:"required"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

var objectivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)objectives?[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?im)learning\s+targets?[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?im)students?\s+will[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?im)standards?[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?im)goals?[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?im)outcomes?[:\s]+([^\n]+)`),
}

// ExtractObjectives pulls objective sentences out of free-text lesson
// content, deduplicated in discovery order.
func ExtractObjectives(content string) []string {
	var objectives []string
	seen := make(map[string]bool)
	for _, pattern := range objectivePatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			obj := strings.TrimSpace(match[1])
			if obj != "" && !seen[obj] {
				seen[obj] = true
				objectives = append(objectives, obj)
			}
		}
	}
	return objectives
}

// ExtractTargets produces learning targets for a batch of lessons. A lesson
// without any recognizable objective yields a single synthetic target named
// after the lesson. The order counter runs across the whole batch, so the
// numeric suffix of the code does not restart at 1 per lesson; codes stay
// unique batch-wide.
func ExtractTargets(lessons []Lesson) []Target {
	var targets []Target
	order := 1
	for _, lesson := range lessons {
		objectives := ExtractObjectives(lesson.Content)
		if len(objectives) == 0 {
			objectives = []string{fmt.Sprintf("Complete %s", lesson.Title)}
		}
		for _, obj := range objectives {
			targets = append(targets, Target{
				TargetOrder:   order,
				Code:          fmt.Sprintf("LT-%03d-%02d", lesson.LessonNumber, order),
				ShortName:     truncate(obj, 200),
				Description:   obj,
				Domain:        ClassifyDomain(lesson.Title, lesson.Content),
				BloomLevel:    ClassifyBloomLevel(obj),
				LessonNumber:  lesson.LessonNumber,
				LessonTitle:   lesson.Title,
				EstimatedTime: 1.0,
			})
			order++
		}
	}
	return targets
}

// BuildLessonTargetMappings pairs every scheduled segment with each target
// of its lesson, carrying the planned date over as the target's scheduled
// date.
func BuildLessonTargetMappings(scheduled []Scheduled, targets []Target) []Mapping {
	if len(scheduled) == 0 || len(targets) == 0 {
		return nil
	}
	byLesson := make(map[int][]Target)
	for _, target := range targets {
		byLesson[target.LessonNumber] = append(byLesson[target.LessonNumber], target)
	}
	var mappings []Mapping
	for _, seg := range scheduled {
		for _, target := range byLesson[seg.LessonNumber] {
			date := seg.DatePlanned
			mappings = append(mappings, Mapping{
				LessonNumber:  seg.LessonNumber,
				TargetOrder:   target.TargetOrder,
				Code:          target.Code,
				Weight:        1.0,
				Required:      true,
				ScheduledDate: &date,
			})
		}
	}
	return mappings
}

type keywordCategory struct {
	label    string
	keywords []string
}

// Ordered by priority; the first category with a keyword hit wins.
var domainCategories = []keywordCategory{
	{"Cybersecurity", []string{"cyber", "security", "hacking", "encryption"}},
	{"Programming", []string{"program", "code", "algorithm", "function", "variable"}},
	{"Data Science", []string{"data", "database", "sql", "analysis"}},
	{"Web Development", []string{"web", "html", "css", "javascript"}},
	{"Hardware", []string{"robot", "hardware", "circuit", "sensor"}},
	{"Networking", []string{"network", "internet", "protocol", "tcp"}},
}

var bloomLevels = []keywordCategory{
	{"Create", []string{"create", "design", "develop", "construct", "build", "make"}},
	{"Evaluate", []string{"evaluate", "judge", "critique", "assess", "rate", "compare"}},
	{"Analyze", []string{"analyze", "compare", "contrast", "examine", "investigate", "explore"}},
	{"Apply", []string{"apply", "use", "implement", "demonstrate", "execute", "practice"}},
	{"Understand", []string{"understand", "explain", "describe", "summarize", "interpret", "classify"}},
}

// ClassifyDomain assigns a subject domain from lesson title and content by
// keyword lookup, defaulting to Computer Science.
func ClassifyDomain(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, category := range domainCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(text, keyword) {
				return category.label
			}
		}
	}
	return "Computer Science"
}

// ClassifyBloomLevel assigns the highest Bloom's-taxonomy level whose verbs
// appear in the objective, defaulting to Remember.
func ClassifyBloomLevel(objective string) string {
	text := strings.ToLower(objective)
	for _, level := range bloomLevels {
		for _, keyword := range level.keywords {
			if strings.Contains(text, keyword) {
				return level.label
			}
		}
	}
	return "Remember"
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
