// Package ingestion turns external curriculum and calendar sources (web
// pages, uploaded files, OCR output) into the row and lesson shapes the
// scheduling engine consumes.
package ingestion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScrapeConfig holds the selector and keyword tables the scraper and text
// classifiers work from. Every field falls back to the built-in defaults, so
// a config file only needs to override what differs for a given site.
type ScrapeConfig struct {
	LessonSelectors      []string `yaml:"lesson_selectors"`
	EventSelectors       []string `yaml:"event_selectors"`
	NoSchoolKeywords     []string `yaml:"no_school_keywords"`
	EarlyReleaseKeywords []string `yaml:"early_release_keywords"`
	HolidayKeywords      []string `yaml:"holiday_keywords"`
	UserAgent            string   `yaml:"user_agent"`
}

func DefaultScrapeConfig() *ScrapeConfig {
	return &ScrapeConfig{
		LessonSelectors: []string{
			".lesson", ".assignment", ".activity", ".module",
			".chapter", ".unit", ".topic", "[data-lesson]",
			".course-item", ".curriculum-item", ".lesson-item",
		},
		EventSelectors: []string{
			".calendar-event", ".school-day", ".event",
			".calendar-day", ".day-event", "[data-date]",
			".calendar-item", ".event-item", ".school-event",
		},
		NoSchoolKeywords: []string{
			"no school", "holiday", "break", "vacation",
			"closed", "in-service", "teacher work day",
			"professional development", "pir", "snow day",
			"end of semester",
		},
		EarlyReleaseKeywords: []string{"early"},
		HolidayKeywords:      []string{"holiday"},
		UserAgent:            "edtrack-calendar/1.0",
	}
}

// LoadScrapeConfig reads a YAML override file and merges it over the
// defaults. An empty path returns the defaults untouched.
func LoadScrapeConfig(path string) (*ScrapeConfig, error) {
	cfg := DefaultScrapeConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scrape config: %w", err)
	}
	if err := mergeScrapeConfig(cfg, raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseScrapeConfig merges inline YAML (CurriculumSource.ScrapingConfig)
// over the defaults.
func ParseScrapeConfig(raw []byte) (*ScrapeConfig, error) {
	cfg := DefaultScrapeConfig()
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := mergeScrapeConfig(cfg, raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeScrapeConfig(cfg *ScrapeConfig, raw []byte) error {
	var override ScrapeConfig
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return fmt.Errorf("parse scrape config: %w", err)
	}
	if len(override.LessonSelectors) > 0 {
		cfg.LessonSelectors = override.LessonSelectors
	}
	if len(override.EventSelectors) > 0 {
		cfg.EventSelectors = override.EventSelectors
	}
	if len(override.NoSchoolKeywords) > 0 {
		cfg.NoSchoolKeywords = override.NoSchoolKeywords
	}
	if len(override.EarlyReleaseKeywords) > 0 {
		cfg.EarlyReleaseKeywords = override.EarlyReleaseKeywords
	}
	if len(override.HolidayKeywords) > 0 {
		cfg.HolidayKeywords = override.HolidayKeywords
	}
	if strings.TrimSpace(override.UserAgent) != "" {
		cfg.UserAgent = override.UserAgent
	}
	return nil
}

// IsSchoolDay decides from element class names and event text whether a
// calendar entry still holds instruction.
func (cfg *ScrapeConfig) IsSchoolDay(className, title string) bool {
	cn := strings.ToLower(className)
	if strings.Contains(cn, "no-school") || strings.Contains(cn, "holiday") || strings.Contains(cn, "break") {
		return false
	}
	tl := strings.ToLower(title)
	for _, kw := range cfg.NoSchoolKeywords {
		if strings.Contains(tl, kw) {
			return false
		}
	}
	return true
}

// DayType classifies a calendar entry. Early-release wins over holiday,
// holiday over generic no-school, anything else is a regular day.
func (cfg *ScrapeConfig) DayType(className, title string) string {
	cn := strings.ToLower(className)
	tl := strings.ToLower(title)
	for _, kw := range cfg.EarlyReleaseKeywords {
		if strings.Contains(tl, kw) || strings.Contains(cn, kw) {
			return "early_release"
		}
	}
	for _, kw := range cfg.HolidayKeywords {
		if strings.Contains(tl, kw) || strings.Contains(cn, kw) {
			return "holiday"
		}
	}
	if !cfg.IsSchoolDay(className, title) {
		return "no_school"
	}
	return "regular"
}
