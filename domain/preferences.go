package domain

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Preferences holds the per-user settings surface. Keys form a closed set;
// unknown keys are rejected at update time.
type Preferences struct {
	UserID                uuid.UUID `json:"-" db:"user_id"`
	Theme                 string    `json:"theme" db:"theme"`
	ShowArticleThumbnails bool      `json:"show_article_thumbnails" db:"show_article_thumbnails"`
	AppLayout             string    `json:"app_layout" db:"app_layout"`
	ArticleLayout         string    `json:"article_layout" db:"article_layout"`
	FontSpacing           string    `json:"font_spacing" db:"font_spacing"`
	FontSize              string    `json:"font_size" db:"font_size"`
	FeedSortOrder         string    `json:"feed_sort_order" db:"feed_sort_order"`
	ShowFeedFavicons      bool      `json:"show_feed_favicons" db:"show_feed_favicons"`
	DateFormat            string    `json:"date_format" db:"date_format"`
	TimeFormat            string    `json:"time_format" db:"time_format"`
	Language              string    `json:"language" db:"language"`
	AutoMarkAsRead        string    `json:"auto_mark_as_read" db:"auto_mark_as_read"`
	EstimatedReadingTime  bool      `json:"estimated_reading_time" db:"estimated_reading_time"`
	ShowSummaries         bool      `json:"show_summaries" db:"show_summaries"`
}

// Auto-mark-read choices map to sweep cutoffs in days; disabled is 0.
const (
	AutoMarkReadDisabled = "disabled"
	AutoMarkRead7Days    = "7_days"
	AutoMarkRead14Days   = "14_days"
	AutoMarkRead30Days   = "30_days"
)

type preferenceKind int

const (
	prefString preferenceKind = iota
	prefBool
)

type preferenceSpec struct {
	kind    preferenceKind
	choices []string
}

// languagePattern accepts ISO 639-1 shapes (`en`, `pt-BR`) without pinning
// the full code list.
var languagePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

var preferenceSpecs = map[string]preferenceSpec{
	"theme":                   {kind: prefString, choices: []string{"light", "dark", "system"}},
	"show_article_thumbnails": {kind: prefBool},
	"app_layout":              {kind: prefString, choices: []string{"split", "focus"}},
	"article_layout":          {kind: prefString, choices: []string{"grid", "list", "magazine"}},
	"font_spacing":            {kind: prefString, choices: []string{"compact", "normal", "comfortable"}},
	"font_size":               {kind: prefString, choices: []string{"xs", "s", "m", "l", "xl"}},
	"feed_sort_order":         {kind: prefString, choices: []string{"alphabetical", "recent_first"}},
	"show_feed_favicons":      {kind: prefBool},
	"date_format":             {kind: prefString, choices: []string{"relative", "absolute"}},
	"time_format":             {kind: prefString, choices: []string{"12h", "24h"}},
	"language":                {kind: prefString},
	"auto_mark_as_read":       {kind: prefString, choices: []string{AutoMarkReadDisabled, AutoMarkRead7Days, AutoMarkRead14Days, AutoMarkRead30Days}},
	"estimated_reading_time":  {kind: prefBool},
	"show_summaries":          {kind: prefBool},
}

// DefaultPreferences returns the default-valued settings for a user.
func DefaultPreferences(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:                userID,
		Theme:                 "system",
		ShowArticleThumbnails: true,
		AppLayout:             "split",
		ArticleLayout:         "grid",
		FontSpacing:           "normal",
		FontSize:              "m",
		FeedSortOrder:         "recent_first",
		ShowFeedFavicons:      true,
		DateFormat:            "relative",
		TimeFormat:            "12h",
		Language:              "en",
		AutoMarkAsRead:        AutoMarkReadDisabled,
		EstimatedReadingTime:  true,
		ShowSummaries:         true,
	}
}

// Apply validates and sets a single preference. Unknown keys and values
// outside the declared choice set are rejected.
func (p *Preferences) Apply(key string, value interface{}) error {
	spec, ok := preferenceSpecs[key]
	if !ok {
		return fmt.Errorf("unknown preference key %q", key)
	}

	switch spec.kind {
	case prefBool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("preference %q requires a boolean, got %T", key, value)
		}
		p.setBool(key, boolVal)

	case prefString:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("preference %q requires a string, got %T", key, value)
		}
		if key == "language" {
			if !languagePattern.MatchString(strVal) {
				return fmt.Errorf("preference %q must be an ISO 639-1 code, got %q", key, strVal)
			}
		} else if !contains(spec.choices, strVal) {
			return fmt.Errorf("preference %q must be one of %v, got %q", key, spec.choices, strVal)
		}
		p.setString(key, strVal)
	}

	return nil
}

func (p *Preferences) setString(key, value string) {
	switch key {
	case "theme":
		p.Theme = value
	case "app_layout":
		p.AppLayout = value
	case "article_layout":
		p.ArticleLayout = value
	case "font_spacing":
		p.FontSpacing = value
	case "font_size":
		p.FontSize = value
	case "feed_sort_order":
		p.FeedSortOrder = value
	case "date_format":
		p.DateFormat = value
	case "time_format":
		p.TimeFormat = value
	case "language":
		p.Language = value
	case "auto_mark_as_read":
		p.AutoMarkAsRead = value
	}
}

func (p *Preferences) setBool(key string, value bool) {
	switch key {
	case "show_article_thumbnails":
		p.ShowArticleThumbnails = value
	case "show_feed_favicons":
		p.ShowFeedFavicons = value
	case "estimated_reading_time":
		p.EstimatedReadingTime = value
	case "show_summaries":
		p.ShowSummaries = value
	}
}

// AutoMarkReadCutoffDays converts the auto_mark_as_read choice to the sweep
// cutoff in days; disabled yields 0.
func (p *Preferences) AutoMarkReadCutoffDays() int {
	switch p.AutoMarkAsRead {
	case AutoMarkRead7Days:
		return 7
	case AutoMarkRead14Days:
		return 14
	case AutoMarkRead30Days:
		return 30
	default:
		return 0
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
