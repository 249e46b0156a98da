package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the display configuration injected into formatting. The
// engine packages never read it; number formatting and fiscal calendars
// are presentation concerns only.
type Settings struct {
	NumberLocale         string `yaml:"number_locale"`
	FiscalYearStartMonth int    `yaml:"fiscal_year_start_month"`
	ScoringScale         int    `yaml:"scoring_scale"`
}

// DefaultSettings are applied when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		NumberLocale:         "en",
		FiscalYearStartMonth: 1,
		ScoringScale:         1,
	}
}

// LoadSettings reads settings from a YAML config file, filling defaults
// for absent fields. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse config: %w", err)
	}
	if settings.NumberLocale == "" {
		settings.NumberLocale = "en"
	}
	if settings.FiscalYearStartMonth < 1 || settings.FiscalYearStartMonth > 12 {
		return settings, fmt.Errorf("fiscal_year_start_month %d out of range 1-12", settings.FiscalYearStartMonth)
	}
	if settings.ScoringScale <= 0 {
		settings.ScoringScale = 1
	}
	return settings, nil
}

// FormatPercent renders an integer percentage for the configured locale.
func (s Settings) FormatPercent(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}

// FormatScore renders a 0.0-1.0 score on the configured scoring scale,
// using the locale's decimal separator.
func (s Settings) FormatScore(score float64) string {
	scaled := score * float64(s.ScoringScale)
	text := fmt.Sprintf("%.2f", scaled)
	if usesDecimalComma(s.NumberLocale) {
		text = strings.Replace(text, ".", ",", 1)
	}
	return text
}

// FiscalQuarter returns the fiscal quarter label (Q1-Q4) for t given the
// configured fiscal year start month.
func (s Settings) FiscalQuarter(t time.Time) string {
	start := s.FiscalYearStartMonth
	if start < 1 || start > 12 {
		start = 1
	}
	offset := (int(t.Month()) - start + 12) % 12
	return fmt.Sprintf("Q%d", offset/3+1)
}

func usesDecimalComma(locale string) bool {
	switch strings.ToLower(strings.SplitN(locale, "-", 2)[0]) {
	case "de", "fr", "es", "it", "pt", "nl", "ru", "pl", "tr", "id":
		return true
	default:
		return false
	}
}
