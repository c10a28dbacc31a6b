package utils

import (
	"regexp"
	"strconv"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
)

var durationPattern = regexp.MustCompile(constvars.RegexConsultationDuration)

// ParseConsultationDuration extracts the consultation duration in minutes
// from free-text record content. The first match wins; ok is false when the
// content carries no duration token.
func ParseConsultationDuration(content string) (int, bool) {
	match := durationPattern.FindStringSubmatch(content)
	if match == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// ParseDate parses the YYYY-MM-DD wire form used by caller overrides.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
