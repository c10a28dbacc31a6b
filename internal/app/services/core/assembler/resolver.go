package assembler

import "time"

// The layered fallback (caller override -> billing record -> legacy record
// -> documented default) is expressed as one ordered source list per field,
// so each field's resolution order stays independently testable.

func resolveString(sources ...string) string {
	for _, source := range sources {
		if source != "" {
			return source
		}
	}
	return ""
}

func resolveTime(defaultValue time.Time, sources ...*time.Time) time.Time {
	for _, source := range sources {
		if source != nil && !source.IsZero() {
			return *source
		}
	}
	return defaultValue
}

func resolveInt(defaultValue int, sources ...*int) int {
	for _, source := range sources {
		if source != nil {
			return *source
		}
	}
	return defaultValue
}

func resolveFloat(sources ...float64) float64 {
	for _, source := range sources {
		if source != 0 {
			return source
		}
	}
	return 0
}
