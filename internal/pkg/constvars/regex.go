package constvars

const (
	RegexAlphanumeric    = `^[a-zA-Z0-9]+$`
	RegexNumeric         = `^\d+$`
	RegexDateYYYYMMDD    = `^\d{4}-\d{2}-\d{2}$`
	RegexGLN             = `^\d{13}$`
	// RegexConsultationDuration matches the first "<n> min" / "<n> Min." token
	// in free-text record content; the first match wins.
	RegexConsultationDuration = `(?i)(\d{1,3})\s*min`
)
