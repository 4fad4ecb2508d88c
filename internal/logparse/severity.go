package logparse

import (
	"regexp"
	"strings"
)

// severityRegex matches common severity levels in log text.
var severityRegex = regexp.MustCompile(`(?i)\b(TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL|CRITICAL|PANIC)\b`)

// NormalizeSeverity maps level spellings onto TRACE/DEBUG/INFO/WARN/ERROR/FATAL.
// Anything unrecognised is UNKNOWN so the dashboard can render it neutrally.
func NormalizeSeverity(severity string) string {
	normalized := strings.ToUpper(strings.TrimSpace(severity))

	switch normalized {
	case "":
		return "UNKNOWN"
	case "TRACE", "TRC":
		return "TRACE"
	case "DEBUG", "DBG":
		return "DEBUG"
	case "INFO", "INFORMATION", "INF", "NOTICE":
		return "INFO"
	case "WARN", "WARNING", "WRN":
		return "WARN"
	case "ERROR", "ERR":
		return "ERROR"
	case "FATAL", "CRITICAL", "CRIT", "PANIC", "EMERG", "ALERT":
		return "FATAL"
	}

	if len(normalized) >= 4 {
		switch normalized[:4] {
		case "TRAC":
			return "TRACE"
		case "DEBU":
			return "DEBUG"
		case "INFO":
			return "INFO"
		case "WARN":
			return "WARN"
		case "ERRO":
			return "ERROR"
		case "FATA", "CRIT":
			return "FATAL"
		}
	}
	return "UNKNOWN"
}

// ExtractSeverityFromText finds the first level keyword in free text.
func ExtractSeverityFromText(message string) string {
	matches := severityRegex.FindStringSubmatch(message)
	if len(matches) > 1 {
		return NormalizeSeverity(matches[1])
	}
	return "UNKNOWN"
}
