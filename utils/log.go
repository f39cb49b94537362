package utils

import (
	"strings"
	"unicode"
)

func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == 10 || r == 9 {
			sb.WriteRune(r)
		} else if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeLogUserID 截断并清洗用于日志的用户标识
func SanitizeLogUserID(userID string) string {
	if len(userID) > 50 {
		userID = userID[:50] + "..."
	}
	return SanitizeLogMessage(userID)
}
