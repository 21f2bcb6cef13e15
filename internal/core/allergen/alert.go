package allergen

import (
	"fmt"
	"strings"
)

const (
	// dangerThreshold 達此嚴重度即為 danger
	dangerThreshold = 8

	titleSevere   = "SEVERE ALLERGY ALERT"
	titleStandard = "Allergy Alert"

	defaultFoodName = "This product"
	dangerWarning   = "This contains an ingredient you marked as high severity. Do not consume it."
)

// ComposeAlert 將非空的比對結果組成警示內容
// 比對結果為空屬呼叫端錯誤
func ComposeAlert(matches []AllergenMatch, foodName string) Alert {
	highest := 0
	for i, m := range matches {
		if i == 0 || m.Severity > highest {
			highest = m.Severity
		}
	}

	class := ClassWarning
	title := titleStandard
	if highest >= dangerThreshold {
		class = ClassDanger
		title = titleSevere
	}

	return Alert{
		Title:           title,
		Message:         composeMessage(matches, foodName, class),
		SeverityClass:   class,
		HighestSeverity: highest,
		Matches:         matches,
	}
}

func composeMessage(matches []AllergenMatch, foodName string, class SeverityClass) string {
	name := strings.TrimSpace(foodName)
	if name == "" {
		name = defaultFoodName
	}

	names := make([]string, 0, len(matches))
	var reasons []string
	seenReason := make(map[string]struct{})
	for _, m := range matches {
		names = append(names, m.ProhibitedIngredient)
		reason := strings.TrimSpace(m.Reason)
		if reason == "" {
			continue
		}
		if _, ok := seenReason[reason]; ok {
			continue
		}
		seenReason[reason] = struct{}{}
		reasons = append(reasons, reason)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s contains ingredients you avoid: %s.", name, strings.Join(names, ", "))
	if len(reasons) > 0 {
		sb.WriteString("\n\nReason: ")
		sb.WriteString(strings.Join(reasons, "; "))
	}
	if class == ClassDanger {
		sb.WriteString("\n\n")
		sb.WriteString(dangerWarning)
	}
	return sb.String()
}

// SeverityLabel 嚴重度對應的風險標籤
func SeverityLabel(severity int) string {
	switch {
	case severity >= 9:
		return "EMERGENCY"
	case severity >= 7:
		return "HIGH RISK"
	case severity >= 5:
		return "MODERATE"
	default:
		return "LOW RISK"
	}
}

// SeverityColor 嚴重度對應的顏色，門檻與 SeverityLabel 相同
func SeverityColor(severity int) ColorToken {
	switch {
	case severity >= 9:
		return ColorEmergency
	case severity >= 7:
		return ColorHighRisk
	case severity >= 5:
		return ColorModerate
	default:
		return ColorLowRisk
	}
}

// ClassFor 單一嚴重度所屬的警示等級
func ClassFor(severity int) SeverityClass {
	if severity >= dangerThreshold {
		return ClassDanger
	}
	return ClassWarning
}
