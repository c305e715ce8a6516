package telegram

import (
	"fmt"
	"strings"

	"fairprice/backend/internal/models"
)

// formatList renders up to maxListed businesses, one per line.
func (s *BotService) formatList(lang string, list []models.Business) string {
	if len(list) == 0 {
		return s.Localizer.GetString(lang, "no_matches")
	}

	var sb strings.Builder
	for i, b := range list {
		if i == maxListed {
			sb.WriteString(s.Localizer.Format(lang, "bot_more_results", len(list)-maxListed))
			break
		}
		fmt.Fprintf(&sb, "• %s (%s, %s)\n", b.Name, b.District, b.Category)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatCard renders the detail card of one business followed by its most
// recent reports.
func (s *BotService) formatCard(lang string, b models.Business, thread []models.Report) string {
	var sb strings.Builder
	sb.WriteString(b.Name + "\n")
	fmt.Fprintf(&sb, "%s: %s\n", s.Localizer.GetString(lang, "label_category"), b.Category)
	fmt.Fprintf(&sb, "%s: %s\n", s.Localizer.GetString(lang, "label_district"), b.District)
	fmt.Fprintf(&sb, "%s: %s\n", s.Localizer.GetString(lang, "label_address"), b.Address)
	fmt.Fprintf(&sb, "%s: %s\n", s.Localizer.GetString(lang, "label_phone"), b.Phone)
	if b.MissingInfo() {
		sb.WriteString(s.Localizer.GetString(lang, "missing_pride") + "\n")
	} else {
		fmt.Fprintf(&sb, "%s: %s\n", s.Localizer.GetString(lang, "label_pride"), b.Pride)
	}

	sb.WriteString("\n")
	if len(thread) == 0 {
		sb.WriteString(s.Localizer.GetString(lang, "no_reports"))
		return sb.String()
	}
	for i, r := range thread {
		if i == maxThread {
			break
		}
		sb.WriteString(formatReport(r) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatReport(r models.Report) string {
	return fmt.Sprintf("[%s] %s: %s (%s)", r.Kind, r.Nickname, r.Body, r.Timestamp)
}
