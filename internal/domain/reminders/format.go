package reminders

import (
	"fmt"
	"strings"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/schedule"
)

// Texto del mensaje consolidado por tutor. El formato es presentación:
// lo único contractual es el agrupado por categoría y el orden.

var categoryEmoji = map[careitems.Category]string{
	careitems.CategoryVaccination: "💉",
	careitems.CategoryMedication:  "💊",
	careitems.CategoryFlea:        "🛡️",
	careitems.CategoryDeworming:   "🐛",
}

var categoryLabel = map[careitems.Category]string{
	careitems.CategoryVaccination: "Vacunas",
	careitems.CategoryMedication:  "Medicación",
	careitems.CategoryFlea:        "Antipulgas",
	careitems.CategoryDeworming:   "Desparasitación",
}

func formatTutorMessage(b tutorBatch) string {
	var sb strings.Builder

	name := strings.TrimSpace(b.name)
	if name == "" {
		name = "Tutor"
	}

	total := len(b.items) + len(b.stock)
	fmt.Fprintf(&sb, "¡Hola %s! 🐾\n\n", name)
	if total == 1 {
		sb.WriteString("Tenés 1 recordatorio de tus mascotas:\n")
	} else {
		fmt.Fprintf(&sb, "Tenés %d recordatorios de tus mascotas:\n", total)
	}

	for _, cat := range careitems.Categories {
		var lines []string
		for _, it := range b.items {
			if it.Category != cat {
				continue
			}
			lines = append(lines, formatItemLine(it))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s *%s*\n", categoryEmoji[cat], categoryLabel[cat])
		for _, l := range lines {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
	}

	if len(b.stock) > 0 {
		sb.WriteString("\n🍽️ *Alimento*\n")
		for _, al := range b.stock {
			if al.DaysRemaining <= 0 {
				fmt.Fprintf(&sb, "• %s: sin stock, reponer hoy\n", al.PetName)
			} else {
				fmt.Fprintf(&sb, "• %s: quedan %s de alimento (reponer el %s)\n",
					al.PetName, plural(al.DaysRemaining), al.RestockAt.Format("02/01/2006"))
			}
		}
	}

	sb.WriteString("\n_PetCare - Cuidando con amor_ ❤️")
	return sb.String()
}

func formatItemLine(it Item) string {
	due := schedule.Day(it.DueAt).Format("02/01/2006")
	if it.Status == schedule.StatusOverdue {
		return fmt.Sprintf("• %s - %s: vencido hace %s (%s)", it.PetName, it.ItemName, plural(-it.DaysUntil), due)
	}
	if it.DaysUntil == 0 {
		return fmt.Sprintf("• %s - %s: vence hoy (%s)", it.PetName, it.ItemName, due)
	}
	return fmt.Sprintf("• %s - %s: vence en %s (%s)", it.PetName, it.ItemName, plural(it.DaysUntil), due)
}

func plural(days int) string {
	if days == 1 {
		return "1 día"
	}
	return fmt.Sprintf("%d días", days)
}
