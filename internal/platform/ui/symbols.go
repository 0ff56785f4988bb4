// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"contacts/internal/core/domain"
)

// CategoryStyle retorna el estilo con el que se pinta cada categoría de
// severidad; el resto de categorías usa el texto principal.
func CategoryStyle(c domain.Category) *pterm.Style {
	switch c {
	case domain.CategoryError:
		return StyleError
	case domain.CategoryWarning:
		return StyleWarning
	case domain.CategoryCompany:
		return StyleAccent
	default:
		return StyleText
	}
}

// Icons globales para diferentes elementos de la UI
var (
	IconFix     = "🔧"
	IconSearch  = "🔍"
	IconSummary = "📊"
)

// Separadores
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
