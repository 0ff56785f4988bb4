// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Estilos preconfigurados para diferentes contextos
var (
	// StyleText - texto principal
	StyleText = pterm.NewStyle(pterm.FgDefault)

	// StyleSecondary - escrituras de un fix, textos auxiliares
	StyleSecondary = pterm.NewStyle(pterm.FgGray)

	// StyleWarning - problemas con fix
	StyleWarning = pterm.NewStyle(pterm.FgYellow)

	// StyleError - problemas sin fix
	StyleError = pterm.NewStyle(pterm.FgRed)

	// StyleSuccess - fixes aplicados
	StyleSuccess = pterm.NewStyle(pterm.FgCyan)

	// StyleAccent - empresas
	StyleAccent = pterm.NewStyle(pterm.FgLightCyan)
)
