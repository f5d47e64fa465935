package cmd

import (
	"github.com/fatih/color"

	"github.com/phishguard/phishguard/internal/analyzer"
)

var (
	colorSafe     = color.New(color.FgGreen).SprintFunc()
	colorLow      = color.New(color.FgCyan).SprintFunc()
	colorMedium   = color.New(color.FgYellow).SprintFunc()
	colorHigh     = color.New(color.FgRed).SprintFunc()
	colorCritical = color.New(color.FgRed, color.Bold).SprintFunc()
	colorInfo     = color.New(color.FgCyan).SprintFunc()
	colorError    = color.New(color.FgRed).SprintFunc()
)

func formatTierWithColor(tier analyzer.Tier) string {
	switch tier {
	case analyzer.TierSafe:
		return colorSafe(string(tier))
	case analyzer.TierLow:
		return colorLow(string(tier))
	case analyzer.TierMedium:
		return colorMedium(string(tier))
	case analyzer.TierHigh:
		return colorHigh(string(tier))
	case analyzer.TierCritical:
		return colorCritical(string(tier))
	default:
		return string(tier)
	}
}
