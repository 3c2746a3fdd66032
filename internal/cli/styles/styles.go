// Package styles holds the lipgloss styles shared by all commands.
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/tranvq/pipeboard/internal/config"
	"github.com/tranvq/pipeboard/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // for field labels like "Status:", "Owner:"
	ValueStyle    lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	// Stage status colors, keyed by models.StageStatus
	stageColors map[models.StageStatus]string
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.SuccessFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg))

	stageColors = map[models.StageStatus]string{
		models.StageDone:       colors.StageDone,
		models.StageInProgress: colors.StageInProgress,
		models.StageSkipped:    colors.StageSkipped,
		models.StageUnset:      colors.Subtle,
	}
}

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderStageStatus renders a stage status marker in its status color.
func RenderStageStatus(status models.StageStatus) string {
	marker := "[ ]"
	switch status {
	case models.StageDone:
		marker = "[x]"
	case models.StageInProgress:
		marker = "[>]"
	case models.StageSkipped:
		marker = "[-]"
	}
	return ColoredText(marker, stageColors[status])
}

// RenderColumnChip renders a column title in the column's color.
func RenderColumnChip(col *models.Column) string {
	color := col.Color
	if color == "" {
		return "[" + col.Title + "]"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render("[" + col.Title + "]")
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
