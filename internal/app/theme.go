package app

import (
	"github.com/charmbracelet/lipgloss"

	"examdesk/internal/types"
)

type Styles struct {
	Title        lipgloss.Style
	Subtle       lipgloss.Style
	Selected     lipgloss.Style
	FieldLabel   lipgloss.Style
	ErrorText    lipgloss.Style
	Countdown    lipgloss.Style
	Help         lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

func NewStyles(theme types.Theme) Styles {
	text := lipgloss.Color("#1A1A1A")
	subtle := lipgloss.Color("#6E6E6E")
	accent := lipgloss.Color("#0F6FC5")
	if theme == types.ThemeDark {
		text = lipgloss.Color("#F0F0F0")
		subtle = lipgloss.Color("#8C8C8C")
		accent = lipgloss.Color("#5FB2FF")
	}
	return Styles{
		Title:        lipgloss.NewStyle().Foreground(text).Bold(true),
		Subtle:       lipgloss.NewStyle().Foreground(subtle),
		Selected:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		FieldLabel:   lipgloss.NewStyle().Foreground(subtle),
		ErrorText:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		Countdown:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		Help:         lipgloss.NewStyle().Foreground(subtle),
		ToastInfo:    toastPill("#0F6FC5"),
		ToastSuccess: toastPill("#2E8B57"),
		ToastWarning: toastPill("#C89A3A"),
		ToastError:   toastPill("#B22222"),
	}
}

func toastPill(background string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(background)).
		Padding(0, 1)
}
