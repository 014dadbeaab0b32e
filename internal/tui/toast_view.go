package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/magazine/internal/core/toast"
)

const toastWidth = 48

// ToastLister is the read side of toast.Manager.
type ToastLister interface {
	List() []toast.Notification
}

// ToastView renders the live toast list as a stack (oldest at top, newest
// at bottom), anchored to the bottom-left of the screen.
type ToastView struct {
	toasts ToastLister
}

func NewToastView(toasts ToastLister) *ToastView {
	return &ToastView{toasts: toasts}
}

// View renders the current snapshot, or "" when nothing is live.
func (v *ToastView) View() string {
	live := v.toasts.List()
	if len(live) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(live))
	for _, n := range live {
		rendered = append(rendered, RenderToast(n))
	}

	return strings.Join(rendered, "\n")
}

// Height returns the number of lines View currently occupies.
func (v *ToastView) Height() int {
	out := v.View()
	if out == "" {
		return 0
	}
	return lipgloss.Height(out)
}

// RenderToast renders a single toast box. Unknown kinds use the info look.
func RenderToast(n toast.Notification) string {
	var (
		icon      string
		style     lipgloss.Style
		iconStyle lipgloss.Style
	)

	switch n.Kind {
	case toast.KindSuccess:
		icon, style, iconStyle = iconToastSuccess, toastSuccessStyle, toastSuccessIconStyle
	case toast.KindError:
		icon, style, iconStyle = iconToastError, toastErrorStyle, toastErrorIconStyle
	default:
		icon, style, iconStyle = iconToastInfo, toastInfoStyle, toastInfoIconStyle
	}

	content := iconStyle.Render(icon) + " " + n.Message
	return style.Width(toastWidth).Render(content)
}
