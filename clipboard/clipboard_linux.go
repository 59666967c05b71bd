//go:build linux

package clipboard

import "os/exec"

// copyToClipboard tries Wayland (wl-copy) first, then the X11 tools xclip
// and xsel.
func copyToClipboard(text string) error {
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return pipe(text, "wl-copy")
	}
	if _, err := exec.LookPath("xclip"); err == nil {
		return pipe(text, "xclip", "-selection", "clipboard")
	}
	if _, err := exec.LookPath("xsel"); err == nil {
		return pipe(text, "xsel", "--clipboard", "--input")
	}
	return ErrUnavailable
}
