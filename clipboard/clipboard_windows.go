//go:build windows

package clipboard

// clip.exe ships with every supported Windows release.
func copyToClipboard(text string) error {
	return pipe(text, "clip")
}
