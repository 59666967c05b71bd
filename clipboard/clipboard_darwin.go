//go:build darwin

package clipboard

func copyToClipboard(text string) error {
	return pipe(text, "pbcopy")
}
