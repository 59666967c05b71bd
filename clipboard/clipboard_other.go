//go:build !windows && !linux && !darwin

package clipboard

func copyToClipboard(text string) error {
	return ErrUnavailable
}
