//go:build !darwin && !windows

package platform

func acquire() (Handle, error) {
	return Handle{}, ErrUnsupportedPlatform
}
