//go:build !release

package log

func init() {
	SetDebug(true)
}
