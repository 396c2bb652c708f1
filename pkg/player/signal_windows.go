//go:build windows

package player

import "os"

var errProcessDone = os.ErrProcessDone

func suspend(p *os.Process) error {
	return ErrPauseUnsupported
}

func resume(p *os.Process) error {
	return nil
}
