//go:build unix

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// socketControl sets TCP options on the raw socket before connect
func socketControl(opts Options) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		var sockErr error
		err := c.Control(func(fd uintptr) {
			if opts.NoDelay {
				sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
				if sockErr != nil {
					return
				}
			}
			if opts.KeepAlive > 0 {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
			}
		})
		if err != nil {
			return err
		}
		return sockErr
	}
}
