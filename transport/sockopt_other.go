//go:build !unix

package transport

import "syscall"

// socketControl relies on net.Dialer defaults where x/sys/unix is unavailable
func socketControl(opts Options) func(network, address string, c syscall.RawConn) error {
	return nil
}
