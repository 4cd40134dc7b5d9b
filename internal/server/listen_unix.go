//go:build unix

package server

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenConfig はSO_REUSEADDRを設定するnet.ListenConfigを返す
// 再起動直後でも "address already in use" にならないようにする
func listenConfig(reuseAddr bool) net.ListenConfig {
	if !reuseAddr {
		return net.ListenConfig{}
	}

	return net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			if err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			}); err != nil {
				return err
			}
			return sockErr
		},
	}
}
