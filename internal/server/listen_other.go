//go:build !unix

package server

import "net"

// listenConfig はunix以外ではソケットオプションを設定しない
func listenConfig(bool) net.ListenConfig {
	return net.ListenConfig{}
}
