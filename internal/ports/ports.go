package ports

import (
	"fmt"
	"net"
)

// Loopback reserves a free TCP port on 127.0.0.1 and returns its
// "host:port" form. The port is released before returning, so another
// process may still grab it first.
func Loopback() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("reserve loopback port: %w", err)
	}
	defer l.Close()
	return l.Addr().String(), nil
}
