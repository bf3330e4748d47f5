package ports

import (
	"net"
	"testing"
)

func TestLoopback(t *testing.T) {
	addr, err := Loopback()
	if err != nil {
		t.Fatalf("Loopback: %v", err)
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "127.0.0.1" || port == "0" {
		t.Fatalf("unexpected addr %q (%v)", addr, err)
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("port not reusable: %v", err)
	}
	l.Close()
}
