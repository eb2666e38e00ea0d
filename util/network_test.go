package util

import (
	"net"
	"strconv"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	if got := FormatAddr("", 2323); got != ":2323" {
		t.Errorf("FormatAddr = %q", got)
	}
	if got := FormatAddr("127.0.0.1", 80); got != "127.0.0.1:80" {
		t.Errorf("FormatAddr = %q", got)
	}
	if got := FormatAddr("::1", 22); got != "[::1]:22" {
		t.Errorf("FormatAddr = %q", got)
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Fatalf("port %d out of range", port)
	}

	// The port must be bindable right after.
	ln, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(port))
	if err != nil {
		t.Fatalf("binding the free port: %v", err)
	}
	ln.Close()
}

func TestBufPool(t *testing.T) {
	buf := GetBuf()
	if len(*buf) != DefaultBufSize {
		t.Errorf("len = %d, want %d", len(*buf), DefaultBufSize)
	}
	PutBuf(buf)

	again := GetBuf()
	if len(*again) != DefaultBufSize {
		t.Errorf("recycled len = %d", len(*again))
	}
	PutBuf(again)
}
