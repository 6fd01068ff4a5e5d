package printer

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.False(t, p.IsConnected(context.Background()))
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New(Options{Type: "usb"})
	assert.Error(t, err)
	_, err = New(Options{Type: "network"})
	assert.Error(t, err)
	_, err = New(Options{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestNetworkPrinter_Print(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p, err := New(Options{Type: "network", Address: ln.Addr().String(), Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))

	select {
	case got := <-received:
		assert.Equal(t, []byte("receipt"), got)
	case <-time.After(2 * time.Second):
		t.Fatal("printer server did not receive data")
	}
}

func TestDocument_KeyValueCountsRunes(t *testing.T) {
	d := NewDocument(20)
	d.KeyValue("Total", "₹100.00")

	out := d.Bytes()[2:] // skip ESC @
	line := string(bytes.TrimSuffix(out, []byte{LF}))
	assert.Equal(t, 20, len([]rune(line)))
	assert.True(t, bytes.HasPrefix(out, []byte("Total")))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 10))
	assert.Equal(t, []string{"Basmati", "Rice 5kg"}, wrap("Basmati Rice 5kg", 10))
	assert.Equal(t, []string{"abcdef", "ghij"}, wrap("abcdefghij", 6))
}

func TestDocument_QRCodeLength(t *testing.T) {
	d := NewDocument(Width58mm)
	d.QRCode("upi://pay?pa=x@upi", 6)
	assert.True(t, bytes.Contains(d.Bytes(), []byte("upi://pay?pa=x@upi")))
	// store header carries len(data)+3 in little-endian
	assert.True(t, bytes.Contains(d.Bytes(), []byte{GS, '(', 'k', byte(len("upi://pay?pa=x@upi") + 3), 0, 0x31, 0x50, 0x30}))
}
