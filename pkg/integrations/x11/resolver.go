package x11

import (
	"bytes"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/i3tracker/i3tracker/pkg/window"
)

// chunk is the number of 32-bit units requested per GetProperty round trip
const chunk = 8

// Resolver implements window.ClassResolver on top of an X11 connection
type Resolver struct {
	conn *xgb.Conn
}

// NewResolver connects to the X server named by $DISPLAY
func NewResolver() (*Resolver, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &Resolver{conn: conn}, nil
}

// Class returns the WM_CLASS class name of an X window
func (r *Resolver) Class(win uint32) (string, error) {
	var (
		buf    []byte
		offset uint32
	)
	for {
		reply, err := xproto.GetProperty(r.conn, false, xproto.Window(win),
			xproto.AtomWmClass, xproto.AtomString, offset, chunk).Reply()
		if err != nil {
			return "", fmt.Errorf("failed to read WM_CLASS of 0x%x: %w", win, err)
		}
		buf = append(buf, reply.Value...)
		if reply.BytesAfter == 0 {
			break
		}
		offset += reply.ValueLen / 4
	}
	return parseWMClass(buf), nil
}

// Close closes the X connection
func (r *Resolver) Close() error {
	r.conn.Close()
	return nil
}

// parseWMClass extracts the class from a raw "instance\0class\0" property value,
// falling back to the instance when no class is present
func parseWMClass(data []byte) string {
	parts := bytes.Split(bytes.TrimRight(data, "\x00"), []byte{0})
	for i := len(parts) - 1; i >= 0; i-- {
		if len(parts[i]) > 0 {
			return string(parts[i])
		}
	}
	return ""
}

var _ window.ClassResolver = (*Resolver)(nil)
