package utils

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxLabelLen = 63
	maxNameLen  = 255
	// maxPointerHops bounds compression pointer chains.
	maxPointerHops = 32
)

var (
	ErrLabelTooLong    = errors.New("label too long")
	ErrEmptyLabel      = errors.New("empty label")
	ErrNameTooLong     = errors.New("name too long")
	ErrNameTruncated   = errors.New("name truncated")
	ErrBadPointer      = errors.New("bad compression pointer")
	ErrTooManyPointers = errors.New("too many compression pointers")
)

// EncodeName encodes a domain name into uncompressed wire format
// (length-prefixed labels ending in 0). "" and "." encode as the root.
func EncodeName(name string) ([]byte, error) {
	return AppendName(nil, name)
}

// AppendName appends the uncompressed wire form of name to b.
// On error b is returned unchanged.
func AppendName(b []byte, name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".")
	start := len(b)
	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if label == "" {
				return b[:start], fmt.Errorf("%w in %q", ErrEmptyLabel, name)
			}
			if len(label) > maxLabelLen {
				return b[:start], fmt.Errorf("%w: %s", ErrLabelTooLong, label)
			}
			b = append(b, byte(len(label)))
			b = append(b, label...)
		}
	}
	b = append(b, 0)
	if len(b)-start > maxNameLen {
		return b[:start], fmt.Errorf("%w: %d octets", ErrNameTooLong, len(b)-start)
	}
	return b, nil
}

// DecodeName reads a possibly compressed domain name from msg starting at off.
// It returns the fully qualified name and the offset just past the name as it
// appears at off (a pointer counts as two octets).
func DecodeName(msg []byte, off int) (string, int, error) {
	var sb strings.Builder
	end := -1
	hops := 0
	wireLen := 0
	pos := off
	for {
		if pos < 0 || pos >= len(msg) {
			return "", 0, ErrNameTruncated
		}
		c := int(msg[pos])
		switch c & 0xC0 {
		case 0x00:
			if c == 0 {
				if end < 0 {
					end = pos + 1
				}
				if sb.Len() == 0 {
					return ".", end, nil
				}
				return sb.String(), end, nil
			}
			if pos+1+c > len(msg) {
				return "", 0, ErrNameTruncated
			}
			wireLen += c + 1
			if wireLen+1 > maxNameLen {
				return "", 0, ErrNameTooLong
			}
			sb.Write(msg[pos+1 : pos+1+c])
			sb.WriteByte('.')
			pos += 1 + c
		case 0xC0:
			if pos+1 >= len(msg) {
				return "", 0, ErrNameTruncated
			}
			ptr := (c&0x3F)<<8 | int(msg[pos+1])
			// pointers must refer to an earlier position
			if ptr >= pos {
				return "", 0, fmt.Errorf("%w: %d at %d", ErrBadPointer, ptr, pos)
			}
			hops++
			if hops > maxPointerHops {
				return "", 0, ErrTooManyPointers
			}
			if end < 0 {
				end = pos + 2
			}
			pos = ptr
		default:
			return "", 0, fmt.Errorf("%w: reserved label type 0x%02x", ErrBadPointer, c)
		}
	}
}
