package classfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Provides utilities for reading class-file data in big-endian format
type Reader struct {
	reader    *bufio.Reader
	bytesRead int64
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{
		reader: bufio.NewReader(reader),
	}
}

func (r *Reader) BytesRead() int64 {
	return r.bytesRead
}

// Reads at or below this size are allocated up front; larger lengths come
// from the input and are only trusted as far as the data backs them
const maxPreallocSize = 64 << 10

// ReadNBytes reads exactly n bytes and tracks position
func (r *Reader) ReadNBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length: %d", n)
	}

	if n > maxPreallocSize {
		buf, err := io.ReadAll(io.LimitReader(r.reader, int64(n)))
		r.bytesRead += int64(len(buf))
		if err != nil {
			return nil, err
		}
		if len(buf) < n {
			return nil, io.ErrUnexpectedEOF
		}
		return buf, nil
	}

	buf := make([]byte, n)
	bytesRead, err := io.ReadFull(r.reader, buf)
	if err != nil {
		return nil, err
	}
	r.bytesRead += int64(bytesRead)
	return buf, nil
}

// ReadU1 reads a single unsigned byte
func (r *Reader) ReadU1() (uint8, error) {
	b, err := r.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	r.bytesRead++
	return b, nil
}

// ReadU2 reads a 2-byte unsigned integer (big-endian)
func (r *Reader) ReadU2() (uint16, error) {
	buf, err := r.ReadNBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadU4 reads a 4-byte unsigned integer (big-endian)
func (r *Reader) ReadU4() (uint32, error) {
	buf, err := r.ReadNBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadU8 reads an 8-byte unsigned integer (big-endian)
func (r *Reader) ReadU8() (uint64, error) {
	buf, err := r.ReadNBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// Skip skips n bytes in the stream
func (r *Reader) Skip(n int) error {
	discarded, err := r.reader.Discard(n)
	r.bytesRead += int64(discarded)
	if err != nil {
		return fmt.Errorf("failed to skip %d bytes: %w", n, err)
	}
	return nil
}

// ReadUtf8 reads a length-prefixed modified UTF-8 string
func (r *Reader) ReadUtf8(length int) (string, error) {
	if length == 0 {
		return "", nil
	}
	data, err := r.ReadNBytes(length)
	if err != nil {
		return "", fmt.Errorf("failed to read string data: %w", err)
	}
	return decodeModifiedUTF8(data), nil
}

// decodeModifiedUTF8 handles the two JVM deviations from UTF-8: the
// two-byte encoding of U+0000 and surrogate pairs encoded separately
func decodeModifiedUTF8(data []byte) string {
	ascii := true
	for _, b := range data {
		if b >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(data)
	}

	runes := make([]rune, 0, len(data))
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b < 0x80:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0 && i+1 < len(data):
			runes = append(runes, rune(b&0x1F)<<6|rune(data[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0 && i+2 < len(data):
			runes = append(runes, rune(b&0x0F)<<12|rune(data[i+1]&0x3F)<<6|rune(data[i+2]&0x3F))
			i += 3
		default:
			runes = append(runes, '�')
			i++
		}
	}

	// recombine surrogate pairs
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		hi := runes[i]
		if hi >= 0xD800 && hi <= 0xDBFF && i+1 < len(runes) {
			lo := runes[i+1]
			if lo >= 0xDC00 && lo <= 0xDFFF {
				out = append(out, (hi-0xD800)<<10+(lo-0xDC00)+0x10000)
				i++
				continue
			}
		}
		out = append(out, hi)
	}
	return string(out)
}
