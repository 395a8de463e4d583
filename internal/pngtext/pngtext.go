// Package pngtext reads and writes the textual metadata chunks of PNG files.
//
// image/png ignores tEXt, zTXt and iTXt chunks in both directions, so this
// package encodes with image/png and splices tEXt chunks into the stream
// after IHDR, and on read walks the raw chunk list itself.
package pngtext

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

var (
	ErrNotPNG         = errors.New("pngtext: not a PNG stream")
	ErrChecksum       = errors.New("pngtext: chunk checksum mismatch")
	ErrTruncated      = errors.New("pngtext: truncated chunk")
	ErrInvalidKeyword = errors.New("pngtext: invalid keyword")
	ErrInvalidText    = errors.New("pngtext: text is not Latin-1")
	ErrMalformed      = errors.New("pngtext: malformed text chunk")
)

const (
	signature = "\x89PNG\r\n\x1a\n"

	// Chunks longer than this are rejected before allocating.
	maxChunkLen = 1 << 30

	maxKeywordLen = 79
)

// Entry is one keyword/text pair.
type Entry struct {
	Keyword string
	Text    string
}

// Encoder is used by Encode to produce the image data.
var Encoder = &png.Encoder{CompressionLevel: png.DefaultCompression}

// Encode writes img as a PNG with one tEXt chunk per entry placed directly
// after the IHDR chunk.
func Encode(w io.Writer, img image.Image, entries ...Entry) error {
	chunks := make([][]byte, 0, len(entries))
	for _, e := range entries {
		data, err := textChunkData(e)
		if err != nil {
			return err
		}
		chunks = append(chunks, data)
	}

	var buf bytes.Buffer
	if err := Encoder.Encode(&buf, img); err != nil {
		return fmt.Errorf("pngtext: encode image: %w", err)
	}

	raw := buf.Bytes()
	// Signature, then IHDR: length(4) type(4) data(13) crc(4).
	ihdrEnd := len(signature) + 8 + 13 + 4
	if len(raw) < ihdrEnd || string(raw[len(signature)+4:len(signature)+8]) != "IHDR" {
		return fmt.Errorf("pngtext: unexpected encoder output: %w", ErrMalformed)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(raw[:ihdrEnd]); err != nil {
		return err
	}
	for _, data := range chunks {
		if err := writeChunk(bw, "tEXt", data); err != nil {
			return err
		}
	}
	if _, err := bw.Write(raw[ihdrEnd:]); err != nil {
		return err
	}
	return bw.Flush()
}

func textChunkData(e Entry) ([]byte, error) {
	kw, err := latin1(e.Keyword)
	if err != nil || len(kw) == 0 || len(kw) > maxKeywordLen || bytes.IndexByte(kw, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKeyword, e.Keyword)
	}
	text, err := latin1(e.Text)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, len(kw)+1+len(text))
	data = append(data, kw...)
	data = append(data, 0)
	data = append(data, text...)
	return data, nil
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)

	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())

	for _, b := range [][]byte{hdr[:], data, tail[:]} {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// Read returns every tEXt, zTXt and iTXt entry in the stream, in file order.
// It stops at IEND.
func Read(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(signature))
	if _, err := io.ReadFull(br, sig); err != nil || string(sig) != signature {
		return nil, ErrNotPNG
	}

	var entries []Entry
	for {
		typ, data, err := readChunk(br)
		if err != nil {
			return nil, err
		}

		var e Entry
		switch typ {
		case "tEXt":
			e, err = parseText(data)
		case "zTXt":
			e, err = parseCompressedText(data)
		case "iTXt":
			e, err = parseInternationalText(data)
		case "IEND":
			return entries, nil
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s chunk: %w", typ, err)
		}
		entries = append(entries, e)
	}
}

func readChunk(r io.Reader) (string, []byte, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	n := binary.BigEndian.Uint32(hdr[:4])
	if n > maxChunkLen {
		return "", nil, fmt.Errorf("%w: chunk length %d", ErrMalformed, n)
	}

	data := make([]byte, n+4)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data[:n])
	if crc.Sum32() != binary.BigEndian.Uint32(data[n:]) {
		return "", nil, fmt.Errorf("%w in %s", ErrChecksum, hdr[4:])
	}
	return string(hdr[4:]), data[:n], nil
}

func splitNul(data []byte) ([]byte, []byte, bool) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return nil, nil, false
	}
	return data[:i], data[i+1:], true
}

func parseText(data []byte) (Entry, error) {
	kw, text, ok := splitNul(data)
	if !ok {
		return Entry{}, ErrMalformed
	}
	return Entry{Keyword: fromLatin1(kw), Text: fromLatin1(text)}, nil
}

func parseCompressedText(data []byte) (Entry, error) {
	kw, rest, ok := splitNul(data)
	if !ok || len(rest) < 1 || rest[0] != 0 {
		return Entry{}, ErrMalformed
	}
	text, err := inflate(rest[1:])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Keyword: fromLatin1(kw), Text: fromLatin1(text)}, nil
}

func parseInternationalText(data []byte) (Entry, error) {
	kw, rest, ok := splitNul(data)
	if !ok || len(rest) < 2 {
		return Entry{}, ErrMalformed
	}
	compressed, method := rest[0], rest[1]
	// Language tag, then translated keyword.
	_, rest, ok = splitNul(rest[2:])
	if !ok {
		return Entry{}, ErrMalformed
	}
	_, text, ok := splitNul(rest)
	if !ok {
		return Entry{}, ErrMalformed
	}

	if compressed != 0 {
		if method != 0 {
			return Entry{}, ErrMalformed
		}
		var err error
		if text, err = inflate(text); err != nil {
			return Entry{}, err
		}
	}
	return Entry{Keyword: fromLatin1(kw), Text: string(text)}, nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

func latin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: %q", ErrInvalidText, s)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func fromLatin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// Lookup returns the text of the last entry with the given keyword.
func Lookup(entries []Entry, keyword string) (string, bool) {
	var (
		text  string
		found bool
	)
	for _, e := range entries {
		if e.Keyword == keyword {
			text, found = e.Text, true
		}
	}
	return text, found
}
