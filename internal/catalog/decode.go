package catalog

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

const (
	encodingCP949 = "cp949"
	encodingUTF8  = "utf-8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText converts raw catalog bytes to UTF-8. CP949 is tried first;
// any undecodable sequence makes it fall back to UTF-8.
func decodeText(raw []byte) ([]byte, string, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
		if !utf8.Valid(raw) {
			return nil, "", ErrUndecodable
		}
		return raw, encodingUTF8, nil
	}

	if out, err := korean.EUCKR.NewDecoder().Bytes(raw); err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
		return out, encodingCP949, nil
	}

	if utf8.Valid(raw) {
		return raw, encodingUTF8, nil
	}
	return nil, "", ErrUndecodable
}
