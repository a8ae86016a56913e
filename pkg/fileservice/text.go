package fileservice

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/datatug/filepane/pkg/files"
	"golang.org/x/text/encoding/unicode"
)

var (
	errNotUTF8  = errors.New("content is not valid UTF-8")
	errOddUTF16 = errors.New("UTF-16 content has an odd number of bytes")
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText returns UTF-8 content as is. Content starting with a UTF-16 byte order mark
// is transcoded; those bytes can never start valid UTF-8, so a UTF-8 write always reads back unchanged.
func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		if len(data)%2 != 0 {
			return "", files.NewError(files.KindDecode, "", "", errOddUTF16)
		}
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", files.NewError(files.KindDecode, "", "", err)
		}
		return string(decoded), nil
	}
	if !utf8.Valid(data) {
		return "", files.NewError(files.KindDecode, "", "", errNotUTF8)
	}
	return string(data), nil
}

func validateText(content string) error {
	if !utf8.ValidString(content) {
		return invalidArgument("content is not valid UTF-8")
	}
	return nil
}
