// Package multipart implements the raw multipart/form-data decoder used
// for file uploads. Разбор нарочно ручной: тело режется строго по точному
// вхождению разделителя --boundary, заголовки отделяются пустой строкой,
// завершающий CRLF каждой части отбрасывается. Высокоуровневые
// MIME-библиотеки ведут себя иначе на граничных случаях, поэтому здесь
// они не используются.
package multipart

import (
	"bytes"
	"errors"
)

// MaxFileSize максимальный размер загружаемого файла (50 MiB)
const MaxFileSize = 50 << 20

// ErrMalformedUpload indicates that a matched part has no header/body
// separator and cannot be decoded
var ErrMalformedUpload = errors.New("malformed upload")

// Маркеры полей в заголовках части
var (
	fileFieldMarker    = []byte(`name="file"`)
	messageFieldMarker = []byte(`name="message"`)
	filenameMarker     = []byte(`filename="`)
	headerSeparator    = []byte("\r\n\r\n")
	lineTerminator     = []byte("\r\n")
)

// FilePart is a decoded file field: the client-supplied filename and the
// raw payload bytes
type FilePart struct {
	Filename string
	Data     []byte
}

// Parse splits body on the exact --boundary delimiter and extracts at most
// one file part (field "file") and at most one text part (field "message").
// Части, не подходящие ни под один маркер, игнорируются. Байтовые
// последовательности внутри содержимого файла, похожие на boundary, но не
// совпадающие с ним точно, не разрывают часть.
func Parse(body []byte, boundary string) (*FilePart, string, error) {
	delimiter := append([]byte("--"), boundary...)
	parts := bytes.Split(body, delimiter)

	var file *FilePart
	var text string

	for _, part := range parts {
		switch {
		case bytes.Contains(part, fileFieldMarker) && bytes.Contains(part, filenameMarker):
			headers, payload, err := splitPart(part)
			if err != nil {
				return nil, "", err
			}

			filename, err := extractFilename(headers)
			if err != nil {
				return nil, "", err
			}

			file = &FilePart{Filename: filename, Data: payload}

		case bytes.Contains(part, messageFieldMarker):
			_, payload, err := splitPart(part)
			if err != nil {
				return nil, "", err
			}
			text = string(payload)
		}
	}

	return file, text, nil
}

// splitPart отделяет заголовки части от содержимого по первой пустой
// строке и отбрасывает завершающий CRLF, добавленный кодированием
func splitPart(part []byte) (headers, payload []byte, err error) {
	i := bytes.Index(part, headerSeparator)
	if i < 0 {
		return nil, nil, ErrMalformedUpload
	}

	headers = part[:i]
	payload = part[i+len(headerSeparator):]

	if j := bytes.LastIndex(payload, lineTerminator); j >= 0 {
		payload = payload[:j]
	}

	return headers, payload, nil
}

// extractFilename вырезает имя файла из кавычек после filename="
func extractFilename(headers []byte) (string, error) {
	start := bytes.Index(headers, filenameMarker)
	if start < 0 {
		return "", ErrMalformedUpload
	}
	start += len(filenameMarker)

	end := bytes.IndexByte(headers[start:], '"')
	if end < 0 {
		return "", ErrMalformedUpload
	}

	return string(headers[start : start+end]), nil
}
