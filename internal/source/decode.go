package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Decode converts a raw Shift_JIS payload into a flat table of
// strings. The narrow vintages are tab-separated without a header row;
// the wide vintages are comma-separated, sometimes headered. Separator
// detection looks at the first line only.
func Decode(payload []byte) ([][]string, error) {
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), payload)
	if err != nil {
		return nil, &DecodeError{Reason: err.Error()}
	}
	if bytes.ContainsRune(decoded, '�') {
		return nil, &DecodeError{Reason: "payload is not valid Shift_JIS"}
	}

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil, &DecodeError{Reason: "empty payload"}
	}

	firstLine, _, _ := strings.Cut(text, "\n")
	if strings.ContainsRune(firstLine, '\t') {
		return splitTabs(text), nil
	}
	return splitCSV(text)
}

func splitTabs(text string) [][]string {
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

func splitCSV(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
