package source

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// sjis encodes UTF-8 test fixtures the way JSDA publishes them.
func sjis(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return b
}

func TestDecode_TabSeparated(t *testing.T) {
	payload := sjis(t, "20240105\t国債\t1\t利付国庫債券（１０年）\t20300101\t0.1\t0.55\r\n"+
		"20240105\t社債\t2\tトヨタ自動車１\t20270101\t0.5\t0.80\r\n")

	rows, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := [][]string{
		{"20240105", "国債", "1", "利付国庫債券（１０年）", "20300101", "0.1", "0.55"},
		{"20240105", "社債", "2", "トヨタ自動車１", "20270101", "0.5", "0.80"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestDecode_CommaSeparated(t *testing.T) {
	payload := sjis(t, "日付,銘柄種別,銘柄コード,銘柄名,償還期日\n"+
		"20240105,社債,2,\"トヨタ自動車１\",20270101\n")

	rows, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][3] != "トヨタ自動車１" {
		t.Errorf("quoted field = %q", rows[1][3])
	}
}

func TestDecode_InvalidShiftJIS(t *testing.T) {
	// 0x82 opens a two-byte sequence; 0xFF is not a valid trail byte.
	_, err := Decode([]byte{'a', '\t', 0x82, 0xFF, '\n'})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("err = %v, want DecodeError", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	var decodeErr *DecodeError
	if _, err := Decode(nil); !errors.As(err, &decodeErr) {
		t.Errorf("err = %v, want DecodeError", err)
	}
	if _, err := Decode([]byte("\n\n")); !errors.As(err, &decodeErr) {
		t.Errorf("err = %v, want DecodeError", err)
	}
}
