package files

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

type Encoding string

const (
	EncodingAuto        Encoding = "auto"
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
)

func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingAuto:
		return EncodingAuto, nil
	case EncodingUTF8, "utf8":
		return EncodingUTF8, nil
	case EncodingWindows1252, "cp1252", "latin1":
		return EncodingWindows1252, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", s)
}

// OpenFileAndDecode reads a delimited payroll export into a DataFrame where
// every column is a string series.
func OpenFileAndDecode(path string, enc Encoding) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return Decode(file, enc)
}

// Decode is OpenFileAndDecode over an arbitrary reader.
func Decode(r io.Reader, enc Encoding) (dataframe.DataFrame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read source: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	if enc == EncodingWindows1252 || (enc == EncodingAuto && !utf8.Valid(raw)) {
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to decode windows-1252: %w", err)
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataframe is empty")
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.WithDelimiter(detectDelimiter(raw)),
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, df.Error()
	}
	return df, nil
}

// detectDelimiter picks ';' when the header line has more semicolons than
// commas. Brazilian spreadsheet exports use ';'.
func detectDelimiter(raw []byte) rune {
	header := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		header = raw[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}
