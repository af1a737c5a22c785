package textract

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv"
)

// decodeDocx handles Office Open XML documents. Legacy binary .doc files are
// rejected by the zip reader and reported as undecodable.
func decodeDocx(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	return text, nil
}
