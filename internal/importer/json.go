package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

// jsonImporter accepts a bare array of records or the aggregator's
// {"transactions": [...]} envelope.
type jsonImporter struct{}

func (jsonImporter) Parse(r io.Reader) ([]transaction.Record, error) {
	br := bufio.NewReader(r)

	first, err := firstNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	dec := json.NewDecoder(br)
	dec.UseNumber()

	switch first {
	case '[':
		var records []transaction.Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}

		return records, nil
	case '{':
		var envelope struct {
			Transactions []transaction.Record `json:"transactions"`
		}

		if err := dec.Decode(&envelope); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}

		return envelope.Transactions, nil
	}

	return nil, fmt.Errorf("decode records: unexpected %q, want an array or object", first)
}

func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}

		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}
