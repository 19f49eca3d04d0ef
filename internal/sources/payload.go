package sources

import (
	"encoding/json"
	"fmt"

	"github.com/pricelens/pricelens/internal/core"
)

// wrapperKeys are tried in order when a payload is an object wrapping the
// model array instead of a bare array.
var wrapperKeys = []string{"models", "data", "records"}

// DecodeRecords parses a price list document into raw records. The
// canonical shape is a JSON array of objects; documents that wrap the
// array under a models/data/records key are accepted too. Non-object
// entries inside the array are skipped rather than failing the document.
func DecodeRecords(payload []byte) ([]core.RawPriceRecord, error) {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("parsing price list: %w", err)
	}

	list, ok := recordList(doc)
	if !ok {
		return nil, fmt.Errorf("parsing price list: no model array found")
	}

	records := make([]core.RawPriceRecord, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, core.RawPriceRecord(obj))
	}
	return records, nil
}

func recordList(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		for _, key := range wrapperKeys {
			if list, ok := v[key].([]any); ok {
				return list, true
			}
		}
	}
	return nil, false
}
