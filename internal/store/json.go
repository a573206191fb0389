package store

import (
	"encoding/json"
	"fmt"
)

// The live selection and history are persisted as JSONB documents. These
// helpers keep encoding in one place so empty slices round-trip as [] and
// never as SQL NULL.

func marshalItems(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}

func unmarshalItems(data []byte) ([]string, error) {
	items := []string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return items, nil
}

func marshalHistory(history [][]string) ([]byte, error) {
	if history == nil {
		history = [][]string{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return data, nil
}

func unmarshalHistory(data []byte) ([][]string, error) {
	history := [][]string{}
	if len(data) == 0 {
		return history, nil
	}
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return history, nil
}
