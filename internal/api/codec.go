package api

import (
	"encoding/json"
	"fmt"
)

// jsonCodec serializes the plain struct message types with encoding/json.
// Registering it under the name "json" replaces connect's default
// protobuf-backed JSON codec, which only accepts proto messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		// An empty body means an empty message.
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}
