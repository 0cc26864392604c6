package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New(`missing "data" field`)
	}
	return env.Data, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeOne decodes a single-record envelope. A null record is a shape error.
func decodeOne[T any](c *Client, operation string, body []byte) (T, error) {
	var out T

	data, err := unwrapEnvelope(body)
	if err != nil {
		return out, decodeError(operation, err)
	}
	if isNull(data) {
		return out, decodeError(operation, errors.New("data is null"))
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, decodeError(operation, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return out, decodeError(operation, err)
	}

	return out, nil
}

// decodeList decodes a list envelope. A null list is an empty result.
func decodeList[T any](c *Client, operation string, body []byte) ([]T, error) {
	data, err := unwrapEnvelope(body)
	if err != nil {
		return nil, decodeError(operation, err)
	}
	if isNull(data) {
		return []T{}, nil
	}

	out := []T{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, decodeError(operation, err)
	}
	for i := range out {
		if err := c.validate.Struct(out[i]); err != nil {
			return nil, decodeError(operation, fmt.Errorf("item %d: %w", i, err))
		}
	}

	return out, nil
}
