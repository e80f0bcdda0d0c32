// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtractReply decodes a successful response body and picks the reply text.
//
// The fields in ReplyFields are checked in order and the first truthy one
// wins: present, not null, not false, not zero and not an empty string.
// String values are used as-is, other values as their JSON text. When no
// field qualifies, or the body is not an object, the whole body is returned
// as compact JSON.
func ExtractReply(body []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var fields map[string]json.RawMessage
	if _, isObject := decoded.(map[string]any); isObject {
		if err := json.Unmarshal(body, &fields); err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		for _, name := range ReplyFields {
			raw, present := fields[name]
			if !present {
				continue
			}
			if text, ok := truthyText(raw); ok {
				return text, nil
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return compact.String(), nil
}

// truthyText returns the display text of a JSON value when it is truthy.
func truthyText(raw json.RawMessage) (string, bool) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}

	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		if !v {
			return "", false
		}
	case float64:
		if v == 0 {
			return "", false
		}
	case string:
		return v, v != ""
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", false
	}
	return compact.String(), true
}
