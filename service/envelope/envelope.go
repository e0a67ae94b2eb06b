package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RequestPayload is the body of POST /chat. A missing message is treated as an empty one.
type RequestPayload struct {
	Message string `json:"message"`
}

// ResponseBody wraps every reply, successful or not.
type ResponseBody struct {
	Response string `json:"response"`
}

// DecodeRequest parses a chat request body. A blank body is an empty message; anything after
// the JSON object is rejected.
func DecodeRequest(body []byte) (RequestPayload, error) {
	var payload RequestPayload
	if len(bytes.TrimSpace(body)) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return RequestPayload{}, fmt.Errorf("failed to parse request body: %w", err)
	}
	return payload, nil
}
