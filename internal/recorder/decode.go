package recorder

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// sizePresence mirrors the one field of the first record whose absence the
// typed event hides: an object size of zero is valid, a missing one is not.
type sizePresence struct {
	Records []struct {
		S3 struct {
			Object struct {
				Size *int64 `json:"size"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

func decodeEvent(payload []byte) (events.S3Event, error) {
	var ev events.S3Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return events.S3Event{}, fmt.Errorf("%w: decode event: %v", ErrMalformedInput, err)
	}

	var presence sizePresence
	if err := json.Unmarshal(payload, &presence); err != nil {
		return events.S3Event{}, fmt.Errorf("%w: decode event: %v", ErrMalformedInput, err)
	}
	if len(presence.Records) > 0 && presence.Records[0].S3.Object.Size == nil {
		return events.S3Event{}, fmt.Errorf("%w: record is missing s3.object.size", ErrMalformedInput)
	}
	return ev, nil
}
