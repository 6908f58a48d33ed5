package recorder

import (
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// upload holds the fields read from the first record of a notification.
type upload struct {
	Bucket    string
	Key       string
	Size      int64
	ETag      string
	Sequencer string
	VersionID string
	Uploader  string
}

// FileName is the last path segment of the object key.
func (u upload) FileName() string {
	return FileName(u.Key)
}

// FileName returns the part of key after the last '/', or key itself when it
// has no '/'.
func FileName(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// firstUpload extracts the first record of ev. Later records are reported
// through the returned count so the caller can account for them.
func firstUpload(ev events.S3Event) (upload, int, error) {
	if len(ev.Records) == 0 {
		return upload{}, 0, fmt.Errorf("%w: event has no records", ErrMalformedInput)
	}

	rec := ev.Records[0]
	u := upload{
		Bucket:    rec.S3.Bucket.Name,
		Key:       rec.S3.Object.Key,
		Size:      rec.S3.Object.Size,
		ETag:      rec.S3.Object.ETag,
		Sequencer: rec.S3.Object.Sequencer,
		VersionID: rec.S3.Object.VersionID,
		Uploader:  rec.PrincipalID.PrincipalID,
	}

	required := []struct {
		field string
		value string
	}{
		{"s3.bucket.name", u.Bucket},
		{"s3.object.key", u.Key},
		{"s3.object.eTag", u.ETag},
		{"s3.object.sequencer", u.Sequencer},
		{"userIdentity.principalId", u.Uploader},
	}
	for _, r := range required {
		if r.value == "" {
			return upload{}, 0, fmt.Errorf("%w: record is missing %s", ErrMalformedInput, r.field)
		}
	}
	if u.Size < 0 {
		return upload{}, 0, fmt.Errorf("%w: negative object size %d", ErrMalformedInput, u.Size)
	}

	return u, len(ev.Records) - 1, nil
}

// AccountFromARN returns the account field of an invocation ARN
// (arn:partition:service:region:account-id:resource).
func AccountFromARN(invokedARN string) (string, error) {
	parsed, err := arn.Parse(invokedARN)
	if err != nil {
		return "", fmt.Errorf("%w: invocation arn %q: %v", ErrMalformedInput, invokedARN, err)
	}
	if parsed.AccountID == "" {
		return "", fmt.Errorf("%w: invocation arn %q has no account", ErrMalformedInput, invokedARN)
	}
	return parsed.AccountID, nil
}
