package recorder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/your-org/mediaflow-recorder/pkg/table"
)

// TimestampLayout renders the processing time in UTC.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Detail is serialized into the record's Detail attribute.
type Detail struct {
	Bucket DetailBucket `json:"bucket"`
	Object DetailObject `json:"object"`
}

type DetailBucket struct {
	Name string `json:"name"`
}

type DetailObject struct {
	ETag      string `json:"etag"`
	Key       string `json:"key"`
	Sequencer string `json:"sequencer"`
	Size      int64  `json:"size"`
	VersionID string `json:"version-id"`
}

// Record is the metadata row written for one upload.
type Record struct {
	ID        string    `json:"id"`
	Account   string    `json:"account"`
	Detail    string    `json:"detail"`
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	Uploader  string    `json:"uploader"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

func detailOf(u upload) Detail {
	return Detail{
		Bucket: DetailBucket{Name: u.Bucket},
		Object: DetailObject{
			ETag:      u.ETag,
			Key:       u.Key,
			Sequencer: u.Sequencer,
			Size:      u.Size,
			VersionID: u.VersionID,
		},
	}
}

func newRecord(id, account string, u upload, now time.Time) (Record, error) {
	detail, err := json.Marshal(detailOf(u))
	if err != nil {
		return Record{}, fmt.Errorf("marshal detail: %w", err)
	}

	now = now.UTC()
	return Record{
		ID:        id,
		Account:   account,
		Detail:    string(detail),
		FileName:  u.FileName(),
		FileSize:  u.Size,
		Uploader:  u.Uploader,
		Timestamp: now.Format(TimestampLayout),
		CreatedAt: now,
	}, nil
}

func (r Record) row() table.Row {
	return table.Row{
		ID:        r.ID,
		Account:   r.Account,
		Detail:    r.Detail,
		FileName:  r.FileName,
		FileSize:  r.FileSize,
		Uploader:  r.Uploader,
		Timestamp: r.Timestamp,
	}
}
