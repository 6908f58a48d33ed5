package recorder

import "time"

// EventTypeRecorded is the event_type header of post-write notifications.
const EventTypeRecorded = "metadata.recorded"

// RecordedEvent is published after a metadata record has been written.
type RecordedEvent struct {
	ID         string    `json:"id"`
	Account    string    `json:"account"`
	Bucket     string    `json:"bucket"`
	ObjectKey  string    `json:"object_key"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	Uploader   string    `json:"uploader"`
	RecordedAt time.Time `json:"recorded_at"`
}

func recordedEvent(rec Record, u upload) RecordedEvent {
	return RecordedEvent{
		ID:         rec.ID,
		Account:    rec.Account,
		Bucket:     u.Bucket,
		ObjectKey:  u.Key,
		FileName:   rec.FileName,
		SizeBytes:  rec.FileSize,
		Uploader:   rec.Uploader,
		RecordedAt: rec.CreatedAt,
	}
}
