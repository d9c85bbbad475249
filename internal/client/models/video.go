package models

import (
	"encoding/json"
	"fmt"
)

type VideoStatus string

const (
	VideoCompleted  VideoStatus = "completed"
	VideoProcessing VideoStatus = "processing"
	VideoFailed     VideoStatus = "failed"
)

// VideoRecord is a generated video as returned by GET /videos/user/{id}.
// InputText is kept raw: it is usually a JSON document encoded as a string.
type VideoRecord struct {
	ID        int64
	InputText json.RawMessage
	CreatedAt string
	Status    string
	DriveLink string
}

type videoRecordWire struct {
	ID        json.RawMessage `json:"id"`
	InputText json.RawMessage `json:"input_text"`
	CreatedAt json.RawMessage `json:"created_at"`
	Status    json.RawMessage `json:"status"`
	DriveLink json.RawMessage `json:"drive_link"`
}

func (v *VideoRecord) UnmarshalJSON(b []byte) error {
	var w videoRecordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	id, err := flexInt(w.ID)
	if err != nil {
		return fmt.Errorf("video id: %w", err)
	}
	*v = VideoRecord{
		ID:        id,
		InputText: w.InputText,
		CreatedAt: flexString(w.CreatedAt),
		Status:    flexString(w.Status),
		DriveLink: flexString(w.DriveLink),
	}
	return nil
}

// Video is the gallery's view of a record.
type Video struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   string
	Status      VideoStatus
	DriveURL    string
}
