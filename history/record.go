package history

import (
	"fmt"
	"time"
)

// Record is one lecture saved to disk.
type Record struct {
	Course       string    `json:"course"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	Directory    string    `json:"directory"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

func (r *Record) encode() string {
	return fmt.Sprintf("%s/%s", r.Course, r.Filename)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s (%s)", r.Filename, r.DownloadedAt.Format(time.DateTime))
}
