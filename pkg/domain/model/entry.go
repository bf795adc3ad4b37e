package model

import "time"

// TransformedEntry is an archive entry whose content has passed through the
// line-escape transform. It is dropped right after the sink consumes it.
type TransformedEntry struct {
	Name     string
	Data     []byte
	Modified time.Time
}
