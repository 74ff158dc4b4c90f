package types

// Wire layouts for calendar dates and timestamps, used in table files and
// API payloads alike.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)
