package dto

import "time"

type MessageOutput struct {
	ID          string
	Sender      string
	Content     string
	StressLevel int
	At          time.Time
}
