package domain

import "time"

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

type Message struct {
	ID          string
	Sender      string
	Content     string
	StressLevel int
	At          time.Time
}
