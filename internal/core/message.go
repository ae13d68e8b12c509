package core

import "fmt"

// Message is a chat line attributed to a sender.
type Message struct {
	From string
	Body string
}

func (m Message) String() string {
	return fmt.Sprintf("<%s> %s", m.From, m.Body)
}
