package core

import (
	"fmt"
	"testing"
)

func BenchmarkBroadcastMessage(b *testing.B) {
	hub := newTestHub(HubOptions{EventBuffer: 1})

	const members = 50
	var sender *Client
	for i := 0; i < members; i++ {
		c, err := hub.RegisterClient(fmt.Sprintf("user%d", i))
		if err != nil {
			b.Fatal(err)
		}
		if err := hub.JoinRoom(c.ID, LobbyRoom); err != nil {
			b.Fatal(err)
		}
		if sender == nil {
			sender = c
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Tiny buffers mean most sends drop, which is the point: the
		// benchmark measures fan-out, not consumers.
		if err := hub.BroadcastMessage(LobbyRoom, sender.ID, "user0", "benchmark payload"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilterChainApply(b *testing.B) {
	chain := NewFilterChain()
	count := 0
	chain.Add(func(username, body string) FilterAction {
		count++
		return Allow()
	})
	chain.Add(func(username, body string) FilterAction {
		return ModifyBody(body)
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chain.Apply("alice", "some chat message body")
	}
}
