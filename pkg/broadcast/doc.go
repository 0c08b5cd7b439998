// Package broadcast delivers stream notifications to goroutines over
// buffered channels.
//
// Stream handlers run on the producer's goroutine, usually a scheduler loop,
// and must not block it. A broadcast Subscriber moves values onto a channel
// instead, so a consumer can range over them at its own pace:
//
//	sub := broadcast.Subscribe(ctx, prices, 64)
//	defer sub.Close()
//
//	for msg := range sub.Receive() {
//		fmt.Println(msg.Data)
//	}
//	if err := sub.Err(); err != nil {
//		log.Println("stream failed:", err)
//	}
//
// Subscribing several consumers to a multicast source broadcasts one upstream
// execution to all of them.
//
// # Slow consumers
//
// Delivery never blocks. When a subscriber's buffer is full the value is
// dropped for that subscriber and counted in Dropped.
//
// # Termination
//
// The channel is closed when the stream completes or fails, when the context
// ends, or when Close is called. Err reports why: nil for completion and
// Close, the stream error, or the context error.
package broadcast
