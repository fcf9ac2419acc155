// GoCube Monitor - shows decoded GoCube messages and the notation keys they
// produce.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SeamusWaldron/puzzled"
	"github.com/SeamusWaldron/puzzled/internal/ble"
	"github.com/SeamusWaldron/puzzled/internal/protocol"
)

func main() {
	fmt.Println("GoCube Monitor")
	fmt.Println("==============")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := ble.NewClient(logger)
	if err != nil {
		fmt.Printf("Failed to enable adapter: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	messages := make(chan *protocol.Message, 100)
	client.SetMessageCallback(func(msg *protocol.Message) {
		select {
		case messages <- msg:
		default:
		}
	})

	fmt.Println("Scanning for GoCube...")
	if err := client.ConnectFirst(ctx, 10*time.Second); err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect()

	fmt.Printf("Connected: %s\n", client.DeviceName())
	if err := client.RequestState(); err != nil {
		fmt.Printf("State request failed: %v\n", err)
	}
	fmt.Println()
	fmt.Println("Rotate the cube to see data...")
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	session := puzzled.New(puzzled.WithLogger(logger))
	session.SetSolvedCallback(func() {
		fmt.Println("      solved!")
		if err := client.FlashBacklight(); err != nil {
			fmt.Printf("      flash failed: %v\n", err)
		}
	})
	colors := protocol.DefaultColorFaces()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nDisconnecting...")
			return
		case msg := <-messages:
			fmt.Printf("[%s] %s\n", protocol.MessageTypeName(msg.Type), hex.EncodeToString(msg.Payload))

			keys, err := protocol.MessageKeys(msg, colors)
			if err != nil {
				fmt.Printf("      decode error: %v\n", err)
				continue
			}
			for _, k := range keys {
				if err := session.Input(k); err != nil {
					fmt.Printf("      rejected %s: %v\n", k, err)
				}
			}
			if len(keys) > 0 {
				fmt.Printf("      keys %q  history %v  solved %t\n", string(runes(keys)), session.History(), session.Puzzle().Solved())
			}
		}
	}
}

func runes(keys []puzzled.Key) []rune {
	out := make([]rune, len(keys))
	for i, k := range keys {
		out[i] = rune(k)
	}
	return out
}
