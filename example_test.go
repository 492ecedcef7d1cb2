package cable_test

import (
	"context"
	"fmt"

	cable "github.com/tphakala/go-audio-cable"
)

func ExampleNewRingBuffer() {
	rb := cable.NewRingBuffer[float32](8)

	fmt.Println(rb.Write([]float32{1, 2, 3, 4, 5}))
	out := make([]float32, 3)
	fmt.Println(rb.Read(out), out)
	fmt.Println(rb.Available(), rb.FreeSpace())
	// Output:
	// 5
	// 3 [1 2 3]
	// 2 6
}

func ExampleCable_ProcessAudio() {
	cfg := cable.DefaultConfig()
	cfg.Channels = 1
	cfg.BufferSize = 16
	cfg.ForwardOutput = true

	c, err := cable.New(cfg)
	if err != nil {
		panic(err)
	}
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		panic(err)
	}
	defer c.Close(ctx)

	out := make([]float32, 4)
	n, _ := c.ProcessAudio([]float32{0.25, 0.5, 0.75, 1}, out)
	fmt.Println(n, out[:n])
	// Output:
	// 4 [0.25 0.5 0.75 1]
}

func ExampleEncodeSamples() {
	data := cable.EncodeSamples([]float32{1, 0, -1}, cable.S16LE)
	fmt.Printf("% x\n", data)
	// Output:
	// ff 7f 00 00 01 80
}
