package stretch_test

import (
	"fmt"

	"github.com/cwbudde/algo-stretch/dsp/stretch"
)

func ExampleEngine_ComputeBlock() {
	e, err := stretch.New(4)
	if err != nil {
		panic(err)
	}

	recording := make([]float32, 1024)
	blocks := 0
	for e.ReadIndex() <= len(recording)-e.Size() {
		if _, err := e.ComputeBlock(recording); err != nil {
			panic(err)
		}
		blocks++
	}

	fmt.Printf("hop=%g blocks=%d output=%d samples\n", e.Displacement(), blocks, blocks*e.Half())

	// Output:
	// hop=16 blocks=57 output=3648 samples
}
