// Command stretchpedal records mono audio and plays it back time-stretched
// with randomized spectral phases.
package main

func main() {
	Execute()
}
