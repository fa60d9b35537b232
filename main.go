package main

import (
	"runtime"

	"github.com/intothevoid/mirrorclone/cmd"
)

func init() {
	// OpenCV windows must be created and pumped from the main thread
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
