package main

import (
	"fmt"
	xos "os"
)

func main() {
	fmt.Println("start")
	if len(xos.Args) > 1 {
		xos.Exit(2) // want "using exit in main"
	}
	defer func() {
		xos.Exit(0)
	}()
	xos.Exit(1) // want "using exit in main"
}
