package main

import "os"

func main() {
	exit(1)
}

func exit(code int) {
	os.Exit(code)
}

type app struct{}

func (app) main() {
	os.Exit(1)
}
