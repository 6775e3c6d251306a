package main

import "breathe/internal/breath"

func main() {
	breath.RunDesktop()
}
