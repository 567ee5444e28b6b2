package main

import "munext_backend/internal/app"

func main() {
	app.Run()
}
