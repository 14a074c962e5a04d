package main

import "codecheck_backend/internal/app"

func main() {
	app.Run()
}
