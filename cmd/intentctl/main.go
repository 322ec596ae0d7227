package main

import "IntentBridge/internal/cli"

func main() {
	cli.Execute()
}
