package main

import "github.com/mvp-joe/sg-mcp/internal/cli"

func main() {
	cli.Execute()
}
