package main

import (
	cmd "github.com/HafizAhmed223/backend/internal/cli"
)

func main() {
	cmd.Execute()
}
