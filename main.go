package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goldyfruit/kafka-ec2-inventory/cmd"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/exit"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := cmd.NewRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	var exitErr *exit.Error
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exit.CodeConfig
}
