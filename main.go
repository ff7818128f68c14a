package main

import (
	"github.com/pennyledger/expense-ingest/cmd"
)

func main() {
	cmd.Execute()
}
