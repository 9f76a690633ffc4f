package main

import (
	"fmt"
	"os"
)

// @title Car Expense Backend API
// @version 1.0
// @description Shared car cost ledger: rides, distance-proportional expense allocation and settlements.

// @host localhost:3001
// @BasePath /api
func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
