// Command vcable runs and exercises a virtual audio cable.
package main

import (
	"context"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
