package handlers

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/digitalocean/godo"
)

// Factory function variables for doctor - can be replaced in tests.
var (
	// lookPath finds a binary on PATH.
	lookPath = exec.LookPath

	// checkToken verifies the token against the API.
	checkToken = func(ctx context.Context, token string) error {
		client := godo.NewFromToken(token)
		_, _, err := client.Account.Get(ctx)
		return err
	}
)

// Doctor checks that the environment can run a deployment: doctl installed,
// token present, and the API reachable with it.
func Doctor(ctx context.Context) error {
	fmt.Println("Checking deployment prerequisites...")
	fmt.Println()

	failed := 0

	if _, err := lookPath("doctl"); err != nil {
		printRow("doctl", false, "not found; install it from https://docs.digitalocean.com/reference/doctl/how-to/install/")
		failed++
	} else {
		printRow("doctl", true, "")
	}

	token := os.Getenv("DIGITALOCEAN_TOKEN")
	if token == "" {
		printRow("DIGITALOCEAN_TOKEN", false, "not set")
		printRow("API access", false, "skipped (no token)")
		failed += 2
	} else {
		printRow("DIGITALOCEAN_TOKEN", true, "")
		if err := checkToken(ctx, token); err != nil {
			printRow("API access", false, fmt.Sprintf("token rejected: %v", err))
			failed++
		} else {
			printRow("API access", true, "")
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Println("All checks passed. Ready to deploy.")
	return nil
}

func printRow(name string, ok bool, extra string) {
	indicator := "✅" // green check
	if !ok {
		indicator = "❌" // red X
	}

	if extra != "" {
		fmt.Printf("  %s  %-22s %s\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s  %s\n", indicator, name)
	}
}
