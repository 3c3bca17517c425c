// Command manage runs one-off administration tasks against the user store.
//
//	manage migrate
//	manage createuser --email alice@acid.net --name Alice --scopes users/whoami,logs/read
//	manage listusers
//	manage deleteuser --email alice@acid.net
//	manage settings
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jrsteele09/go-api-skeleton/internal/config"
	"github.com/jrsteele09/go-api-skeleton/internal/logging"
)

func main() {
	c, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(c.GetEnv(), "warn")

	a := newApp(c, os.Stdout)
	if err := a.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
