// Command labhttp serves the laboratory equipment catalog.
//
// It is configured entirely through LABHTTP_* environment variables and runs until it
// receives SIGINT or SIGTERM.
package main

import (
	"fmt"
	"os"

	"github.com/advdv/labhttp/labapp"
)

func main() {
	env, err := labapp.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("=== %s: catálogo de equipos de laboratorio ===\n", env.ServiceName)
	fmt.Printf("dirección: %s\n", env.Addr)
	fmt.Printf("catálogo:  %s\n", env.CatalogSource)
	fmt.Printf("workers:   %d\n", env.Workers)

	labapp.NewApp().Run()
}
