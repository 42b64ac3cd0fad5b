// Command idsload loads the IDS decomposition table, enriches it with
// Kangxi radicals and Hanyu Pinlu readings, and optionally stores the result
// in PostgreSQL.
//
// Subcommands:
//
//	load      parse and enrich the sources, print a summary or TSV
//	analyze   split pinyin readings into segmental form and tone
//	migrate   apply database migrations
//	seed      load and replace the stored table
//	query     list stored characters
//	version   print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCommand(&cliContext{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
