// Command tmxinfo prints the structure of Tiled maps.
//
//	tmxinfo [-format text|yaml] [-v] map.tmx...
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/retroblast-engine/tiled"
)

func main() {
	format := flag.String("format", "text", "output format: text or yaml")
	verbose := flag.Bool("v", false, "log resource loading to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tmxinfo [-format text|yaml] [-v] map.tmx...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *format != "text" && *format != "yaml" {
		log.Fatalf("unknown format %q", *format)
	}
	if *verbose {
		tiled.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	failed := false
	for _, p := range flag.Args() {
		m, err := tiled.Open(p)
		if err != nil {
			log.Print(err)
			failed = true
			continue
		}
		switch *format {
		case "yaml":
			err = writeYAML(os.Stdout, p, m)
		default:
			err = writeText(os.Stdout, p, m)
		}
		if err != nil {
			log.Fatal(err)
		}
	}
	if failed {
		os.Exit(1)
	}
}
