package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/configstore"
)

func main() {
	count := flag.Int("count", 1000, "Number of keys to write")
	format := flag.String("format", "json", "File format (json, yaml)")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	if *count <= 0 {
		fmt.Fprintln(os.Stderr, "count must be positive")
		os.Exit(1)
	}

	benchDir, err := os.MkdirTemp("", "configstore_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := configstore.New("bench", nil,
		configstore.WithBaseDir(benchDir),
		configstore.WithFormat(*format),
		configstore.WithLogger(logger),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Every Set rewrites the whole file, so cost grows with the document.
	fmt.Printf("Writing %d keys to %s...\n", *count, store.Path())
	start := time.Now()
	for i := 0; i < *count; i++ {
		if err := store.Set(ctx, fmt.Sprintf("group%d.key%d", i%10, i), i); err != nil {
			panic(err)
		}
	}
	writeDur := time.Since(start)

	start = time.Now()
	for i := 0; i < *count; i++ {
		if _, err := store.Get(ctx, fmt.Sprintf("group%d.key%d", i%10, i)); err != nil {
			panic(err)
		}
	}
	readDur := time.Since(start)

	info, err := os.Stat(store.Path())
	if err != nil {
		panic(err)
	}

	fmt.Printf("Set: %v total, %v/op\n", writeDur, writeDur/time.Duration(*count))
	fmt.Printf("Get: %v total, %v/op\n", readDur, readDur/time.Duration(*count))
	fmt.Printf("File size: %d bytes\n", info.Size())
}
