package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pkg/profile"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/suite"
)

func main() {
	if err := run(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		fen, suitePath, cacheDir, profMode string
		depth, maxDepth                    int
		divide, verify, debug              bool
	)
	flag.StringVar(&fen, "fen", board.StartFEN, "Position to count.")
	flag.IntVar(&depth, "depth", 4, "Perft depth.")
	flag.BoolVar(&divide, "divide", false, "Print the count below each root move.")
	flag.StringVar(&suitePath, "suite", "", "EPD perft suite (.epd, .zst or .bz2).")
	flag.IntVar(&maxDepth, "maxdepth", 0, "Skip suite expectations deeper than this (0 = all).")
	flag.BoolVar(&verify, "verify", false, "Cross-check every node against dragontoothmg.")
	flag.StringVar(&cacheDir, "cache", os.Getenv("CHESSCORE_CACHE"), "Perft cache directory (\"mem\" for in-memory).")
	flag.StringVar(&profMode, "profile", "", "Write a profile: cpu or mem.")
	flag.BoolVar(&debug, "debug", false, "Audit the board on every move.")
	flag.Parse()

	if err := checkDepths(depth, maxDepth); err != nil {
		return err
	}

	if debug {
		board.Debug = true
	} else if v, err := strconv.ParseBool(os.Getenv("CHESSCORE_DEBUG")); err == nil {
		board.Debug = v
	}

	switch profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profMode)
	}

	var cache movegen.Cache
	if cacheDir != "" {
		pc, err := openCache(cacheDir)
		if err != nil {
			return fmt.Errorf("could not open perft cache: %w", err)
		}
		defer func() {
			s := pc.Stats()
			log.Printf("cache: %d hits, %d misses (%.1f%%), %d collisions, %d writes",
				s.Hits, s.Misses, s.HitRate(), s.Collisions, s.Writes)
			pc.Close()
		}()
		cache = pc
	}

	switch {
	case suitePath != "":
		return runSuite(suitePath, maxDepth, cache)
	case verify:
		return runVerify(fen, depth)
	case divide:
		return runDivide(fen, depth)
	}
	return runPerft(fen, depth, cache)
}

// checkDepths rejects negative -depth and -maxdepth values.
func checkDepths(depth, maxDepth int) error {
	if depth < 0 {
		return fmt.Errorf("invalid depth %d", depth)
	}
	if maxDepth < 0 {
		return fmt.Errorf("invalid maxdepth %d", maxDepth)
	}
	return nil
}

func openCache(dir string) (*storage.PerftCache, error) {
	if dir == "mem" {
		return storage.OpenInMemory()
	}
	return storage.Open(dir)
}

func runPerft(fen string, depth int, cache movegen.Cache) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}

	start := time.Now()
	nodes, err := movegen.PerftCached(b, depth, cache)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("perft(%d) = %d in %v", depth, nodes, elapsed)
	if elapsed > 0 {
		fmt.Printf(" (%.0f nps)", float64(nodes)/elapsed.Seconds())
	}
	fmt.Println()
	return nil
}

func runDivide(fen string, depth int) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}

	var total uint64
	for _, e := range movegen.Divide(b, depth) {
		fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Printf("\nNodes searched: %d\n", total)
	return nil
}

func runVerify(fen string, depth int) error {
	start := time.Now()
	nodes, err := movegen.CrossCheck(fen, depth)
	if err != nil {
		return err
	}
	fmt.Printf("verified %d nodes at depth %d in %v\n", nodes, depth, time.Since(start))
	return nil
}

func runSuite(path string, maxDepth int, cache movegen.Cache) error {
	src, err := suite.NewSource(path)
	if err != nil {
		return err
	}
	if err := src.Open(); err != nil {
		return err
	}
	defer src.Close()

	sum, err := suite.Run(src, suite.Options{
		MaxDepth: maxDepth,
		Cache:    cache,
		OnResult: func(r suite.Result) {
			fmt.Printf("%s [%v/%v]\n", r, src.BytesRead(), src.Size())
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d positions, %d checks, %d failures, %d nodes in %v\n",
		sum.Positions, sum.Checks, sum.Failures, sum.Nodes, sum.Elapsed)
	if sum.Failures > 0 {
		return fmt.Errorf("%d suite checks failed", sum.Failures)
	}
	return nil
}
