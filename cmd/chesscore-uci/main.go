package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	cacheDir   = flag.String("cache", "", "perft cache directory (\"mem\" for in-memory)")
	debug      = flag.Bool("debug", false, "audit the board on every move")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if *debug {
		board.Debug = true
	} else if v, err := strconv.ParseBool(os.Getenv("CHESSCORE_DEBUG")); err == nil {
		board.Debug = v
	}

	dir := *cacheDir
	if dir == "" {
		dir = os.Getenv("CHESSCORE_CACHE")
	}

	var cache movegen.Cache
	if dir != "" {
		pc, err := openCache(dir)
		if err != nil {
			log.Printf("Warning: perft cache not opened: %v", err)
		} else {
			defer pc.Close()
			cache = pc
		}
	}

	// Create and run UCI protocol handler
	protocol := uci.New(os.Stdin, os.Stdout, cache)
	if err := protocol.Run(); err != nil {
		log.Printf("uci: %v", err)
	}
}

// openCache opens the perft cache; "mem" keeps it in memory and "default"
// uses the platform data directory.
func openCache(dir string) (*storage.PerftCache, error) {
	switch dir {
	case "mem":
		return storage.OpenInMemory()
	case "default":
		return storage.Open("")
	}
	return storage.Open(dir)
}
