package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
)

// UCI implements the position-keeping subset of the Universal Chess
// Interface: it sets up positions, replays moves and runs perft. There is
// no search; other "go" forms are answered with an info string.
type UCI struct {
	position *board.Board
	cache    movegen.Cache

	in  io.Reader
	out io.Writer
}

// New creates a new UCI protocol handler reading commands from in and
// writing responses to out. cache may be nil.
func New(in io.Reader, out io.Writer, cache movegen.Cache) *UCI {
	return &UCI{
		position: board.NewBoard(),
		cache:    cache,
		in:       in,
		out:      out,
	}
}

// Position returns the current board.
func (u *UCI) Position() *board.Board {
	return u.position
}

// Run reads commands until "quit" or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			if board.Debug {
				log.Printf("uci: position %s", strings.Join(args, " "))
			}
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Nothing runs in the background.
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.println(u.position.String())
			u.printf("Fen: %s\n", u.position.ToFEN())
		case "perft":
			u.handlePerft(args)
		default:
			u.printf("info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println("")
	u.println("option name Debug type check default " + strconv.FormatBool(board.Debug))
	u.println("uciok")
}

// handleNewGame resets the position.
func (u *UCI) handleNewGame() {
	u.position = board.NewBoard()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// A bad FEN leaves the previous position in place. Moves are applied until
// the first one that is malformed or illegal.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	// Find "moves" keyword
	fenEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moveStart = i, i+1
			break
		}
	}

	var pos *board.Board
	switch args[0] {
	case "startpos":
		pos = board.NewBoard()
	case "fen":
		fenStr := strings.Join(args[1:fenEnd], " ")
		var err error
		pos, err = board.ParseFEN(fenStr)
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			return
		}
	default:
		return
	}
	u.position = pos

	// Apply moves
	for _, moveStr := range args[moveStart:] {
		if err := u.applyMove(moveStr); err != nil {
			u.printf("info string %v\n", err)
			return
		}
	}

	if board.Debug {
		log.Printf("uci: after position setup hash=%016x inCheck=%v fen=%s",
			u.position.Hash(), u.position.InCheck(), u.position.ToFEN())
	}
}

// applyMove parses, validates and plays one move, retracting it if it
// leaves the mover's king attacked.
func (u *UCI) applyMove(moveStr string) error {
	m, err := movegen.ParseMove(u.position, moveStr)
	if err != nil {
		return err
	}
	if err := u.position.ValidateMove(m); err != nil {
		return err
	}
	if !u.position.MakeMove(m) {
		u.position.TakeMove()
		return fmt.Errorf("%w: %s leaves the king in check", board.ErrInvalidMove, moveStr)
	}
	return nil
}

// handleGo supports "go perft N". Search is not available.
func (u *UCI) handleGo(args []string) {
	if len(args) > 0 && args[0] == "perft" {
		u.handleDivide(args[1:])
		return
	}
	u.println("info string search is not supported; use go perft <depth>")
	u.println("bestmove 0000")
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	// Handle options
	switch strings.ToLower(name) {
	case "debug":
		board.Debug = strings.ToLower(value) == "true"
		u.printf("info string Debug %v\n", board.Debug)
	default:
		u.printf("info string Unknown option: %s\n", name)
	}
}

func parseDepth(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("invalid depth: %s", args[0])
	}
	return depth, nil
}

// handleDivide prints the node count below each root move, as "go perft"
// does in other engines.
func (u *UCI) handleDivide(args []string) {
	depth, err := parseDepth(args, 1)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}

	start := time.Now()
	var total uint64
	for _, e := range movegen.Divide(u.position, depth) {
		u.printf("%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	u.println("")
	u.printf("Nodes searched: %d\n", total)
	u.printf("Time: %v\n", time.Since(start))
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth, err := parseDepth(args, 5)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}

	start := time.Now()
	nodes, err := movegen.PerftCached(u.position, depth, u.cache)
	elapsed := time.Since(start)
	if err != nil {
		u.printf("info string perft failed: %v\n", err)
		return
	}

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		u.printf("NPS: %.0f\n", nps)
	}
}
