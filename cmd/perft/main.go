package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/samstronghammer/chess/internal/game"
)

func main() {
	fen := flag.String("fen", "", "FEN record (defaults to the initial position)")
	gameString := flag.String("game", "", "77-character game string, used instead of -fen")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	g, err := load(*fen, *gameString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading position: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		type kv struct {
			move string
			n    uint64
		}
		div := g.PerftDivide(*depth)
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{strings.ToLower(m.From.String() + m.To.String()), n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].move < arr[j].move })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.move, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += g.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Depth Nodes Time NPS
	fmt.Printf("%d\t%d\t%s\t%.0f\n", *depth, totalNodes, elapsed, nps)
}

func load(fen, gameString string) (*game.Game, error) {
	switch {
	case fen != "" && gameString != "":
		return nil, fmt.Errorf("use either -fen or -game")
	case gameString != "":
		return game.NewGameFromString(gameString)
	case fen != "":
		return game.NewGameFromFEN(fen)
	}
	return game.NewGame(), nil
}
