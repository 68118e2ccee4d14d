// Command landmarks builds and inspects the core-graph landmark store for a
// contracted graph produced by preprocess.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/azybler/corelandmarks/pkg/graph"
	"github.com/azybler/corelandmarks/pkg/landmark"
	"github.com/azybler/corelandmarks/pkg/weighting"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: landmarks build --graph graph.bin --dir landmarks/ [--k 16] [--min-nodes 100] [--weighting shortest|fastest]")
	fmt.Fprintln(os.Stderr, "       landmarks inspect --graph graph.bin --dir landmarks/ [--weighting shortest|fastest]")
}

func pickWeighting(name string) (weighting.Weighting, error) {
	switch name {
	case "", "shortest":
		return weighting.NewDistanceWeighting(), nil
	case "fastest":
		return weighting.NewFastestWeighting(50), nil
	default:
		return nil, fmt.Errorf("unknown weighting %q (want shortest or fastest)", name)
	}
}

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	graphPath := fs.String("graph", "", "Path to a CH graph produced by preprocess")
	dir := fs.String("dir", "landmarks", "Output directory for the weight/subnetwork tables")
	k := fs.Uint("k", 16, "Number of landmarks per subnetwork")
	minNodes := fs.Uint("min-nodes", 100, "Minimum component size to select landmarks for, below which it's tagged UNCLEAR")
	weightingName := fs.String("weighting", "shortest", "Weighting to build landmarks for: shortest or fastest")
	fs.Parse(args)

	if *graphPath == "" {
		fmt.Fprintln(os.Stderr, "landmarks build: --graph is required")
		os.Exit(1)
	}

	w, err := pickWeighting(*weightingName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	log.Printf("Reading CH graph from %s...", *graphPath)
	chg, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("failed to read graph: %v", err)
	}
	log.Printf("Graph: %d nodes, %d core nodes", chg.NumNodes, chg.CoreNodeCount)

	opts := landmark.BuildOptions{K: uint32(*k), MinimumNodes: uint32(*minNodes)}

	start := time.Now()
	l, err := landmark.Create(*dir, chg, w, opts)
	if err != nil {
		log.Fatalf("failed to create landmark store: %v", err)
	}
	defer l.Close()

	log.Printf("Building %s landmarks (K=%d, min-nodes=%d)...", w.Name(), *k, *minNodes)
	if err := l.Build(opts); err != nil {
		log.Fatalf("build failed: %v", err)
	}
	if err := l.Flush(); err != nil {
		log.Fatalf("failed to flush landmark store: %v", err)
	}

	log.Printf("Done in %s. Output: %s", time.Since(start).Round(time.Millisecond), *dir)
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	graphPath := fs.String("graph", "", "Path to a CH graph produced by preprocess")
	dir := fs.String("dir", "landmarks", "Directory holding the weight/subnetwork tables")
	weightingName := fs.String("weighting", "shortest", "Weighting whose landmark store to inspect: shortest or fastest")
	fs.Parse(args)

	if *graphPath == "" {
		fmt.Fprintln(os.Stderr, "landmarks inspect: --graph is required")
		os.Exit(1)
	}

	w, err := pickWeighting(*weightingName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	chg, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("failed to read graph: %v", err)
	}

	l, err := landmark.Load(*dir, chg, w)
	if err != nil {
		log.Fatalf("failed to load landmark store: %v", err)
	}
	defer l.Close()

	wt := l.WeightTable()
	subnet := l.SubnetworkTable()

	fmt.Printf("weighting:      %s\n", w.Name())
	fmt.Printf("core nodes:     %d\n", wt.CoreNodeCount())
	fmt.Printf("landmarks (K):  %d\n", wt.K())
	fmt.Printf("subnetworks:    %d (including the UNSET placeholder)\n", wt.NumSubnetworks())
	fmt.Printf("factor:         %.6f\n", wt.Codec().Factor())

	unset, unclear := 0, 0
	counts := map[int8]int{}
	for i := uint32(0); i < subnet.CoreNodeCount(); i++ {
		id := subnet.Get(i)
		switch id {
		case landmark.SubnetworkUnset:
			unset++
		case landmark.SubnetworkUnclear:
			unclear++
		default:
			counts[id]++
		}
	}
	fmt.Printf("nodes unset:    %d\n", unset)
	fmt.Printf("nodes unclear:  %d\n", unclear)
	for id := uint32(1); id < wt.NumSubnetworks(); id++ {
		fmt.Printf("subnetwork %3d: %d nodes, landmarks %v\n", id, counts[int8(id)], wt.LandmarkIDs(id))
	}
}
