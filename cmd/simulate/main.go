package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/routingalgorithm"
	"github.com/JOSU10xD/MapMyCampus/pkg/mapdata"

	"golang.org/x/exp/rand"
)

var (
	mapFile  = flag.String("f", "building.json", "building map file with nodes, edges and connectors")
	trips    = flag.Int("trips", 10, "number of random trips to walk")
	step     = flag.Float64("step", navigator.DefaultStepDistance, "distance walked per tick")
	maxTicks = flag.Int("maxticks", 100000, "tick budget per trip before giving up")
	seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "rng seed for reproducible runs")
)

// walks random trips through the building in automatic mode, one tick at a
// time, and reports how each one ended. Useful as a smoke test for a new
// building map.
func main() {
	flag.Parse()

	buildingMap, err := mapdata.LoadBuildingMap(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	graphStore, err := buildingMap.BuildGraph()
	if err != nil {
		log.Fatal(err)
	}
	nodes := graphStore.Nodes()
	if len(nodes) < 2 {
		log.Fatal("building map has fewer than two nodes, nothing to walk")
	}

	rng := rand.New(rand.NewSource(*seed))
	planner := routingalgorithm.NewRouteAlgorithm(graphStore)

	arrived := 0
	for trip := 1; trip <= *trips; trip++ {
		from := nodes[rng.Intn(len(nodes))]
		to := nodes[rng.Intn(len(nodes))]
		for to.ID == from.ID {
			to = nodes[rng.Intn(len(nodes))]
		}

		eng := navigator.New(graphStore, planner, navigator.Config{
			Mode:         navigator.ModeAutomatic,
			StepDistance: *step,
		})
		if err := eng.NavigateTo(from.ID, to.ID); err != nil {
			fmt.Printf("trip %d: %s -> %s: no route (%v)\n", trip, from.ID, to.ID, err)
			continue
		}
		eng.SetDrive(true)

		ticks := 0
		for eng.Status() == datastructure.StatusFollowing && ticks < *maxTicks {
			eng.Tick()
			ticks++
		}

		pos := eng.Position()
		fmt.Printf("trip %d: %s -> %s: %s after %d ticks at (%.2f, %.2f) floor %d\n",
			trip, from.ID, to.ID, eng.Status(), ticks, pos.X, pos.Y, pos.Floor)
		if eng.Status() == datastructure.StatusDestinationReached {
			arrived++
		}
	}

	fmt.Printf("%d/%d trips arrived\n", arrived, *trips)
}
