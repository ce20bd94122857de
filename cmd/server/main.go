package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/routingalgorithm"
	"github.com/JOSU10xD/MapMyCampus/pkg/kv"
	"github.com/JOSU10xD/MapMyCampus/pkg/mapdata"
	"github.com/JOSU10xD/MapMyCampus/pkg/server/rest"
	"github.com/JOSU10xD/MapMyCampus/pkg/server/rest/service"
	"github.com/JOSU10xD/MapMyCampus/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr    = flag.String("listenaddr", ":5000", "server listen address")
	mapFile       = flag.String("f", "building.json", "building map file with nodes, edges and connectors")
	pebbleDir     = flag.String("pebbledir", "mapmycampusDB", "directory for the pebble node cell db")
	tickPeriod    = flag.Duration("tick", 100*time.Millisecond, "engine tick period per session")
	stepDistance  = flag.Float64("step", navigator.DefaultStepDistance, "distance walked per tick while input is held")
	deadEndRePlan = flag.Bool("deadend-reroute", false, "replan instead of halting when the route hits a dead end")
)

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
	fmt.Printf("loaded %q: %d nodes, %d edges\n", buildingMap.Name, graphStore.NodeCount(), graphStore.EdgeCount())

	db, err := pebble.Open(*pebbleDir, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}

	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	go func() {
		kvDB.CreateNodeCells(graphStore.Nodes())
	}()

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	planner := routingalgorithm.NewRouteAlgorithm(graphStore)
	floorIndex := snap.NewFloorIndex(graphStore.Nodes())

	policy := navigator.DeadEndHalt
	if *deadEndRePlan {
		policy = navigator.DeadEndReroute
	}

	navigatorSvc := service.NewNavigationService(graphStore, planner, floorIndex, kvDB, reg, *tickPeriod, policy, *stepDistance)
	rest.NavigatorRouter(r, navigatorSvc, m)

	fmt.Printf("server started at %s\n", *listenAddr)
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
