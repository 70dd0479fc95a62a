package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/azybler/reachmap/pkg/poi"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "pois.geojson", "Output GeoJSON file path")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 40.60,-8.70,40.68,-8.60)")
	aveiro := flag.Bool("aveiro", false, "Shortcut for --bbox 40.60,-8.70,40.68,-8.60 (Aveiro bounding box)")
	unnamed := flag.Bool("unnamed", false, "Keep POIs without a name tag")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: extract-pois --input <file.osm.pbf> [--output pois.geojson] [--aveiro | --bbox minLat,minLng,maxLat,maxLng] [--unnamed]")
		os.Exit(1)
	}

	opts := poi.OSMOptions{Unnamed: *unnamed, Procs: 4}
	if *aveiro {
		opts.BBox = poi.BBox{MinLat: 40.60, MaxLat: 40.68, MinLng: -8.70, MaxLng: -8.60}
		log.Println("Using Aveiro bounding box filter: lat [40.60, 40.68], lng [-8.70, -8.60]")
	} else if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		_, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng)
		if err != nil {
			log.Fatalf("Invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = poi.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	start := time.Now()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Extracting POIs...")
	fc, err := poi.ExtractOSM(context.Background(), f, opts)
	if err != nil {
		log.Fatalf("Failed to extract POIs: %v", err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		log.Fatalf("Failed to encode GeoJSON: %v", err)
	}
	log.Printf("Writing %d POIs to %s...", len(fc.Features), *output)
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("Done in %s. Output: %s (%.1f KB)", time.Since(start).Round(time.Millisecond), *output, float64(len(data))/1024)
}
