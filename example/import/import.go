package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/recording"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	inFile := flag.String("i", "poses.jsonl", "Pose detection output, one JSON array of poses per line")
	dbFile := flag.String("r", "poses.db", "Pose recording database to import into")
	width := flag.Int("width", 640, "Width of the video the poses were detected on")
	height := flag.Int("height", 480, "Height of the video the poses were detected on")

	flag.Parse()

	in, err := os.Open(*inFile)

	if err != nil {
		log.Fatal("Error opening input: ", err)
	}

	defer in.Close()

	store, err := recording.Open(*dbFile)

	if err != nil {
		log.Fatal("Error opening pose recording: ", err)
	}

	defer store.Close()

	video := geometry.Dimensions{Width: float64(*width), Height: float64(*height)}

	n, err := store.Import(context.Background(), in, video)

	if err != nil {
		log.Fatalf("Error after importing %d frames: %v", n, err)
	}

	total, err := store.Count(context.Background())

	if err != nil {
		log.Fatal("Error counting frames: ", err)
	}

	log.Printf("Imported %d frames, recording now holds %d\n", n, total)
}
