package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/swdee/go-poseoverlay"
	"github.com/swdee/go-poseoverlay/capture"
	"github.com/swdee/go-poseoverlay/config"
	"github.com/swdee/go-poseoverlay/detector"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/pose"
	"github.com/swdee/go-poseoverlay/recording"
	"github.com/swdee/go-poseoverlay/render"
	"github.com/swdee/go-poseoverlay/stream"
	"gocv.io/x/gocv"
)

// window is a surface drawing the skeleton over the mirrored camera frame
// and showing the result in a GoCV window
type window struct {
	*render.MatSurface
	win     *gocv.Window
	frame   *gocv.Mat
	out     *gocv.Mat
	display geometry.Dimensions
}

// Clear replaces the overlay with the mirrored, display sized camera frame
func (w *window) Clear() {
	if w.frame.Empty() {
		w.MatSurface.Clear()
		return
	}

	gocv.Flip(*w.frame, w.out, 1)
	gocv.Resize(*w.out, w.out, image.Pt(int(w.display.Width), int(w.display.Height)),
		0, 0, gocv.InterpolationLinear)
}

// Flush shows the frame
func (w *window) Flush() error {
	w.win.IMShow(*w.out)
	w.win.WaitKey(1)
	return nil
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	envFile := flag.String("e", ".env", "Environment file with settings")
	device := flag.String("d", "", "Camera device, video file or stream URL, overrides CAMERA_DEVICE")
	recFile := flag.String("r", "", "Pose recording database, overrides RECORDING_PATH")
	loop := flag.Bool("l", true, "Loop the pose recording")
	show := flag.Bool("w", true, "Show the overlay in a window")
	serve := flag.Bool("s", false, "Serve the overlay to browsers over websocket")
	snapshot := flag.String("o", "", "Write the last overlay frame to this PNG file")

	flag.Parse()

	cfg, err := config.Load(*envFile)

	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	if *device != "" {
		cfg.CameraDevice = *device
	}

	if *recFile != "" {
		cfg.RecordingPath = *recFile
	}

	style, err := cfg.Style()

	if err != nil {
		log.Fatal("Error in style settings: ", err)
	}

	skeleton, err := pose.NewSkeleton(pose.NumJoints, pose.DefaultConnections,
		pose.ExcludeFaceJoints)

	if err != nil {
		log.Fatal("Error in skeleton definition: ", err)
	}

	pipeline := poseoverlay.NewPipeline(skeleton, style)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open recorded pose detections
	store, err := recording.Open(cfg.RecordingPath)

	if err != nil {
		log.Fatal("Error opening pose recording: ", err)
	}

	defer store.Close()

	replay, err := detector.NewReplay(ctx, store, *loop)

	if err != nil {
		log.Fatal("Error reading pose recording: ", err)
	}

	cam, err := capture.OpenCamera(cfg.CameraDevice, cfg.VideoWidth, cfg.VideoHeight)

	if err != nil {
		log.Fatal("Error opening camera: ", err)
	}

	defer cam.Close()

	display := cfg.Display()
	cam.SetDisplay(display)

	var surfaces render.Multi

	if *show {
		win := gocv.NewWindow("Pose Overlay")
		defer win.Close()

		out := gocv.NewMat()
		defer out.Close()

		surfaces = append(surfaces, &window{
			MatSurface: render.NewMatSurface(&out),
			win:        win,
			frame:      cam.Frame(),
			out:        &out,
			display:    display,
		})
	}

	if *serve {
		hub := stream.NewHub(log.Default())
		go hub.Run(ctx)

		surfaces = append(surfaces, stream.NewSurface(hub, display))

		srv := &http.Server{Addr: cfg.ListenAddr, Handler: stream.NewMux(hub)}

		go func() {
			log.Printf("Serving overlay on %s\n", cfg.ListenAddr)

			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("HTTP server error: %v\n", err)
				stop()
			}
		}()

		defer srv.Close()
	}

	var snap *render.ImageSurface

	if *snapshot != "" {
		snap = render.NewImageSurface(int(display.Width), int(display.Height))
		surfaces = append(surfaces, snap)
	}

	runner := poseoverlay.NewRunner(cam, replay, surfaces, pipeline)
	runner.Interval = cfg.Interval()
	runner.Logger = log.Default()

	err = runner.Run(ctx)

	stats := runner.Stats()
	log.Printf("Frames: %d, drawn: %d, empty: %d, skipped: %d\n",
		stats.Frames, stats.Drawn, stats.Empty, stats.Skipped)

	if snap != nil {
		if werr := writePNG(*snapshot, snap.Image()); werr != nil {
			log.Printf("Error writing snapshot: %v\n", werr)
		}
	}

	if err != nil {
		log.Fatal("Overlay stopped: ", err)
	}

	log.Println("done")
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)

	if err != nil {
		return err
	}

	defer f.Close()

	return png.Encode(f, img)
}
