package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/render"
)

// Config holds the settings of the overlay programs
type Config struct {
	// CameraDevice is the capture device index, video file or stream URL
	CameraDevice string
	VideoWidth   int
	VideoHeight  int
	// DisplayWidth and DisplayHeight are the rendered overlay size, zero
	// means the same as the video
	DisplayWidth  int
	DisplayHeight int
	// ConfidenceThreshold is the keypoint score that must be exceeded for a
	// joint to be drawn
	ConfidenceThreshold float64
	BoneColor           string
	JointColor          string
	NoseColor           string
	RecordingPath       string
	ListenAddr          string
	FPS                 int
}

// Load reads the configuration from the environment after loading any of
// the given .env files that exist.  With no files, .env in the working
// directory is tried.
func Load(files ...string) (*Config, error) {

	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}

	cfg := &Config{
		CameraDevice:        getEnv("CAMERA_DEVICE", "0"),
		VideoWidth:          getEnvAsInt("VIDEO_WIDTH", 640),
		VideoHeight:         getEnvAsInt("VIDEO_HEIGHT", 480),
		DisplayWidth:        getEnvAsInt("DISPLAY_WIDTH", 0),
		DisplayHeight:       getEnvAsInt("DISPLAY_HEIGHT", 0),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", render.DefaultThreshold),
		BoneColor:           getEnv("BONE_COLOR", render.Hex(render.Green)),
		JointColor:          getEnv("JOINT_COLOR", render.Hex(render.Blue)),
		NoseColor:           getEnv("NOSE_COLOR", render.Hex(render.Red)),
		RecordingPath:       getEnv("RECORDING_PATH", "poses.db"),
		ListenAddr:          getEnv("LISTEN_ADDR", ":8080"),
		FPS:                 getEnvAsInt("FPS", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return errors.Errorf("confidence threshold %v outside [0,1]", c.ConfidenceThreshold)
	}

	if c.FPS < 0 {
		return errors.Errorf("invalid fps %d", c.FPS)
	}

	if _, err := c.Style(); err != nil {
		return err
	}

	return nil
}

// Display returns the display size, defaulting to the video size
func (c *Config) Display() geometry.Dimensions {
	if c.DisplayWidth > 0 && c.DisplayHeight > 0 {
		return geometry.Dimensions{Width: float64(c.DisplayWidth), Height: float64(c.DisplayHeight)}
	}
	return geometry.Dimensions{Width: float64(c.VideoWidth), Height: float64(c.VideoHeight)}
}

// Interval returns the frame interval for the configured FPS, zero when
// unlimited
func (c *Config) Interval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(c.FPS))
}

// Style returns the skeleton style from the configured colors and threshold
func (c *Config) Style() (render.SkeletonStyle, error) {

	style := render.DefaultSkeletonStyle()
	style.Threshold = c.ConfidenceThreshold

	var err error

	if style.BoneColor, err = render.ParseHex(c.BoneColor); err != nil {
		return style, errors.Wrap(err, "BONE_COLOR")
	}

	if style.JointColor, err = render.ParseHex(c.JointColor); err != nil {
		return style, errors.Wrap(err, "JOINT_COLOR")
	}

	if style.NoseColor, err = render.ParseHex(c.NoseColor); err != nil {
		return style, errors.Wrap(err, "NOSE_COLOR")
	}

	return style, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
