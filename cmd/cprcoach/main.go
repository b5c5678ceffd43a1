package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/cprcoach/internal/app"
	"github.com/ayusman/cprcoach/internal/engine"
	"github.com/ayusman/cprcoach/internal/overlay"
	"github.com/ayusman/cprcoach/internal/server"
	"github.com/ayusman/cprcoach/internal/tray"
)

func main() {
	fmt.Println("CPR Coach - Chest Compression Practice Feedback")

	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	mirror := flag.Bool("mirror", true, "mirror frames horizontally")
	flag.Parse()

	eng := engine.New()

	a := app.New(app.Config{
		Engine:       eng,
		CameraID:     *cameraID,
		MirrorFrames: *mirror,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	a.SetEnabled(true)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	cfg := server.Config{
		StaticDir: webDir,
		Engine:    eng,
		Camera:    a.Camera(),
		Detector:  a.Detector(),
		Renderer:  overlay.NewRenderer(),
	}

	srv := server.New(cfg)

	fmt.Printf("Starting server on %s\n", *addr)
	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main goroutine; quitting it shuts everything down.
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnSwitchMode(func() {
		if eng.Mode() == engine.ModeOverhead {
			eng.SetMode(engine.ModeSideView)
		} else {
			eng.SetMode(engine.ModeOverhead)
		}
		t.SetMode(modeLabel(eng.Mode()))
	})
	t.OnRecalibrate(func() {
		eng.ResetBaseline()
	})
	t.OnResetCounters(func() {
		eng.ResetCounters()
		t.SetStatus("Compressions: 0")
	})
	t.OnEmergency(func() {
		a.EmergencyCall()
	})
	t.OnDashboard(func() {
		openBrowser("http://localhost" + *addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	t.Run()
}

func modeLabel(m engine.Mode) string {
	if m == engine.ModeSideView {
		return "SIDE VIEW"
	}
	return "OVERHEAD"
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		log.Printf("Cannot open browser on %s, visit %s", runtime.GOOS, url)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.cprcoach/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".cprcoach", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
