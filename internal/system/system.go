package system

import (
	"fmt"
	"log"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to raise file limit: %v", err)
	}
}

// DetectWorkers picks a worker count from physical cores, capped so that
// concurrent video decodes fit in available memory. A sampled 4K RGBA frame
// is ~33 MB; decode plus analysis scratch is budgeted at 256 MB per worker.
func DetectWorkers() int {
	workers := runtime.NumCPU()
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		workers = n
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		budget := int(vm.Available / (256 << 20))
		if budget < 1 {
			budget = 1
		}
		if workers > budget {
			workers = budget
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// CheckFFmpeg verifies ffmpeg and ffprobe are on PATH. Video sampling
// depends on both; still-image scans do not.
func CheckFFmpeg() error {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found in PATH: %w", bin, err)
		}
	}
	return nil
}

// ProbeVideo returns the dimensions and duration of a video file via ffprobe.
func ProbeVideo(path string) (width, height int, duration float64, err error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ffprobe error: %v, output: %s", err, string(out))
	}

	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("ffprobe returned incomplete metadata: %q", string(out))
	}

	width, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ffprobe width: %v", err)
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ffprobe height: %v", err)
	}
	duration, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ffprobe duration: %v", err)
	}

	if width <= 0 || height <= 0 || duration <= 0 {
		return 0, 0, 0, fmt.Errorf("ffprobe returned degenerate metadata: %dx%d, %.3fs", width, height, duration)
	}
	return width, height, duration, nil
}

var mediaTypes = map[string]string{
	".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png",
	".gif": "image/gif", ".bmp": "image/bmp", ".tiff": "image/tiff",
	".webp": "image/webp",
	".mp4":  "video/mp4", ".mov": "video/quicktime", ".avi": "video/x-msvideo",
	".mkv": "video/x-matroska", ".webm": "video/webm",
}

// MediaType maps a filename to its declared MIME type. The stdlib mime
// table lacks the common video extensions on a bare system, so scannable
// extensions resolve through our own table first.
func MediaType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := mediaTypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}

// IsMediaFile reports whether the filename carries a scannable extension.
func IsMediaFile(name string) bool {
	_, ok := mediaTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// FindLatestMedia returns the most recently modified media file in dir.
func FindLatestMedia(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsMediaFile(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no media files found in %s", dir)
	}

	return latestFile, nil
}
