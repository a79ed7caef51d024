package system

import "testing"

func TestMediaType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"clip.MP4", "video/mp4"},
		{"photo.jpeg", "image/jpeg"},
		{"frame.webp", "image/webp"},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MediaType(tt.name); got != tt.want {
				t.Errorf("MediaType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile("a/b/clip.mkv") {
		t.Error("Expected .mkv to be scannable")
	}
	if IsMediaFile("document.pdf") {
		t.Error("Expected .pdf to be rejected")
	}
}

func TestDetectWorkers(t *testing.T) {
	if got := DetectWorkers(); got < 1 {
		t.Errorf("DetectWorkers() = %d, want >= 1", got)
	}
}

func TestFramePoolRoundTrip(t *testing.T) {
	buf := GetFrame(1024)
	if len(buf) != 1024 {
		t.Fatalf("Expected 1024 bytes, got %d", len(buf))
	}
	PutFrame(buf)

	again := GetFrame(1024)
	if len(again) != 1024 {
		t.Fatalf("Expected 1024 bytes after reuse, got %d", len(again))
	}
}
