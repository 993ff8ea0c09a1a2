package media

import (
	"errors"
	"testing"
)

type stubChecker struct {
	existing map[string]bool
}

func (s stubChecker) Exists(path string) bool { return s.existing[path] }
func (s stubChecker) Size(path string) int64 {
	if s.existing[path] {
		return 1
	}
	return 0
}

func TestNewInput(t *testing.T) {
	checker := stubChecker{existing: map[string]bool{
		"interview.mp4":   true,
		"notes.mp3":       true,
		"LOUD.WAV":        true,
		"document.pdf":    true,
		"/data/clip.MKV":  true,
		"no-extension":    true,
		"archive.tar.gz":  true,
		"recording.opus":  true,
		"broadcast.ts":    true,
		"phone-memo.3gp":  true,
		"lecture.webm":    true,
		"old-record.aiff": true,
	}}

	tests := []struct {
		name     string
		path     string
		wantExt  string
		wantKind Kind
		wantErr  error
	}{
		{name: "video container", path: "interview.mp4", wantExt: ".mp4", wantKind: KindVideo},
		{name: "audio file", path: "notes.mp3", wantExt: ".mp3", wantKind: KindAudio},
		{name: "uppercase audio extension", path: "LOUD.WAV", wantExt: ".wav", wantKind: KindAudio},
		{name: "uppercase video extension", path: "/data/clip.MKV", wantExt: ".mkv", wantKind: KindVideo},
		{name: "opus is audio", path: "recording.opus", wantExt: ".opus", wantKind: KindAudio},
		{name: "aiff is audio", path: "old-record.aiff", wantExt: ".aiff", wantKind: KindAudio},
		{name: "transport stream is video", path: "broadcast.ts", wantExt: ".ts", wantKind: KindVideo},
		{name: "3gp is video", path: "phone-memo.3gp", wantExt: ".3gp", wantKind: KindVideo},
		{name: "webm is video", path: "lecture.webm", wantExt: ".webm", wantKind: KindVideo},
		{name: "unsupported extension", path: "document.pdf", wantErr: ErrUnsupportedFormat},
		{name: "no extension", path: "no-extension", wantErr: ErrUnsupportedFormat},
		{name: "only last suffix counts", path: "archive.tar.gz", wantErr: ErrUnsupportedFormat},
		{name: "missing file", path: "missing.mp4", wantErr: ErrFileNotFound},
		{name: "missing unsupported file reports format first", path: "missing.pdf", wantErr: ErrUnsupportedFormat},
		{name: "empty path", path: "", wantErr: ErrFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInput(tt.path, checker)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewInput(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("NewInput(%q) returned %+v alongside error", tt.path, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewInput(%q) unexpected error: %v", tt.path, err)
			}
			if got.Path != tt.path {
				t.Errorf("Path = %q, want %q", got.Path, tt.path)
			}
			if got.Extension != tt.wantExt {
				t.Errorf("Extension = %q, want %q", got.Extension, tt.wantExt)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.IsAudio() != (tt.wantKind == KindAudio) {
				t.Errorf("IsAudio() = %v for kind %q", got.IsAudio(), got.Kind)
			}
		})
	}
}
