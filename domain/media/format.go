package media

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Kind classifies a supported input file
type Kind string

const (
	// KindAudio is a file the recognizer can read directly
	KindAudio Kind = "audio"

	// KindVideo is a container whose audio track must be extracted first
	KindVideo Kind = "video"
)

// supportedExtensions lists every accepted suffix in display order
var supportedExtensions = []string{
	".mkv", ".mp4", ".avi", ".mov", ".flv", ".wmv", ".mp3", ".wav", ".m4a", ".aac",
	".ogg", ".wma", ".webm", ".mpg", ".mpeg", ".3gp", ".ts", ".aiff", ".amr", ".opus",
}

// audioExtensions is the subset passed to the recognizer without extraction
var audioExtensions = []string{
	".mp3", ".wav", ".m4a", ".aac", ".ogg", ".wma", ".aiff", ".amr", ".opus",
}

// SupportedExtensions returns a copy of the accepted extensions
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// AudioExtensions returns a copy of the audio-only extensions
func AudioExtensions() []string {
	return append([]string(nil), audioExtensions...)
}

// VideoExtensions returns the accepted extensions that need audio extraction
func VideoExtensions() []string {
	return lo.Without(supportedExtensions, audioExtensions...)
}

// Extension returns the lowercase extension of path including the leading dot
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsSupported reports whether ext (case-insensitive, with dot) is accepted
func IsSupported(ext string) bool {
	return lo.Contains(supportedExtensions, strings.ToLower(ext))
}

// KindOf classifies a supported extension. The second result is false for
// extensions outside the allow-list.
func KindOf(ext string) (Kind, bool) {
	ext = strings.ToLower(ext)
	if !IsSupported(ext) {
		return "", false
	}
	if lo.Contains(audioExtensions, ext) {
		return KindAudio, true
	}
	return KindVideo, true
}
