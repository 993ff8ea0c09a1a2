package media

import "fmt"

// Input is a validated media file chosen for transcription
type Input struct {
	Path      string
	Extension string
	Kind      Kind
}

// NewInput validates path and returns its descriptor. The extension is
// checked before existence, so an unsupported missing file reports
// ErrUnsupportedFormat.
func NewInput(path string, checker FileChecker) (*Input, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: input path is required", ErrFileNotFound)
	}

	ext := Extension(path)
	kind, ok := KindOf(ext)
	if !ok {
		if ext == "" {
			return nil, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if !checker.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	return &Input{
		Path:      path,
		Extension: ext,
		Kind:      kind,
	}, nil
}

// IsAudio returns true if the input can be transcribed without extraction
func (i *Input) IsAudio() bool {
	return i.Kind == KindAudio
}
