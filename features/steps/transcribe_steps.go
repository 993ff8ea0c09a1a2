//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apppipeline "media-transcribe/application/pipeline"
	"media-transcribe/cmd"
	"media-transcribe/domain/media"
	"media-transcribe/infrastructure/ffmpeg"
	"media-transcribe/infrastructure/filesystem"

	"github.com/cucumber/godog"
)

// transcribeContext holds test state for transcribe scenarios
type transcribeContext struct {
	workDir     string
	model       string
	language    string
	keepScratch bool
	tools       *fakeToolRunner
	recognizer  *fakeRecognizer
	output      *bytes.Buffer
	result      *apppipeline.Result
	err         error
}

// SharedTranscribeContext is reset before each scenario via Before hook
var SharedTranscribeContext *transcribeContext

func getTranscribeContext() *transcribeContext {
	return SharedTranscribeContext
}

func InitializeTranscribeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "transcribe-test-*")
		if err != nil {
			return c, err
		}
		SharedTranscribeContext = &transcribeContext{
			workDir:    dir,
			model:      "small",
			language:   "ja",
			tools:      &fakeToolRunner{},
			recognizer: &fakeRecognizer{text: "transcribed text"},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if t := getTranscribeContext(); t != nil && t.workDir != "" {
			os.RemoveAll(t.workDir)
		}
		SharedTranscribeContext = nil
		return c, nil
	})

	ctx.Step(`^a media file "([^"]*)"$`, aMediaFile)
	ctx.Step(`^the video "([^"]*)" has no audio track$`, theVideoHasNoAudioTrack)
	ctx.Step(`^the recognizer returns "([^"]*)"$`, theRecognizerReturns)
	ctx.Step(`^the recognizer fails with "([^"]*)"$`, theRecognizerFailsWith)
	ctx.Step(`^ffmpeg fails with "([^"]*)"$`, ffmpegFailsWith)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^the model tier is "([^"]*)" and the language is "([^"]*)"$`, theModelTierIsAndTheLanguageIs)
	ctx.Step(`^scratch audio is kept on failure$`, scratchAudioIsKeptOnFailure)
	ctx.Step(`^I transcribe "([^"]*)"$`, iTranscribe)
	ctx.Step(`^I transcribe "([^"]*)" writing the transcript to "([^"]*)"$`, iTranscribeWritingTheTranscriptTo)
	ctx.Step(`^the file "([^"]*)" should still contain "([^"]*)"$`, theFileShouldStillContain)
	ctx.Step(`^the run should succeed$`, theRunShouldSucceed)
	ctx.Step(`^the run should abort with "([^"]*)"$`, theRunShouldAbortWith)
	ctx.Step(`^the run should have failed after "([^"]*)"$`, theRunShouldHaveFailedAfter)
	ctx.Step(`^the scratch file "([^"]*)" should have been created$`, theScratchFileShouldHaveBeenCreated)
	ctx.Step(`^the file "([^"]*)" should not exist$`, theFileShouldNotExist)
	ctx.Step(`^the file "([^"]*)" should exist$`, theFileShouldExist)
	ctx.Step(`^the transcript "([^"]*)" should contain "([^"]*)"$`, theTranscriptShouldContain)
	ctx.Step(`^no transcript should be written$`, noTranscriptShouldBeWritten)
	ctx.Step(`^the recognizer should have transcribed "([^"]*)"$`, theRecognizerShouldHaveTranscribed)
	ctx.Step(`^the recognizer should not have been called$`, theRecognizerShouldNotHaveBeenCalled)
	ctx.Step(`^no audio should have been extracted$`, noAudioShouldHaveBeenExtracted)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the output should list the supported extensions$`, theOutputShouldListTheSupportedExtensions)
}

func (t *transcribeContext) path(name string) string {
	return filepath.Join(t.workDir, name)
}

func aMediaFile(name string) error {
	t := getTranscribeContext()
	return os.WriteFile(t.path(name), []byte("media content"), 0644)
}

func theVideoHasNoAudioTrack(name string) error {
	t := getTranscribeContext()
	t.tools.noAudio = true
	return aMediaFile(name)
}

func theRecognizerReturns(text string) error {
	getTranscribeContext().recognizer.text = text
	return nil
}

func theRecognizerFailsWith(msg string) error {
	getTranscribeContext().recognizer.failWith = msg
	return nil
}

func ffmpegFailsWith(msg string) error {
	getTranscribeContext().tools.ffmpegFail = msg
	return nil
}

func ffmpegIsNotInstalled() error {
	getTranscribeContext().tools.ffmpegMissing = true
	return nil
}

func theModelTierIsAndTheLanguageIs(model, language string) error {
	t := getTranscribeContext()
	t.model = model
	t.language = language
	return nil
}

func scratchAudioIsKeptOnFailure() error {
	getTranscribeContext().keepScratch = true
	return nil
}

func iTranscribe(name string) error {
	return iTranscribeWritingTheTranscriptTo(name, filepath.Join("output", "output.txt"))
}

func iTranscribeWritingTheTranscriptTo(name, output string) error {
	t := getTranscribeContext()

	deps := &cmd.TranscribeDependencies{
		Extractor:   ffmpeg.NewExtractor(ffmpeg.WithExtractorCommandRunner(t.tools)),
		Prober:      ffmpeg.NewProber(ffmpeg.WithProberCommandRunner(t.tools)),
		FileChecker: filesystem.NewChecker(),
		Remover:     filesystem.NewRemover(),
		Transcriber: t.recognizer,
		Writer:      filesystem.NewTranscriptWriter(),
	}

	t.result, t.err = cmd.RunTranscribeWithDependencies(context.Background(), deps, cmd.TranscribeInput{
		InputPath:            t.path(name),
		OutputPath:           t.path(output),
		ScratchPath:          t.path(media.DefaultScratchPath),
		Model:                t.model,
		Language:             t.language,
		KeepScratchOnFailure: t.keepScratch,
	}, t.output)
	return nil
}

func theFileShouldStillContain(name, content string) error {
	data, err := os.ReadFile(getTranscribeContext().path(name))
	if err != nil {
		return fmt.Errorf("expected %s to exist: %w", name, err)
	}
	if string(data) != content {
		return fmt.Errorf("expected %s to contain %q, got %q", name, content, string(data))
	}
	return nil
}

func theRunShouldSucceed() error {
	t := getTranscribeContext()
	if t.err != nil {
		return fmt.Errorf("expected success, got: %v\noutput:\n%s", t.err, t.output.String())
	}
	if t.result == nil || !t.result.Succeeded() {
		return fmt.Errorf("expected run to reach done, got %+v", t.result)
	}
	return nil
}

func theRunShouldAbortWith(msg string) error {
	t := getTranscribeContext()
	if t.err == nil {
		return fmt.Errorf("expected the run to abort with %q, but it succeeded", msg)
	}
	if !strings.Contains(t.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, t.err)
	}
	if t.result != nil && t.result.State != apppipeline.StateAborted {
		return fmt.Errorf("expected state %q, got %q", apppipeline.StateAborted, t.result.State)
	}
	return nil
}

func theRunShouldHaveFailedAfter(state string) error {
	t := getTranscribeContext()
	if t.result == nil {
		return fmt.Errorf("no result recorded")
	}
	if string(t.result.FailedAt) != state {
		return fmt.Errorf("expected failure after %q, got %q", state, t.result.FailedAt)
	}
	return nil
}

func theScratchFileShouldHaveBeenCreated(name string) error {
	t := getTranscribeContext()
	run := t.tools.lastRun()
	if run == nil {
		return fmt.Errorf("ffmpeg was not called")
	}
	if got := run[len(run)-1]; got != t.path(name) {
		return fmt.Errorf("expected ffmpeg to write %s, got %s", t.path(name), got)
	}
	if !t.recognizer.audioExisted {
		return fmt.Errorf("scratch audio did not exist while transcribing")
	}
	return nil
}

func theFileShouldNotExist(name string) error {
	t := getTranscribeContext()
	if _, err := os.Stat(t.path(name)); err == nil {
		return fmt.Errorf("expected %s to not exist", name)
	}
	return nil
}

func theFileShouldExist(name string) error {
	t := getTranscribeContext()
	if _, err := os.Stat(t.path(name)); err != nil {
		return fmt.Errorf("expected %s to exist: %w", name, err)
	}
	return nil
}

func theTranscriptShouldContain(name, text string) error {
	t := getTranscribeContext()
	data, err := os.ReadFile(t.path(name))
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected transcript to contain %q, got %q", text, string(data))
	}
	return nil
}

func noTranscriptShouldBeWritten() error {
	return theFileShouldNotExist(filepath.Join("output", "output.txt"))
}

func theRecognizerShouldHaveTranscribed(name string) error {
	t := getTranscribeContext()
	if got := t.recognizer.lastAudio(); got != name {
		return fmt.Errorf("expected recognizer to receive %q, got %q", name, got)
	}
	return nil
}

func theRecognizerShouldNotHaveBeenCalled() error {
	t := getTranscribeContext()
	if len(t.recognizer.requests) > 0 {
		return fmt.Errorf("expected no recognizer calls, got %d", len(t.recognizer.requests))
	}
	return nil
}

func noAudioShouldHaveBeenExtracted() error {
	t := getTranscribeContext()
	if len(t.tools.runs) > 0 {
		return fmt.Errorf("expected no ffmpeg runs, got %v", t.tools.runs)
	}
	return nil
}

func theOutputShouldContain(text string) error {
	t := getTranscribeContext()
	if !strings.Contains(t.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, t.output.String())
	}
	return nil
}

func theOutputShouldListTheSupportedExtensions() error {
	t := getTranscribeContext()
	for _, ext := range media.SupportedExtensions() {
		if !strings.Contains(t.output.String(), ext) {
			return fmt.Errorf("expected output to list %s, got:\n%s", ext, t.output.String())
		}
	}
	return nil
}
