//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-transcribe/cmd"
	"media-transcribe/infrastructure/ffmpeg"
	"media-transcribe/infrastructure/filesystem"

	"github.com/cucumber/godog"
)

// extractContext holds test state for extract-audio scenarios
type extractContext struct {
	workDir string
	tools   *fakeToolRunner
	output  *bytes.Buffer
	err     error
}

// SharedExtractContext is reset before each scenario via Before hook
var SharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return SharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "extract-test-*")
		if err != nil {
			return c, err
		}
		SharedExtractContext = &extractContext{
			workDir: dir,
			tools:   &fakeToolRunner{},
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if e := getExtractContext(); e != nil && e.workDir != "" {
			os.RemoveAll(e.workDir)
		}
		SharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^a file to extract "([^"]*)"$`, aFileToExtract)
	ctx.Step(`^ffmpeg is not installed for extraction$`, ffmpegIsNotInstalledForExtraction)
	ctx.Step(`^I extract audio from "([^"]*)" to "([^"]*)"$`, iExtractAudioFromTo)
	ctx.Step(`^ffmpeg should have been called with arguments:$`, ffmpegShouldHaveBeenCalledWithArguments)
	ctx.Step(`^ffmpeg should not have been called$`, ffmpegShouldNotHaveBeenCalled)
	ctx.Step(`^the extracted file "([^"]*)" should exist$`, theExtractedFileShouldExist)
	ctx.Step(`^the extraction should fail with "([^"]*)"$`, theExtractionShouldFailWith)
	ctx.Step(`^the extraction output should contain "([^"]*)"$`, theExtractionOutputShouldContain)
}

func aFileToExtract(name string) error {
	e := getExtractContext()
	return os.WriteFile(filepath.Join(e.workDir, name), []byte("media content"), 0644)
}

func ffmpegIsNotInstalledForExtraction() error {
	getExtractContext().tools.ffmpegMissing = true
	return nil
}

func iExtractAudioFromTo(name, scratch string) error {
	e := getExtractContext()
	e.err = cmd.RunExtractAudioWithDependencies(
		context.Background(),
		ffmpeg.NewExtractor(ffmpeg.WithExtractorCommandRunner(e.tools)),
		ffmpeg.NewProber(ffmpeg.WithProberCommandRunner(e.tools)),
		filesystem.NewChecker(),
		filesystem.NewRemover(),
		nil,
		filepath.Join(e.workDir, name),
		filepath.Join(e.workDir, scratch),
		e.output,
	)
	return nil
}

func ffmpegShouldHaveBeenCalledWithArguments(table *godog.Table) error {
	e := getExtractContext()
	run := e.tools.lastRun()
	if run == nil {
		return fmt.Errorf("ffmpeg was not called")
	}

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		expectedArg := row.Cells[0].Value
		found := false
		for _, arg := range run {
			if arg == expectedArg {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected argument %q not found in ffmpeg call: %v", expectedArg, run)
		}
	}
	return nil
}

func ffmpegShouldNotHaveBeenCalled() error {
	e := getExtractContext()
	if len(e.tools.runs) > 0 {
		return fmt.Errorf("expected no ffmpeg calls, got %v", e.tools.runs)
	}
	return nil
}

func theExtractedFileShouldExist(name string) error {
	e := getExtractContext()
	if e.err != nil {
		return fmt.Errorf("unexpected error: %v", e.err)
	}
	info, err := os.Stat(filepath.Join(e.workDir, name))
	if err != nil {
		return fmt.Errorf("expected %s to exist: %w", name, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("expected %s to be non-empty", name)
	}
	return nil
}

func theExtractionShouldFailWith(msg string) error {
	e := getExtractContext()
	if e.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(e.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, e.err)
	}
	return nil
}

func theExtractionOutputShouldContain(text string) error {
	e := getExtractContext()
	if !strings.Contains(e.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, e.output.String())
	}
	return nil
}
