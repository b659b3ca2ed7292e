package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ProcessFiles parses every given path (files or directories) and returns
// one report per script file.
func ProcessFiles(ctx context.Context, logger *zap.Logger, runner *Runner, paths []string) ([]*Report, error) {
	var reports []*Report
	for _, path := range paths {
		rs, err := ProcessPath(ctx, logger, runner, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		reports = append(reports, rs...)
	}
	return reports, nil
}

// ProcessPath parses one path. Directories are walked for script files and
// parsed concurrently with a bounded worker pool and a progress bar.
func ProcessPath(ctx context.Context, logger *zap.Logger, runner *Runner, path string) ([]*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		report, err := runner.Run(path)
		if err != nil {
			return nil, err
		}
		return []*Report{report}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fileInfo.IsDir() || runner.ignored(filePath) {
			return nil
		}
		if runner.hasScriptExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	reports := make([]*Report, len(files))
	errChan := make(chan error, len(files))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i, f := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, f string) {
			defer wg.Done()
			defer func() { <-sem }()
			report, err := runner.Run(f)
			if err != nil {
				errChan <- err
				return
			}
			reports[i] = report
			_ = bar.Add(1)
		}(i, f)
	}
	wg.Wait()
	close(errChan)
	fmt.Println()

	if err := <-errChan; err != nil {
		return nil, err
	}

	out := make([]*Report, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, ctx.Err()
}

func (r *Runner) hasScriptExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range r.config.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
