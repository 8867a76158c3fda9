// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、任务分发、并发执行和结果聚合，不负责词法分析细节。
// 单文件提取彼此独立，worker 之间不需要任何协调。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/phuslu/log"

	"cmetrics/internal/features"
	"cmetrics/internal/languages"
	"cmetrics/internal/model"
)

// Service 是扫描服务对象。
type Service struct {
	registry   *languages.Registry
	extractors map[*languages.Dialect]*features.Extractor
	workers    int
	logger     *log.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	extractor    *features.Extractor
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	fileFeatures model.FileFeatures
	scanError    *model.ScanError
}

// NewService 创建扫描服务，并为每个已注册方言准备一个提取器。
func NewService(registry *languages.Registry, workers int, options features.Options) (*Service, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if options.Logger == nil {
		options.Logger = &log.DefaultLogger
	}

	service := &Service{
		registry:   registry,
		extractors: make(map[*languages.Dialect]*features.Extractor),
		workers:    workers,
		logger:     options.Logger,
	}

	for _, dialect := range registry.All() {
		extractor, err := features.NewExtractor(dialect, options)
		if err != nil {
			return nil, err
		}
		service.extractors[dialect] = extractor
	}

	return service, nil
}

// ExtractorForFile 返回文件后缀对应的提取器。
func (s *Service) ExtractorForFile(path string) (*features.Extractor, bool) {
	dialect, ok := s.registry.DialectForFile(path)
	if !ok {
		return nil, false
	}
	extractor, ok := s.extractors[dialect]
	return extractor, ok
}

// ExtractorForLanguage 按方言名称返回提取器。
func (s *Service) ExtractorForLanguage(name string) (*features.Extractor, bool) {
	dialect, ok := s.registry.Lookup(name)
	if !ok {
		return nil, false
	}
	extractor, ok := s.extractors[dialect]
	return extractor, ok
}

// ScanPath 扫描目录或单文件。
// 读取失败的文件仍会出现在 Files 中（全零向量），同时记入 Errors。
func (s *Service) ScanPath(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget
	s.logger.Debug().Str("path", absoluteTarget).Int("workers", s.workers).Msg("scan started")

	tasks := make(chan scanTask, s.workers*4)
	results := make(chan workerResult, s.workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		if info.IsDir() {
			walkErrChan <- s.enqueueDirectoryTasks(absoluteTarget, tasks)
			return
		}
		walkErrChan <- s.enqueueSingleFileTask(absoluteTarget, tasks)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	result.Files = make([]model.FileFeatures, 0)
	result.Errors = make([]model.ScanError, 0)

	for item := range results {
		result.Files = append(result.Files, item.fileFeatures)
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	s.buildSummary(&result)
	s.logger.Info().
		Str("path", absoluteTarget).
		Int64("files", result.Summary.Files).
		Int("errors", len(result.Errors)).
		Msg("scan finished")
	return result, nil
}

// enqueueDirectoryTasks 遍历目录并把可识别方言的文件推入任务队列。
func (s *Service) enqueueDirectoryTasks(root string, tasks chan<- scanTask) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			return nil
		}

		extractor, ok := s.ExtractorForFile(path)
		if !ok {
			return nil
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}

		tasks <- scanTask{
			absolutePath: path,
			displayPath:  filepath.ToSlash(relativePath),
			extractor:    extractor,
		}
		return nil
	})
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFileTask(filePath string, tasks chan<- scanTask) error {
	extractor, ok := s.ExtractorForFile(filePath)
	if !ok {
		return fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}

	tasks <- scanTask{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
		extractor:    extractor,
	}
	return nil
}

// runWorker 执行文件读取与特征提取。
// 提取器本身不会失败，读取失败体现为降级结果，这里只负责转换成 ScanError。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		fileFeatures := task.extractor.ExtractFile(task.absolutePath)
		fileFeatures.Path = task.displayPath

		item := workerResult{fileFeatures: fileFeatures}
		if fileFeatures.Degraded() {
			item.scanError = &model.ScanError{
				Path:  task.displayPath,
				Error: fileFeatures.Diagnostic,
			}
		}
		results <- item
	}
}

// buildSummary 排序结果并计算总计信息，降级文件不计入汇总。
func (s *Service) buildSummary(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	result.Summary = model.Summary{}
	for _, item := range result.Files {
		if item.Degraded() {
			continue
		}
		result.Summary.AddVector(item.Vector)
	}
}
