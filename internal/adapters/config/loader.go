// Package config provides the configuration loader for hob.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/hob/internal/core/domain"
	"go.trai.ch/hob/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validTaskNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Load reads the hobfile visible from cwd and returns a domain.Registry.
// All malformed entries are rejected here, before any task runs.
func (l *Loader) Load(cwd string) (*domain.Registry, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var hobfile Hobfile
	if err := readAndUnmarshalYAML(configPath, &hobfile); err != nil {
		return nil, err
	}

	registry := domain.NewRegistry()
	root, err := resolveRoot(configPath, hobfile.Root)
	if err != nil {
		return nil, err
	}
	registry.SetRoot(root)

	for name := range hobfile.Tasks {
		dto := hobfile.Tasks[name]
		if dto == nil {
			// A task with a null body ("dev:") is shorthand for an empty one.
			dto = &TaskDTO{}
		}
		if err := validateTaskName(name); err != nil {
			return nil, err
		}

		task, err := buildTask(name, dto, root)
		if err != nil {
			return nil, err
		}

		if err := registry.AddTask(task); err != nil {
			return nil, err
		}
	}

	if registry.Len() == 0 {
		l.Logger.Warn("config has no tasks: " + configPath)
	}

	return registry, nil
}

// DiscoverRoot walks up from cwd to find the directory containing hob.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.HobFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func buildTask(name string, dto *TaskDTO, root string) (*domain.Task, error) {
	commands, err := buildCommands(name, dto, root)
	if err != nil {
		return nil, err
	}

	for key := range dto.Environment {
		if strings.TrimSpace(key) == "" {
			return nil, zerr.With(domain.ErrEmptyEnvironmentKey, "task", name)
		}
	}

	timeout, err := parseDuration(dto.Timeout, "timeout", name)
	if err != nil {
		return nil, err
	}

	watch, err := buildWatchConfig(name, dto.Watch, root)
	if err != nil {
		return nil, err
	}

	return &domain.Task{
		Name:        name,
		Commands:    commands,
		Environment: dto.Environment,
		Timeout:     timeout,
		Watch:       watch,
	}, nil
}

func buildCommands(name string, dto *TaskDTO, root string) ([]domain.CommandLine, error) {
	workingDir := resolveTaskWorkingDir(root, dto.WorkingDir)

	commands := make([]domain.CommandLine, 0, len(dto.Cmds))
	for i, line := range dto.Cmds {
		if strings.TrimSpace(line) == "" {
			err := zerr.With(domain.ErrEmptyCommandLine, "task", name)
			return nil, zerr.With(err, "line_index", i)
		}
		commands = append(commands, domain.CommandLine{
			Line:       line,
			WorkingDir: workingDir,
		})
	}
	return commands, nil
}

func buildWatchConfig(name string, dto *WatchDTO, root string) (domain.WatchConfig, error) {
	if dto == nil {
		return domain.WatchConfig{}, nil
	}

	debounce, err := parseDuration(dto.Debounce, "debounce", name)
	if err != nil {
		return domain.WatchConfig{}, err
	}

	paths := make([]string, 0, len(dto.Paths))
	for _, p := range dto.Paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, p)
		}
		abs = filepath.Clean(abs)

		rel, relErr := filepath.Rel(root, abs)
		if relErr != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			err := zerr.With(domain.ErrWatchPathOutsideRoot, "task", name)
			return domain.WatchConfig{}, zerr.With(err, "path", p)
		}
		paths = append(paths, abs)
	}

	return domain.WatchConfig{
		Paths:    paths,
		Debounce: debounce,
	}, nil
}

func parseDuration(value, field, task string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		zerrErr := zerr.With(domain.ErrInvalidDuration, "task", task)
		zerrErr = zerr.With(zerrErr, "field", field)
		return 0, zerr.With(zerrErr, "value", value)
	}
	return d, nil
}

func validateTaskName(name string) error {
	if !validTaskNameRegex.MatchString(name) {
		return zerr.With(domain.ErrInvalidTaskName, "task", name)
	}
	return nil
}

// resolveRoot determines the registry root from the config location and the
// optional root override in the hobfile.
func resolveRoot(configPath, rootOverride string) (string, error) {
	root := filepath.Dir(configPath)
	if rootOverride != "" {
		if filepath.IsAbs(rootOverride) {
			root = rootOverride
		} else {
			root = filepath.Join(root, rootOverride)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}
	return absRoot, nil
}

// resolveTaskWorkingDir resolves the working directory of a task relative to
// the registry root. An empty workingDir means the root itself.
func resolveTaskWorkingDir(root, workingDir string) string {
	if workingDir == "" {
		return root
	}
	if filepath.IsAbs(workingDir) {
		return workingDir
	}
	return filepath.Join(root, workingDir)
}

func readAndUnmarshalYAML(configPath string, out any) error {
	// #nosec G304 -- configPath is discovered by walking up from cwd
	data, err := os.ReadFile(configPath)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		return zerr.With(err, "path", configPath)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		err = zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		return zerr.With(err, "path", configPath)
	}
	return nil
}
