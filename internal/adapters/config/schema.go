package config

// Hobfile represents the structure of the hob.yaml configuration file.
type Hobfile struct {
	Version string              `yaml:"version"`
	Root    string              `yaml:"root"`
	Tasks   map[string]*TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Cmds        []string          `yaml:"cmds"`
	Environment map[string]string `yaml:"env"`
	WorkingDir  string            `yaml:"workingDir"`
	Timeout     string            `yaml:"timeout"`
	Watch       *WatchDTO         `yaml:"watch"`
}

// WatchDTO represents the watch settings of a task in the configuration.
type WatchDTO struct {
	Paths    []string `yaml:"paths"`
	Debounce string   `yaml:"debounce"`
}
