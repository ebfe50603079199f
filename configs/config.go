// Package configs provides library defaults loaded from an embedded YAML file.
// All hardcoded values live in defaults.yaml.
package configs

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults holds all library default values (loaded from defaults.yaml at startup).
var Defaults LibDefaults

func init() {
	if err := yaml.Unmarshal(defaultsYAML, &Defaults); err != nil {
		panic("vbox-vm-bootstrap: invalid defaults.yaml: " + err.Error())
	}
}

// Settings returns a copy of the loaded defaults. Components receive this
// copy at construction so tests can substitute paths without touching the
// package-level Defaults.
func Settings() LibDefaults {
	return Defaults
}

// LibDefaults holds all configurable library defaults.
type LibDefaults struct {
	Tool    ToolDefaults    `yaml:"tool"`
	Images  ImageDefaults   `yaml:"images"`
	VM      VMDefaults      `yaml:"vm"`
	Storage StorageDefaults `yaml:"storage"`
	Output  OutputDefaults  `yaml:"output"`
}

// ToolDefaults holds the fixed VBoxManage install path per operating system.
// There is deliberately no PATH search: every provisioning step depends on
// the tool, so its location is a hard requirement checked once up front.
type ToolDefaults struct {
	WindowsPath string `yaml:"windows_path"`
	LinuxPath   string `yaml:"linux_path"`
	DarwinPath  string `yaml:"darwin_path"`
}

// PathForOS returns the install path for the given GOOS value,
// or empty string for an unknown OS.
func (t ToolDefaults) PathForOS(goos string) string {
	switch goos {
	case "windows":
		return t.WindowsPath
	case "darwin":
		return t.DarwinPath
	case "linux":
		return t.LinuxPath
	}
	return ""
}

// ImageDefaults holds installer image discovery defaults.
type ImageDefaults struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// VMDefaults holds the baseline virtual hardware applied to every new machine.
type VMDefaults struct {
	NamePrefix         string `yaml:"name_prefix"`
	OSType             string `yaml:"os_type"`
	MemoryMB           int    `yaml:"memory_mb"`
	VRAMMB             int    `yaml:"vram_mb"`
	GraphicsController string `yaml:"graphics_controller"`
	Firmware           string `yaml:"firmware"`
	DefaultDiskGB      int    `yaml:"default_disk_gb"`
}

// StorageDefaults holds storage controller and disk format defaults.
type StorageDefaults struct {
	ControllerName    string `yaml:"controller_name"`
	ControllerType    string `yaml:"controller_type"`
	DiskFormat        string `yaml:"disk_format"`
	MachineFolderName string `yaml:"machine_folder_name"`
}

// OutputDefaults holds CLI output defaults.
type OutputDefaults struct {
	DebugLogPath string `yaml:"debug_log_path"`
}
