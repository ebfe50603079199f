package vbox

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bcktools/vbox-vm-bootstrap/configs"
)

// Manager issues VBoxManage commands for one provisioning run.
type Manager struct {
	run Runner
	cfg configs.LibDefaults
}

// NewManager returns a Manager that issues commands through run, with
// hardware and storage values taken from cfg.
func NewManager(run Runner, cfg configs.LibDefaults) *Manager {
	return &Manager{run: run, cfg: cfg}
}

// DefaultMachineFolder queries VirtualBox's configured machine folder.
// On any failure it falls back to "<home>/VirtualBox VMs" — this probe
// degrades, it never fails the run.
func (m *Manager) DefaultMachineFolder() string {
	out, err := m.run.Run("list", "systemproperties")
	if err == nil {
		if folder, ok := parseMachineFolder(out); ok {
			return folder
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, m.cfg.Storage.MachineFolderName)
}

// BridgedAdapters returns the host's bridgeable interfaces in the order the
// tool reports them. An invocation failure yields an empty list, not an error.
func (m *Manager) BridgedAdapters() []string {
	out, err := m.run.Run("list", "bridgedifs")
	if err != nil {
		return nil
	}
	return parseAdapterNames(out)
}

// RegisteredVMs returns the names of all machines VirtualBox knows about.
func (m *Manager) RegisteredVMs() ([]string, error) {
	out, err := m.run.Run("list", "vms")
	if err != nil {
		return nil, err
	}
	return parseVMNames(out), nil
}

// VMExists reports whether a machine with this exact name is registered.
func (m *Manager) VMExists(name string) (bool, error) {
	out, err := m.run.Run("list", "vms")
	if err != nil {
		return false, err
	}
	return strings.Contains(out, `"`+name+`"`), nil
}

// CreateVM registers a new machine shell under baseFolder.
func (m *Manager) CreateVM(name, baseFolder string) error {
	_, err := m.run.Run("createvm",
		"--name", name,
		"--basefolder", baseFolder,
		"--ostype", m.cfg.VM.OSType,
		"--register")
	return err
}

// SetBaselineHardware applies the fixed hardware profile from the defaults.
func (m *Manager) SetBaselineHardware(name string) error {
	_, err := m.run.Run("modifyvm", name,
		"--memory", strconv.Itoa(m.cfg.VM.MemoryMB),
		"--vram", strconv.Itoa(m.cfg.VM.VRAMMB),
		"--acpi", "on",
		"--hpet", "on",
		"--graphicscontroller", m.cfg.VM.GraphicsController,
		"--firmware", m.cfg.VM.Firmware)
	return err
}

// SetNICNat puts the machine's first adapter in NAT mode.
func (m *Manager) SetNICNat(name string) error {
	_, err := m.run.Run("modifyvm", name, "--nic1", "nat")
	return err
}

// SetNICBridged bridges the machine's first adapter to a host interface.
func (m *Manager) SetNICBridged(name, adapter string) error {
	_, err := m.run.Run("modifyvm", name,
		"--nic1", "bridged",
		"--bridgeadapter1", adapter)
	return err
}

// ConvertImage converts a raw installer image into a virtual disk at dst.
func (m *Manager) ConvertImage(src, dst string) error {
	_, err := m.run.Run("convertfromraw", src, dst,
		"--format", m.cfg.Storage.DiskFormat)
	return err
}

// CreateController adds the bootable SATA controller new disks attach to.
func (m *Manager) CreateController(vmName string) error {
	_, err := m.run.Run("storagectl", vmName,
		"--name", m.cfg.Storage.ControllerName,
		"--add", "sata",
		"--controller", m.cfg.Storage.ControllerType,
		"--hostiocache", "on",
		"--bootable", "on")
	return err
}

// AttachDisk attaches a disk image to the given controller port.
func (m *Manager) AttachDisk(vmName, medium string, port int) error {
	_, err := m.run.Run("storageattach", vmName,
		"--storagectl", m.cfg.Storage.ControllerName,
		"--port", strconv.Itoa(port),
		"--device", "0",
		"--type", "hdd",
		"--medium", medium)
	return err
}

// CreateDisk creates a blank virtual disk of sizeMB megabytes at path.
func (m *Manager) CreateDisk(path string, sizeMB int64) error {
	_, err := m.run.Run("createmedium", "disk",
		"--filename", path,
		"--size", strconv.FormatInt(sizeMB, 10),
		"--format", m.cfg.Storage.DiskFormat)
	return err
}
