// Package provision drives the fixed VBoxManage command sequence that turns
// an installer image into a registered, booting VirtualBox machine.
//
// The sequence is strictly ordered and nothing is rolled back on failure:
// VirtualBox owns every durable artifact (the machine definition and its
// disks), so a half-created machine is left for the operator to remove with
// VBoxManage directly.
package provision

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bcktools/vbox-vm-bootstrap/internal/vbox"
	"github.com/bcktools/vbox-vm-bootstrap/internal/wizard"
)

// ErrImageMissing reports that the selected installer image vanished between
// discovery and execution.
var ErrImageMissing = errors.New("installer image not found")

// ErrNameTaken reports a VM name collision with the VirtualBox registry.
var ErrNameTaken = errors.New("a machine with this name is already registered")

// NetworkMode selects how the machine's first adapter is wired.
type NetworkMode string

const (
	ModeNAT     NetworkMode = "nat"
	ModeBridged NetworkMode = "bridged"
)

// Request describes one provisioning run. It is built entirely from operator
// input plus discovered defaults and is not modified after collection.
type Request struct {
	Name           string
	ImagePath      string
	DiskSizeGB     int
	DestFolder     string
	Mode           NetworkMode
	BridgedAdapter string // set only when Mode is ModeBridged and an adapter was picked
}

// Orchestrator issues the provisioning sequence against a manager.
type Orchestrator struct {
	mgr    vbox.ManagerInterface
	log    *slog.Logger
	launch func(descriptor string) error
}

// New returns an Orchestrator. launch starts the generated .vbox descriptor
// as a detached process; tests substitute a recorder.
func New(mgr vbox.ManagerInterface, log *slog.Logger, launch func(string) error) *Orchestrator {
	return &Orchestrator{mgr: mgr, log: log, launch: launch}
}

// Run executes the preflight checks and the full command sequence for req.
// Both preflight failures abort before any mutating command has been issued,
// so side effects are all-or-nothing up to the first tool error.
func (o *Orchestrator) Run(req *Request, onStepStart func(index, total int, name string)) error {
	if _, err := os.Stat(req.ImagePath); err != nil {
		return fmt.Errorf("%w: %s", ErrImageMissing, req.ImagePath)
	}
	exists, err := o.mgr.VMExists(req.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrNameTaken, req.Name)
	}

	vmDir := filepath.Join(req.DestFolder, req.Name)
	installerDisk := filepath.Join(vmDir, req.Name+"_installer.vhd")
	runtimeDisk := filepath.Join(vmDir, req.Name+".vhd")
	descriptor := filepath.Join(vmDir, req.Name+".vbox")

	steps := []wizard.Step{
		{Name: "Register machine", Run: func() error {
			return o.mgr.CreateVM(req.Name, req.DestFolder)
		}},
		{Name: "Apply baseline hardware", Run: func() error {
			return o.mgr.SetBaselineHardware(req.Name)
		}},
		{Name: "Configure network adapter", Run: func() error {
			return o.configureNIC(req)
		}},
		{Name: "Convert installer image", Run: func() error {
			return o.mgr.ConvertImage(req.ImagePath, installerDisk)
		}},
		{Name: "Create storage controller", Run: func() error {
			return o.mgr.CreateController(req.Name)
		}},
		{Name: "Attach installer disk", Run: func() error {
			return o.mgr.AttachDisk(req.Name, installerDisk, 1)
		}},
		{Name: "Create runtime disk", Run: func() error {
			return o.mgr.CreateDisk(runtimeDisk, int64(req.DiskSizeGB)*1024)
		}},
		{Name: "Attach runtime disk", Run: func() error {
			return o.mgr.AttachDisk(req.Name, runtimeDisk, 0)
		}},
		{Name: "Start machine", Run: func() error {
			return o.launch(descriptor)
		}},
	}
	return wizard.RunSteps(steps, onStepStart, nil)
}

func (o *Orchestrator) configureNIC(req *Request) error {
	switch {
	case req.Mode == ModeBridged && req.BridgedAdapter != "":
		return o.mgr.SetNICBridged(req.Name, req.BridgedAdapter)
	case req.Mode == ModeBridged:
		// Collection normally downgrades this to NAT; reaching here means
		// the adapter went away in between. Leave adapter 1 at its default.
		o.log.Info("no bridged adapter available, network adapter not configured")
		return nil
	default:
		return o.mgr.SetNICNat(req.Name)
	}
}
