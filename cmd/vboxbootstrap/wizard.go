package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bcktools/vbox-vm-bootstrap/configs"
	"github.com/bcktools/vbox-vm-bootstrap/internal/catalog"
	"github.com/bcktools/vbox-vm-bootstrap/internal/provision"
	"github.com/bcktools/vbox-vm-bootstrap/internal/vbox"
)

// runProvision is the root command: collect parameters interactively, then
// issue the provisioning sequence.
func runProvision() error {
	cfg := configs.Settings()
	log := getLogger()

	mgr, err := newManager(cfg)
	if err != nil {
		return err
	}

	images, err := discoverImages(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("\033[1mvboxbootstrap\033[0m — New VirtualBox machine")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	req, err := collectRequest(mgr, images, cfg, log)
	if err != nil {
		return err
	}

	fmt.Println()
	ok, err := readYesNo(fmt.Sprintf("Create %s now?", req.Name), true)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  Cancelled — nothing created.")
		return nil
	}
	fmt.Println()

	orch := provision.New(mgr, log, vbox.LaunchDescriptor)
	err = orch.Run(req, func(i, total int, name string) {
		fmt.Printf("  [%d/%d] %s\n", i, total, name)
	})
	if err != nil {
		return mapProvisionError(err)
	}

	fmt.Printf("\n\033[32m✓ %s created — the VirtualBox window should appear shortly.\033[0m\n", req.Name)
	log.Info("machine provisioned", "name", req.Name, "folder", req.DestFolder)
	return nil
}

// collectRequest runs the sequential prompts that fill a provisioning request.
func collectRequest(mgr vbox.ManagerInterface, images []catalog.Image, cfg configs.LibDefaults, log *slog.Logger) (*provision.Request, error) {
	name, err := readLine("Machine name", defaultMachineName(cfg.VM.NamePrefix, time.Now()))
	if err != nil {
		return nil, err
	}

	image, err := selectImage(images)
	if err != nil {
		return nil, err
	}

	sizeGB, err := readDiskSize("Runtime disk size (GB)", cfg.VM.DefaultDiskGB)
	if err != nil {
		return nil, err
	}

	folder, err := readLine("Destination folder", mgr.DefaultMachineFolder())
	if err != nil {
		return nil, err
	}

	mode, adapter, err := selectNetwork(mgr, log)
	if err != nil {
		return nil, err
	}

	return &provision.Request{
		Name:           name,
		ImagePath:      image.Path,
		DiskSizeGB:     sizeGB,
		DestFolder:     folder,
		Mode:           mode,
		BridgedAdapter: adapter,
	}, nil
}

// defaultMachineName builds the suggested name from the product prefix and
// the local wall-clock time at prompt time.
func defaultMachineName(prefix string, now time.Time) string {
	return prefix + "_" + now.Format("20060102_150405")
}

// selectImage asks the operator to pick one discovered installer image.
// There is no default: the choice is always explicit.
func selectImage(images []catalog.Image) (catalog.Image, error) {
	labels := make([]string, len(images))
	for i, img := range images {
		labels[i] = img.String()
	}
	choice, err := surveySelect("Installer image:", labels, "")
	if err != nil {
		return catalog.Image{}, err
	}
	for i, label := range labels {
		if label == choice {
			return images[i], nil
		}
	}
	return catalog.Image{}, fmt.Errorf("selected image %q not in catalog", choice)
}

// selectNetwork asks for NAT or Bridged. Bridged with zero discovered
// adapters is forced back to NAT with an informational message.
func selectNetwork(mgr vbox.ManagerInterface, log *slog.Logger) (provision.NetworkMode, string, error) {
	choice, err := surveySelect("Network mode:", []string{"NAT", "Bridged"}, "NAT")
	if err != nil {
		return "", "", err
	}
	if choice != "Bridged" {
		return provision.ModeNAT, "", nil
	}

	adapters := mgr.BridgedAdapters()
	if len(adapters) == 0 {
		log.Info("no bridged adapters found, using NAT")
		return provision.ModeNAT, "", nil
	}

	adapter, err := surveySelect("Bridged adapter:", adapters, adapters[0])
	if err != nil {
		return "", "", err
	}
	return provision.ModeBridged, adapter, nil
}

// newManager locates VBoxManage at its fixed install path and wraps it.
func newManager(cfg configs.LibDefaults) (vbox.ManagerInterface, error) {
	path, err := vbox.Locate(cfg.Tool)
	if err != nil {
		if errors.Is(err, vbox.ErrToolNotFound) {
			return nil, &userError{
				msg:  err.Error(),
				hint: "Install VirtualBox from https://www.virtualbox.org/wiki/Downloads",
			}
		}
		return nil, err
	}
	return vbox.NewManager(vbox.NewExecRunner(path), cfg), nil
}

// discoverImages lists installer images and maps catalog failures to
// actionable operator errors.
func discoverImages(cfg configs.LibDefaults) ([]catalog.Image, error) {
	images, err := catalog.Discover(cfg.Images.Dir, cfg.Images.Extensions)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrDirMissing):
			return nil, &userError{
				msg:  err.Error(),
				hint: fmt.Sprintf("mkdir %s — then place the installer image in it", cfg.Images.Dir),
			}
		case errors.Is(err, catalog.ErrNoImages):
			return nil, &userError{
				msg:  err.Error(),
				hint: fmt.Sprintf("Copy an installer image (%s) into %s/", strings.Join(cfg.Images.Extensions, ", "), cfg.Images.Dir),
			}
		}
		return nil, err
	}
	return images, nil
}

func mapProvisionError(err error) error {
	switch {
	case errors.Is(err, provision.ErrNameTaken):
		return &userError{
			msg:  err.Error(),
			hint: "Pick another name, or remove the existing machine: VBoxManage unregistervm <name> --delete",
		}
	case errors.Is(err, provision.ErrImageMissing):
		return &userError{
			msg:  err.Error(),
			hint: "The file disappeared after discovery — check the images directory",
		}
	}
	return err
}
