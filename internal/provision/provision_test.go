package provision

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/bcktools/vbox-vm-bootstrap/configs"
	"github.com/bcktools/vbox-vm-bootstrap/internal/vbox"
	"github.com/bcktools/vbox-vm-bootstrap/internal/vbox/mocks"
)

var anyArgs = mock.MatchedBy(func([]string) bool { return true })

type fixture struct {
	run      *mocks.Runner
	orch     *Orchestrator
	logBuf   *bytes.Buffer
	launched []string
}

func newFixture(t *testing.T, registered string) *fixture {
	t.Helper()
	f := &fixture{run: &mocks.Runner{}, logBuf: &bytes.Buffer{}}

	vmsOut := ""
	if registered != "" {
		vmsOut = `"` + registered + `" {0f0f0f0f-0000-4000-8000-000000000000}` + "\n"
	}
	f.run.On("Run", []string{"list", "vms"}).Return(vmsOut, nil)
	f.run.On("Run", anyArgs).Return("", nil)

	mgr := vbox.NewManager(f.run, configs.Settings())
	log := slog.New(slog.NewTextHandler(f.logBuf, nil))
	f.orch = New(mgr, log, func(descriptor string) error {
		f.launched = append(f.launched, descriptor)
		return nil
	})
	return f
}

func imageFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tcbsd.iso")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func natRequest(t *testing.T) *Request {
	return &Request{
		Name:       "box",
		ImagePath:  imageFile(t),
		DiskSizeGB: 10,
		DestFolder: "/srv/vms",
		Mode:       ModeNAT,
	}
}

// mutatingCalls returns every recorded argv except read-only "list" queries.
func mutatingCalls(run *mocks.Runner) [][]string {
	var out [][]string
	for _, argv := range run.Argv() {
		if argv[0] == "list" {
			continue
		}
		out = append(out, argv)
	}
	return out
}

func TestRun_fullSequenceInOrder(t *testing.T) {
	f := newFixture(t, "")
	req := natRequest(t)

	if err := f.orch.Run(req, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	vmDir := filepath.Join("/srv/vms", "box")
	installer := filepath.Join(vmDir, "box_installer.vhd")
	runtime := filepath.Join(vmDir, "box.vhd")

	want := [][]string{
		{"createvm", "--name", "box", "--basefolder", "/srv/vms", "--ostype", "FreeBSD_64", "--register"},
		{"modifyvm", "box", "--memory", "1024", "--vram", "128", "--acpi", "on",
			"--hpet", "on", "--graphicscontroller", "vmsvga", "--firmware", "efi64"},
		{"modifyvm", "box", "--nic1", "nat"},
		{"convertfromraw", req.ImagePath, installer, "--format", "VHD"},
		{"storagectl", "box", "--name", "SATA", "--add", "sata",
			"--controller", "IntelAhci", "--hostiocache", "on", "--bootable", "on"},
		{"storageattach", "box", "--storagectl", "SATA", "--port", "1",
			"--device", "0", "--type", "hdd", "--medium", installer},
		{"createmedium", "disk", "--filename", runtime, "--size", "10240", "--format", "VHD"},
		{"storageattach", "box", "--storagectl", "SATA", "--port", "0",
			"--device", "0", "--type", "hdd", "--medium", runtime},
	}
	got := mutatingCalls(f.run)
	if len(got) != len(want) {
		t.Fatalf("issued %d mutating commands, want %d:\n%v", len(got), len(want), got)
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}

	wantDescriptor := filepath.Join(vmDir, "box.vbox")
	if len(f.launched) != 1 || f.launched[0] != wantDescriptor {
		t.Errorf("launched = %v, want exactly [%s]", f.launched, wantDescriptor)
	}
}

func TestRun_duplicateNameAbortsBeforeMutation(t *testing.T) {
	f := newFixture(t, "box")
	req := natRequest(t)

	err := f.orch.Run(req, nil)
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("Run() error = %v, want ErrNameTaken", err)
	}
	if calls := mutatingCalls(f.run); len(calls) != 0 {
		t.Errorf("mutating commands issued despite name collision: %v", calls)
	}
	if len(f.launched) != 0 {
		t.Error("machine launched despite name collision")
	}
}

func TestRun_missingImageAbortsBeforeAnyCommand(t *testing.T) {
	f := newFixture(t, "")
	req := natRequest(t)
	req.ImagePath = filepath.Join(t.TempDir(), "absent.iso")

	err := f.orch.Run(req, nil)
	if !errors.Is(err, ErrImageMissing) {
		t.Fatalf("Run() error = %v, want ErrImageMissing", err)
	}
	if argv := f.run.Argv(); len(argv) != 0 {
		t.Errorf("commands issued despite missing image: %v", argv)
	}
}

func TestRun_diskSizeConversionIsBinary(t *testing.T) {
	tests := []struct {
		gb   int
		want string
	}{
		{10, "10240"},
		{1, "1024"},
		{250, "256000"},
	}
	for _, tt := range tests {
		f := newFixture(t, "")
		req := natRequest(t)
		req.DiskSizeGB = tt.gb

		if err := f.orch.Run(req, nil); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		found := false
		for _, argv := range f.run.Argv() {
			if argv[0] != "createmedium" {
				continue
			}
			found = true
			for i, a := range argv {
				if a == "--size" && argv[i+1] != tt.want {
					t.Errorf("%d GB: --size %s, want %s", tt.gb, argv[i+1], tt.want)
				}
			}
		}
		if !found {
			t.Fatalf("%d GB: no createmedium command issued", tt.gb)
		}
	}
}

func TestRun_bridgedUsesChosenAdapter(t *testing.T) {
	f := newFixture(t, "")
	req := natRequest(t)
	req.Mode = ModeBridged
	req.BridgedAdapter = "eno1"

	if err := f.orch.Run(req, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"modifyvm", "box", "--nic1", "bridged", "--bridgeadapter1", "eno1"}
	for _, argv := range f.run.Argv() {
		if reflect.DeepEqual(argv, want) {
			return
		}
	}
	t.Errorf("bridged nic command %v not issued; argv: %v", want, f.run.Argv())
}

func TestRun_bridgedWithoutAdapterSkipsNICCommand(t *testing.T) {
	f := newFixture(t, "")
	req := natRequest(t)
	req.Mode = ModeBridged
	req.BridgedAdapter = ""

	if err := f.orch.Run(req, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, argv := range f.run.Argv() {
		for _, a := range argv {
			if a == "--nic1" {
				t.Fatalf("nic command issued without an adapter: %v", argv)
			}
		}
	}
	if !strings.Contains(f.logBuf.String(), "not configured") {
		t.Error("no informational message about the unconfigured adapter")
	}
}

func TestRun_stepFailureHaltsWithoutRollback(t *testing.T) {
	f := &fixture{run: &mocks.Runner{}, logBuf: &bytes.Buffer{}}
	f.run.On("Run", []string{"list", "vms"}).Return("", nil)
	f.run.On("Run", mock.MatchedBy(func(args []string) bool { return args[0] == "createvm" })).
		Return("", nil)
	f.run.On("Run", mock.MatchedBy(func(args []string) bool { return args[0] == "modifyvm" })).
		Return("", errors.New("VBoxManage modifyvm: VBOX_E_INVALID_VM_STATE"))

	mgr := vbox.NewManager(f.run, configs.Settings())
	f.orch = New(mgr, slog.New(slog.NewTextHandler(f.logBuf, nil)), func(string) error {
		f.launched = append(f.launched, "x")
		return nil
	})

	err := f.orch.Run(natRequest(t), nil)
	if err == nil || !strings.Contains(err.Error(), "VBOX_E_INVALID_VM_STATE") {
		t.Fatalf("Run() error = %v, want the tool's diagnostic text", err)
	}

	// createvm ran, modifyvm failed, nothing after it and no cleanup commands.
	got := mutatingCalls(f.run)
	if len(got) != 2 {
		t.Errorf("issued %d mutating commands, want 2 (createvm + failing modifyvm): %v", len(got), got)
	}
	if len(f.launched) != 0 {
		t.Error("machine launched after a failed step")
	}
}

func TestRun_reportsStepNames(t *testing.T) {
	f := newFixture(t, "")

	var names []string
	var totals []int
	err := f.orch.Run(natRequest(t), func(i, total int, name string) {
		names = append(names, name)
		totals = append(totals, total)
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(names) != 9 {
		t.Fatalf("announced %d steps, want 9: %v", len(names), names)
	}
	if names[0] != "Register machine" || names[len(names)-1] != "Start machine" {
		t.Errorf("step names out of order: %v", names)
	}
	for _, total := range totals {
		if total != 9 {
			t.Errorf("total = %d, want 9", total)
		}
	}
}
