package vbox

// compile-time interface compliance check
var _ ManagerInterface = (*Manager)(nil)

// ManagerInterface abstracts every VBoxManage operation the tool needs.
// The real implementation shells out through a Runner; tests inject a mock.
//
// The probe methods (DefaultMachineFolder, BridgedAdapters) are best-effort
// and degrade instead of failing; everything else surfaces the tool's error.
type ManagerInterface interface {
	DefaultMachineFolder() string
	BridgedAdapters() []string
	RegisteredVMs() ([]string, error)
	VMExists(name string) (bool, error)
	CreateVM(name, baseFolder string) error
	SetBaselineHardware(name string) error
	SetNICNat(name string) error
	SetNICBridged(name, adapter string) error
	ConvertImage(src, dst string) error
	CreateController(vmName string) error
	AttachDisk(vmName, medium string, port int) error
	CreateDisk(path string, sizeMB int64) error
}
