// vboxbootstrap - interactive CLI that provisions a local VirtualBox VM
// from an installer image via VBoxManage.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bcktools/vbox-vm-bootstrap/configs"
)

// Exit codes: 0 success, 1 fatal, 130 operator cancellation.
const (
	exitFatal     = 1
	exitCancelled = 130
)

var debugLogs bool

// mainSigCh receives SIGINT so Ctrl+C outside a prompt gets the same quiet
// "Cancelled." exit as Ctrl+C inside one.
var mainSigCh = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:           "vboxbootstrap",
	Short:         "Provision a local VirtualBox VM from an installer image",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = initDebugLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProvision()
	},
}

var imagesCmd = &cobra.Command{
	Use:           "images",
	Short:         "List discovered installer images",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		images, err := discoverImages(configs.Settings())
		if err != nil {
			return err
		}
		for _, img := range images {
			fmt.Println(img.String())
		}
		return nil
	},
}

var adaptersCmd = &cobra.Command{
	Use:           "adapters",
	Short:         "List bridgeable host network adapters",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(configs.Settings())
		if err != nil {
			return err
		}
		adapters := mgr.BridgedAdapters()
		if len(adapters) == 0 {
			fmt.Println("No bridged adapters found.")
			return nil
		}
		for _, a := range adapters {
			fmt.Println(a)
		}
		return nil
	},
}

var vmsCmd = &cobra.Command{
	Use:           "vms",
	Short:         "List machines registered in VirtualBox",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(configs.Settings())
		if err != nil {
			return err
		}
		names, err := mgr.RegisteredVMs()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false,
		"Enable debug logging to "+configs.Defaults.Output.DebugLogPath)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(adaptersCmd)
	rootCmd.AddCommand(vmsCmd)
}

func main() {
	signal.Notify(mainSigCh, os.Interrupt)
	go func() {
		<-mainSigCh
		restoreTTYOnExit()
		fmt.Println("\nCancelled.")
		os.Exit(exitCancelled)
	}()

	if err := rootCmd.Execute(); err != nil {
		if debugCleanup != nil {
			debugCleanup()
		}
		if errors.Is(err, errCancelled) {
			fmt.Println("\nCancelled.")
			os.Exit(exitCancelled)
		}
		const (
			red    = "\033[31m"
			yellow = "\033[33m"
			cyan   = "\033[36m"
			reset  = "\033[0m"
		)
		var ue *userError
		if errors.As(err, &ue) {
			fmt.Fprintf(os.Stderr, "%sError:%s %s\n", red, reset, ue.Error())
			if hint := ue.Hint(); hint != "" {
				fmt.Fprintf(os.Stderr, "%sHint:%s %s%s%s\n", yellow, reset, cyan, hint, reset)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%sError:%s %v\n", red, reset, err)
		}
		os.Exit(exitFatal)
	}
	if debugCleanup != nil {
		debugCleanup()
	}
}
