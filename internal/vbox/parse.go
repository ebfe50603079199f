package vbox

import (
	"regexp"
	"strings"
)

// Best-effort structured extraction from VBoxManage's free-text output.
// Only parsed values (a path, adapter names, VM names) leave this file.

var machineFolderRE = regexp.MustCompile(`(?m)^Default machine folder:\s+(.+)$`)
var vmNameRE = regexp.MustCompile(`(?m)^"([^"]*)"`)

// parseMachineFolder extracts the "Default machine folder" value from
// `VBoxManage list systemproperties` output.
func parseMachineFolder(out string) (string, bool) {
	m := machineFolderRE.FindStringSubmatch(out)
	if m == nil {
		return "", false
	}
	folder := strings.TrimSpace(m[1])
	if folder == "" {
		return "", false
	}
	return folder, true
}

// parseAdapterNames collects adapter display names from
// `VBoxManage list bridgedifs` output. Adapters are introduced by lines of
// the form "Name:            <display name>"; other Name-bearing labels
// (VBoxNetworkName) do not match the prefix.
func parseAdapterNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		rest, ok := strings.CutPrefix(line, "Name:")
		if !ok {
			continue
		}
		name := strings.TrimSpace(rest)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parseVMNames extracts registered machine names from `VBoxManage list vms`
// output, which lists one `"name" {uuid}` pair per line.
func parseVMNames(out string) []string {
	var names []string
	for _, m := range vmNameRE.FindAllStringSubmatch(out, -1) {
		names = append(names, m[1])
	}
	return names
}
