package bootstrap

import (
	"fmt"
	"strings"
)

// Step names, in execution order
const (
	StepDirectories    = "directories"
	StepProbe          = "probe"
	StepInterpreter    = "interpreter"
	StepPluginClone    = "plugin-clone"
	StepVirtualenvTool = "virtualenv-tool"
	StepVenvCreate     = "venv-create"
	StepVenvSwitch     = "venv-switch"
	StepPackages       = "packages"
	StepSetupHook      = "setup-hook"
	StepWeightsCopy    = "weights-copy"
	StepModelClone     = "model-clone"
	StepDownloads      = "downloads"
)

// VirtualenvPackage is installed into the system interpreter to create the venv
const VirtualenvPackage = "virtualenv"

// Step is one entry of the install plan
type Step struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Status of a step after a run
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusPlanned Status = "planned"
)

// StepResult records what happened to one step
type StepResult struct {
	Step   `yaml:",inline"`
	Status Status `yaml:"status"`
	Detail string `yaml:"detail,omitempty"`
}

// Plan returns the ordered steps Run walks through
func (i *Installer) Plan() []Step {
	l := i.layout
	c := i.cfg
	return []Step{
		{StepDirectories, "Create " + strings.Join(l.Dirs(), ", ")},
		{StepProbe, fmt.Sprintf("Check that %s -m pip and %s are available", c.Tools.Interpreter, c.Tools.Git)},
		{StepInterpreter, "Log the system interpreter version"},
		{StepPluginClone, fmt.Sprintf("Clone %s into %s", c.Plugin.Repository, l.PluginDir)},
		{StepVirtualenvTool, fmt.Sprintf("Install %s into the system interpreter", VirtualenvPackage)},
		{StepVenvCreate, "Create the virtual environment " + l.VenvDir},
		{StepVenvSwitch, "Switch to the virtual environment interpreter"},
		{StepPackages, fmt.Sprintf("Install %d packages into the virtual environment", len(i.packages()))},
		{StepSetupHook, fmt.Sprintf("Run %s.%s()", c.Plugin.SetupModule, c.Plugin.SetupFunction)},
		{StepWeightsCopy, fmt.Sprintf("Copy %s into %s", i.weightsSource(), l.UserWeightsDir)},
		{StepModelClone, fmt.Sprintf("Clone %s into %s", c.Models.Repository, l.UserWeightsModelDir)},
		{StepDownloads, fmt.Sprintf("Download %d missing model files into %s", len(c.Models.Downloads), l.UserWeightsModelDir)},
	}
}
