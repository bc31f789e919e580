// Package paths provides centralized path handling for plugboot.
//
// It computes the fixed directory layout every provisioning step works
// against and materializes it on disk:
//
//   - WorkingRoot: where plugboot was started (default: current directory)
//   - TempDir: scratch space under the working root
//   - PluginDir: the plugin checkout under the working root
//   - VenvDir: the virtual environment inside the plugin checkout
//   - UserPluginDir: the per-user plugin directory under the home directory
//   - UserWeightsDir: model weights copied for the user
//   - UserWeightsModelDir: the model repository inside the weights directory
//
// # Environment Variables
//
//   - PLUGBOOT_ROOT: overrides the working root
//   - HOME: the user home directory, resolved through adrg/xdg
//
// Directory creation is idempotent: a directory is created when absent,
// never recreated and never cleared.
package paths
