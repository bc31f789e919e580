// Package bootstrap runs the fixed install recipe for the OpenVINO GIMP
// plugins: directories, tool probes, repository clones, the virtual
// environment, pinned packages, model weights and extra model files.
//
// Steps run strictly in order and each external command runs once. Any
// fatal error stops the run and is returned to the caller; failed downloads
// are soft and collected in the Report instead.
package bootstrap
