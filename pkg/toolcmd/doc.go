// Package toolcmd maps logical intents (install a package, clone a
// repository) onto concrete command vectors. Nothing here executes a
// process; the vectors are handed to a runner.Runner.
package toolcmd
