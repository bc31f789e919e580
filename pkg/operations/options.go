package operations

import (
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/report"
)

type settings struct {
	installPhrases outcome.PhraseSet
	clonePhrases   outcome.PhraseSet
	reporter       report.Reporter
	fs             filesystem.FS
}

func defaultSettings(component string) settings {
	return settings{
		installPhrases: outcome.InstallPhrases,
		clonePhrases:   outcome.ClonePhrases,
		reporter:       report.NewLogReporter(component),
		fs:             filesystem.NewOS(),
	}
}

// Option configures an operation
type Option func(*settings)

// WithInstallPhrases replaces the phrases proving an install or remove worked
func WithInstallPhrases(phrases outcome.PhraseSet) Option {
	return func(s *settings) {
		if len(phrases) > 0 {
			s.installPhrases = phrases
		}
	}
}

// WithClonePhrases replaces the phrases proving a clone worked
func WithClonePhrases(phrases outcome.PhraseSet) Option {
	return func(s *settings) {
		if len(phrases) > 0 {
			s.clonePhrases = phrases
		}
	}
}

// WithReporter sets where user-visible diagnostics go
func WithReporter(r report.Reporter) Option {
	return func(s *settings) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithFS sets the filesystem used to inspect clone destinations
func WithFS(fs filesystem.FS) Option {
	return func(s *settings) {
		if fs != nil {
			s.fs = fs
		}
	}
}

func applyOptions(component string, opts []Option) settings {
	s := defaultSettings(component)
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
