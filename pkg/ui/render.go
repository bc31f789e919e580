package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/plugboot/pkg/bootstrap"
	"github.com/arthur-debert/plugboot/pkg/paths"
	"github.com/arthur-debert/plugboot/pkg/ui/styles"
	"gopkg.in/yaml.v3"
)

// PlanMarkdown renders the install plan as a markdown document
func PlanMarkdown(steps []bootstrap.Step) string {
	var b strings.Builder
	b.WriteString("# plugboot install plan\n\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, s.Name, s.Description)
	}
	return b.String()
}

// RenderPlan writes the plan in the given format
func RenderPlan(w io.Writer, steps []bootstrap.Step, format Format) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, map[string]interface{}{"steps": steps})
	case FormatTerminal:
		_, err := io.WriteString(w, NewMarkdownRenderer().Render(PlanMarkdown(steps)))
		return err
	default:
		for i, s := range steps {
			if _, err := fmt.Fprintf(w, "%2d. %-16s %s\n", i+1, s.Name, s.Description); err != nil {
				return err
			}
		}
		return nil
	}
}

// reportView is the serialized form of a run report
type reportView struct {
	DryRun          bool                   `yaml:"dry_run"`
	Duration        string                 `yaml:"duration"`
	Steps           []bootstrap.StepResult `yaml:"steps"`
	Created         []string               `yaml:"created,omitempty"`
	Installed       []string               `yaml:"installed,omitempty"`
	FailedDownloads []string               `yaml:"failed_downloads,omitempty"`
}

// RenderReport writes a run summary in the given format
func RenderReport(w io.Writer, rep *bootstrap.Report, format Format) error {
	if format == FormatYAML {
		view := reportView{
			DryRun:    rep.DryRun,
			Duration:  rep.Duration.String(),
			Steps:     rep.Steps,
			Created:   rep.Created,
			Installed: rep.Installed,
		}
		for _, d := range rep.FailedDownloads {
			view.FailedDownloads = append(view.FailedDownloads, d.URL)
		}
		return writeYAML(w, view)
	}

	styled := format == FormatTerminal
	style := func(name, text string) string {
		if !styled {
			return text
		}
		return styles.Render(name, text)
	}

	var b strings.Builder
	b.WriteString(style("Header", "Summary") + "\n")
	for _, s := range rep.Steps {
		status := string(s.Status)
		switch s.Status {
		case bootstrap.StatusDone:
			status = style("Success", status)
		case bootstrap.StatusSkipped, bootstrap.StatusPlanned:
			status = style("Muted", status)
		}
		line := fmt.Sprintf("%-16s %s", s.Name, status)
		if s.Detail != "" {
			line += "  " + style("Muted", s.Detail)
		}
		b.WriteString(line + "\n")
	}
	for _, d := range rep.FailedDownloads {
		b.WriteString(style("Warning", fmt.Sprintf("download failed: %s (%s)", d.URL, d.Reason)) + "\n")
	}
	b.WriteString(style("Muted", "took "+rep.Duration.Round(time.Millisecond).String()) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderLayout writes every layout directory keyed by name
func RenderLayout(w io.Writer, layout *paths.Layout, format Format) error {
	named := layout.Named()
	if format == FormatYAML {
		return writeYAML(w, named)
	}

	order := []string{"workingRoot", "pluginDir", "venvDir", "tempDir", "userPluginDir", "userWeightsDir", "userWeightsModelDir"}
	for _, name := range order {
		value := named[name]
		if format == FormatTerminal {
			value = styles.Render("Path", value)
		}
		if _, err := fmt.Fprintf(w, "%-20s %s\n", name, value); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
