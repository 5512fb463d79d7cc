package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
)

// HelpFormatter renders Cobra help and usage text with lipgloss styles
// taken from the shared output palette.
type HelpFormatter struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		command: styles.Bold,
		heading: styles.SummaryTitle,
		name:    styles.Success,
		flag:    styles.Info,
		dim:     styles.Dim,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}{{if or .Runnable .HasSubCommands}}{{ .UsageString }}{{end}}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":   h.heading.Render,
		"command":   h.command.Render,
		"name":      h.name.Render,
		"dim":       h.dim.Render,
		"flags":     h.flagUsages,
		"join":      strings.Join,
		"rpad":      rpad,
		"trimRight": trimTrailingWhitespace,
	}
}

// flagUsages styles pflag's usage table: flag names in color, value
// placeholders dimmed, descriptions plain.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}

	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	// pflag separates the flag column from the description with at
	// least two spaces.
	split := strings.Index(body, "  ")
	if split < 0 {
		return line
	}
	names, desc := body[:split], strings.TrimLeft(body[split:], " ")

	var sb strings.Builder
	sb.WriteString(indent)
	for i, token := range strings.Fields(names) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if !strings.HasPrefix(token, "-") {
			sb.WriteString(h.dim.Render(token))
			continue
		}
		trimmed := strings.TrimSuffix(token, ",")
		sb.WriteString(h.flag.Render(trimmed))
		if len(trimmed) < len(token) {
			sb.WriteByte(',')
		}
	}
	sb.WriteString("   ")
	sb.WriteString(desc)

	return sb.String()
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
