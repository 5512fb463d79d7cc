package config

import "bytes"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// template is a commented sketch.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Layout of code the printer has to produce. Reused code keeps its layout.
printer:
  tab_width: 4
  # use_tabs: false
  # quote: double            # double, single or auto
  # wrap_column: 74
  # object_curly_spacing: true
  # trailing_comma: false

parser:
  flavor: typescript         # typescript or javascript
  # strict: false            # reject newline-based semicolon insertion

verify:
  # extensions: [".ts", ".tsx", ".js", ".md"]
  # ignore:
  #   - "vendor/**"
  # jobs: 0                  # 0 = one worker per CPU
  # max_parse_failure_ratio: 0.2
  # syntax_check: false      # cross-check pretty output with tree-sitter
  # pretty: true
`)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# tsreprint configuration
# See: https://github.com/yaklabco/tsreprint`
}
