package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"gopkg.in/yaml.v3"
)

// RenderReport formats a report with the named formatter (aliases accepted).
func RenderReport(report *domain.Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes a report file to dir with the named formatter and
// returns the file path. "all" writes the detailed console report plus the
// payment schedule and allocation CSVs.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVScheduleFormatter{}, CSVAllocationExporter{}} {
			name, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	name, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

func unsupported(format string) error {
	// enrich error with available formatters and aliases
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes a portfolio configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
