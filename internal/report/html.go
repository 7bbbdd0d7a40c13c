package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/report.html.tmpl
var htmlTemplate string

var reportTemplate = template.Must(template.New("report").Funcs(sprig.FuncMap()).Parse(htmlTemplate))

// WriteHTML renders the single-file HTML report
func WriteHTML(w io.Writer, doc *Document) error {
	if err := reportTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// SaveHTML writes the HTML report to path, or to a timestamped file in the
// working directory when path is empty, and returns the absolute path
func SaveHTML(doc *Document, path string) (string, error) {
	absPath, err := GetOutputPath(path)
	if err != nil {
		return "", err
	}

	file, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer file.Close()

	if err := WriteHTML(file, doc); err != nil {
		return "", err
	}
	return absPath, file.Close()
}

// GetOutputPath returns a safe output path, creating directories if needed
func GetOutputPath(path string) (string, error) {
	var outputPath string

	if path != "" {
		outputPath = path
	} else {
		outputPath = GetDefaultOutputPath()
	}

	// Ensure .html extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath += ".html"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", outputPath, err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return absPath, nil
}

// GetDefaultOutputPath returns a default HTML output path
func GetDefaultOutputPath() string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("jarscope-report-%s.html", timestamp)
}
