package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

func WriteJSON(w io.Writer, doc *Document) error {
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func WriteXML(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return enc.Close()
}

// Write renders doc in any format that streams to a writer; "tui" is not one
func Write(w io.Writer, doc *Document, format string) error {
	switch format {
	case "cli":
		return WriteCLI(w, doc, false)
	case "cli-more":
		return WriteCLI(w, doc, true)
	case "json":
		return WriteJSON(w, doc)
	case "xml":
		return WriteXML(w, doc)
	case "yaml":
		return WriteYAML(w, doc)
	case "html":
		return WriteHTML(w, doc)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
