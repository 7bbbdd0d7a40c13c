package archive

import (
	"archive/zip"
	"bufio"
	"strings"
)

const manifestPath = "META-INF/MANIFEST.MF"

// Manifest holds the main section of META-INF/MANIFEST.MF
type Manifest map[string]string

func (m Manifest) MainClass() string { return m["Main-Class"] }

// StartClass is the application class a Spring Boot launcher delegates to
func (m Manifest) StartClass() string { return m["Start-Class"] }

func (m Manifest) SpringBootVersion() string { return m["Spring-Boot-Version"] }

// readManifest parses the main section. Continuation lines start with a
// single space and are appended to the previous value.
func readManifest(f *zip.File) (Manifest, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	m := make(Manifest)
	var lastKey string
	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			// end of main section
			break
		}
		if strings.HasPrefix(line, " ") && lastKey != "" {
			m[lastKey] += line[1:]
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		lastKey = strings.TrimSpace(key)
		m[lastKey] = strings.TrimSpace(value)
	}
	return m, scanner.Err()
}
