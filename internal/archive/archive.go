package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/mabhi256/jarscope/internal/model"
)

var (
	ErrNoClasses     = errors.New("archive contains no application classes")
	ErrClassNotFound = errors.New("class not found in archive")
)

type Kind string

const (
	KindJar     Kind = "JAR"
	KindWar     Kind = "WAR"
	KindBootJar Kind = "SPRING_BOOT_JAR"
)

// Prefixes under which packaged applications keep their own classes
var classRoots = []string{"BOOT-INF/classes/", "WEB-INF/classes/"}

// Prefixes under which nested dependency jars live
var libRoots = []string{"BOOT-INF/lib/", "WEB-INF/lib/"}

type Options struct {
	IncludePackages []string
	ExcludePackages []string
	CacheSize       int
	Logger          *slog.Logger
}

// Archive is an opened JAR or WAR
type Archive struct {
	path      string
	kind      Kind
	zip       *zip.ReadCloser
	classes   []string
	libraries []string
	manifest  Manifest
	pool      *Pool
	opts      Options
}

// Open indexes the archive's class entries without parsing them
func Open(archivePath string, opts Options) (*Archive, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	rc, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive: %w", err)
	}

	a := &Archive{
		path: archivePath,
		kind: KindJar,
		zip:  rc,
		opts: opts,
	}
	if strings.EqualFold(path.Ext(archivePath), ".war") {
		a.kind = KindWar
	}

	entries := make(map[string]*zip.File)
	for _, f := range rc.File {
		name := f.Name
		switch {
		case f.FileInfo().IsDir():
			continue
		case name == manifestPath:
			if m, err := readManifest(f); err != nil {
				opts.Logger.Debug("manifest could not be read", slog.String("archive", archivePath), slog.Any("error", err))
			} else {
				a.manifest = m
			}
		case isLibrary(name):
			a.libraries = append(a.libraries, name)
		case strings.HasSuffix(name, ".class"):
			className, ok := classNameOf(name)
			if !ok {
				continue
			}
			if _, dup := entries[className]; dup {
				continue
			}
			entries[className] = f
		}
		if strings.HasPrefix(name, "BOOT-INF/") && a.kind == KindJar {
			a.kind = KindBootJar
		}
	}

	a.classes = lo.Keys(entries)
	sort.Strings(a.classes)
	sort.Strings(a.libraries)
	a.pool = newPool(entries, opts.CacheSize, opts.Logger)

	return a, nil
}

func (a *Archive) Close() error {
	if a.zip == nil {
		return nil
	}
	err := a.zip.Close()
	a.zip = nil
	return err
}

func (a *Archive) Path() string        { return a.path }
func (a *Archive) Kind() Kind          { return a.kind }
func (a *Archive) Manifest() Manifest  { return a.manifest }
func (a *Archive) Pool() *Pool         { return a.pool }
func (a *Archive) Libraries() []string { return a.libraries }

// ClassNames lists every class in the archive, filtered or not
func (a *Archive) ClassNames() []string {
	return a.classes
}

// Content parses the application classes that pass the package filters.
// Classes that fail to parse are logged and left out.
func (a *Archive) Content(ctx context.Context) (*model.JarContent, error) {
	if len(a.classes) == 0 {
		return nil, fmt.Errorf("%s: %w", a.path, ErrNoClasses)
	}

	var classes []*model.ClassInfo
	skipped := 0
	for _, name := range a.classes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !a.accepts(name) {
			continue
		}
		info, err := a.pool.Load(name)
		if err != nil {
			skipped++
			a.opts.Logger.Warn("skipping class", slog.String("class", name), slog.Any("error", err))
			continue
		}
		classes = append(classes, info)
	}

	if len(classes) == 0 {
		return nil, fmt.Errorf("%s: no class passed the package filters: %w", a.path, ErrNoClasses)
	}

	a.opts.Logger.Debug("archive content loaded",
		slog.String("archive", a.path),
		slog.Int("classes", len(classes)),
		slog.Int("skipped", skipped),
		slog.Int("libraries", len(a.libraries)))

	return &model.JarContent{
		Source:    a.path,
		Classes:   classes,
		Libraries: a.libraries,
		Pool:      a.pool,
	}, nil
}

func (a *Archive) accepts(className string) bool {
	return acceptsPackage(model.PackageOf(className), a.opts.IncludePackages, a.opts.ExcludePackages)
}

// acceptsPackage applies prefix filters; an empty include list accepts everything
func acceptsPackage(pkg string, include, exclude []string) bool {
	for _, ex := range exclude {
		if hasPackagePrefix(pkg, ex) {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	return lo.ContainsBy(include, func(in string) bool {
		return hasPackagePrefix(pkg, in)
	})
}

func hasPackagePrefix(pkg, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, ".*")
	return pkg == prefix || strings.HasPrefix(pkg, prefix+".")
}

// classNameOf maps a zip entry to a dotted class name, stripping the
// packaged-application roots. Module and package descriptors are skipped.
func classNameOf(entry string) (string, bool) {
	if strings.HasPrefix(entry, "META-INF/") {
		return "", false
	}
	for _, root := range classRoots {
		if strings.HasPrefix(entry, root) {
			entry = strings.TrimPrefix(entry, root)
			break
		}
	}
	// nested classes of libraries or other non-application trees
	if strings.HasPrefix(entry, "BOOT-INF/") || strings.HasPrefix(entry, "WEB-INF/") {
		return "", false
	}

	base := path.Base(entry)
	if base == "module-info.class" || base == "package-info.class" {
		return "", false
	}
	return strings.ReplaceAll(strings.TrimSuffix(entry, ".class"), "/", "."), true
}

func isLibrary(entry string) bool {
	if !strings.HasSuffix(entry, ".jar") {
		return false
	}
	return lo.ContainsBy(libRoots, func(root string) bool {
		return strings.HasPrefix(entry, root)
	})
}
