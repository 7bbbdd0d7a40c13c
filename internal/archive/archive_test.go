package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jarscope/internal/classfile/classfiletest"
)

func TestOpen_SpringBootJar(t *testing.T) {
	archivePath := classfiletest.WriteArchive(t, "app.jar", map[string][]byte{
		"META-INF/MANIFEST.MF": []byte("Manifest-Version: 1.0\r\nMain-Class: org.springframework.boot.loader.launch.JarLauncher\r\n" +
			"Start-Class: com.acme.App\r\nSpring-Boot-Version: 3.3.\r\n 1\r\n\r\n"),
		"BOOT-INF/classes/com/acme/App.class":                 classfiletest.Minimal("com/acme/App", "java/lang/Object"),
		"BOOT-INF/classes/com/acme/orders/OrderService.class": classfiletest.Minimal("com/acme/orders/OrderService", "java/lang/Object"),
		"BOOT-INF/classes/com/acme/package-info.class":        classfiletest.Minimal("com/acme/package-info", "java/lang/Object"),
		"BOOT-INF/lib/spring-core-6.1.0.jar":                  []byte("PK"),
		"org/springframework/boot/loader/launch/JarLauncher.class": classfiletest.Minimal(
			"org/springframework/boot/loader/launch/JarLauncher", "java/lang/Object"),
	})

	a, err := Open(archivePath, Options{})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, KindBootJar, a.Kind())
	assert.Equal(t, []string{
		"com.acme.App",
		"com.acme.orders.OrderService",
		"org.springframework.boot.loader.launch.JarLauncher",
	}, a.ClassNames())
	assert.Equal(t, []string{"BOOT-INF/lib/spring-core-6.1.0.jar"}, a.Libraries())
	assert.Equal(t, "com.acme.App", a.Manifest().StartClass())
	assert.Equal(t, "3.3.1", a.Manifest().SpringBootVersion())

	content, err := a.Content(context.Background())
	require.NoError(t, err)
	assert.Len(t, content.Classes, 3)
	assert.Equal(t, archivePath, content.Source)
	require.NotNil(t, content.Pool.GetCachedClass("com.acme.App"))
	assert.Nil(t, content.Pool.GetCachedClass("com.acme.Missing"))
}

func TestContent_PackageFilters(t *testing.T) {
	archivePath := classfiletest.WriteArchive(t, "app.war", map[string][]byte{
		"WEB-INF/classes/com/acme/web/Controller.class": classfiletest.Minimal("com/acme/web/Controller", "java/lang/Object"),
		"WEB-INF/classes/com/acme/web/gen/Stub.class":   classfiletest.Minimal("com/acme/web/gen/Stub", "java/lang/Object"),
		"WEB-INF/classes/org/thirdparty/Util.class":     classfiletest.Minimal("org/thirdparty/Util", "java/lang/Object"),
	})

	a, err := Open(archivePath, Options{
		IncludePackages: []string{"com.acme"},
		ExcludePackages: []string{"com.acme.web.gen"},
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, KindWar, a.Kind())

	content, err := a.Content(context.Background())
	require.NoError(t, err)
	require.Len(t, content.Classes, 1)
	assert.Equal(t, "com.acme.web.Controller", content.Classes[0].Name)

	// filtered classes still resolve through the pool
	assert.NotNil(t, content.Pool.GetCachedClass("org.thirdparty.Util"))
}

func TestContent_SkipsBrokenClasses(t *testing.T) {
	archivePath := classfiletest.WriteArchive(t, "broken.jar", map[string][]byte{
		"com/acme/Good.class": classfiletest.Minimal("com/acme/Good", "java/lang/Object"),
		"com/acme/Bad.class":  []byte{0xCA, 0xFE},
	})

	a, err := Open(archivePath, Options{})
	require.NoError(t, err)
	defer a.Close()

	content, err := a.Content(context.Background())
	require.NoError(t, err)
	require.Len(t, content.Classes, 1)
	assert.Equal(t, "com.acme.Good", content.Classes[0].Name)

	_, err = a.Pool().Load("com.acme.Bad")
	assert.Error(t, err)
	_, err = a.Pool().Load("com.acme.Nope")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestContent_NoClasses(t *testing.T) {
	archivePath := classfiletest.WriteArchive(t, "empty.jar", map[string][]byte{
		"META-INF/MANIFEST.MF": []byte("Manifest-Version: 1.0\n"),
	})

	a, err := Open(archivePath, Options{})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Content(context.Background())
	assert.ErrorIs(t, err, ErrNoClasses)
}

func TestOpen_NotAnArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plain.jar")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0o644))

	_, err := Open(p, Options{})
	assert.Error(t, err)
}

func TestPool_BoundedCache(t *testing.T) {
	archivePath := classfiletest.WriteArchive(t, "many.jar", map[string][]byte{
		"a/A.class": classfiletest.Minimal("a/A", "java/lang/Object"),
		"a/B.class": classfiletest.Minimal("a/B", "java/lang/Object"),
		"a/C.class": classfiletest.Minimal("a/C", "java/lang/Object"),
	})

	a, err := Open(archivePath, Options{CacheSize: 2})
	require.NoError(t, err)
	defer a.Close()

	pool := a.Pool()
	for _, name := range []string{"a.A", "a.B", "a.A", "a.C"} {
		require.NotNil(t, pool.GetCachedClass(name), name)
	}

	hits, misses, cached := pool.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 3, misses)
	assert.LessOrEqual(t, cached, 2)
}

func TestClassNameOf(t *testing.T) {
	tests := []struct {
		entry string
		want  string
		ok    bool
	}{
		{"com/acme/A.class", "com.acme.A", true},
		{"BOOT-INF/classes/com/acme/A$Inner.class", "com.acme.A$Inner", true},
		{"WEB-INF/classes/Root.class", "Root", true},
		{"META-INF/versions/17/com/acme/A.class", "", false},
		{"com/acme/module-info.class", "", false},
		{"BOOT-INF/other/X.class", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			got, ok := classNameOf(tt.entry)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAcceptsPackage(t *testing.T) {
	assert.True(t, acceptsPackage("com.acme", nil, nil))
	assert.True(t, acceptsPackage("com.acme.orders", []string{"com.acme"}, nil))
	assert.False(t, acceptsPackage("com.acmeother", []string{"com.acme"}, nil))
	assert.False(t, acceptsPackage("com.acme.gen", nil, []string{"com.acme.gen.*"}))
	assert.True(t, acceptsPackage("", nil, []string{"com"}))
}
