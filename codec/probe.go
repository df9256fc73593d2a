package codec

import (
	"os"
	"os/exec"
	"strings"
)

// NativeLibDirEnv overrides native codec library discovery.
const NativeLibDirEnv = "IMGCONV_LIBAVIF_DIR"

// probeNativeLibDir locates a native libavif build, first via the override
// environment variable, then via a pkg-config query. Best effort: the AVIF
// codec falls back to its bundled build when nothing is found.
func probeNativeLibDir() string {
	if dir := os.Getenv(NativeLibDirEnv); dir != "" {
		return dir
	}

	out, err := exec.Command("pkg-config", "--variable=libdir", "libavif").Output()
	if err != nil {
		return ""
	}

	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}
