package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"gopkg.in/yaml.v3"

	"facegen-baseline/internal/types"
)

// MaxSupportedHeaderVersion is the newest plugin header version the
// patcher understands.
const MaxSupportedHeaderVersion = "1.71"

const pluginFileSuffix = ".yaml"

// PluginFileAdapter reads plugins stored as "<data>/<plugin name>.yaml".
type PluginFileAdapter struct {
	DataDir string
}

func NewPluginFileAdapter(dataDir string) PluginFileAdapter {
	return PluginFileAdapter{DataDir: dataDir}
}

func (a PluginFileAdapter) LoadPlugin(key types.ModKey) (*types.Mod, error) {
	path, err := a.pluginPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("plugin file not found: %s", key)).
			WithCause(err)
	}
	var mod types.Mod
	if err := yaml.Unmarshal(data, &mod); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse plugin yaml: %s", key)).
			WithCause(err)
	}
	if strings.TrimSpace(string(mod.ModKey)) == "" {
		mod.ModKey = key
	}
	if !mod.ModKey.Equal(key) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("plugin %s declares mod key %s", key, mod.ModKey))
	}
	if err := checkHeaderVersion(mod.Header.Version); err != nil {
		return nil, err
	}
	return &mod, nil
}

// pluginPath finds the plugin file, matching names case-insensitively
// when the exact name is missing.
func (a PluginFileAdapter) pluginPath(key types.ModKey) (string, error) {
	if strings.TrimSpace(a.DataDir) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("data directory is empty")
	}
	exact := filepath.Join(a.DataDir, string(key)+pluginFileSuffix)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat plugin file").
			WithCause(err)
	}
	entries, err := os.ReadDir(a.DataDir)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("data directory not found").
			WithCause(err)
	}
	want := strings.ToLower(string(key) + pluginFileSuffix)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(entry.Name()) == want {
			return filepath.Join(a.DataDir, entry.Name()), nil
		}
	}
	return exact, nil
}

func checkHeaderVersion(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	version, err := debversion.NewVersion(strings.TrimSpace(value))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid plugin header version: %s", value)).
			WithCause(err)
	}
	supported, err := debversion.NewVersion(MaxSupportedHeaderVersion)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("invalid supported header version").
			WithCause(err)
	}
	if version.Compare(supported) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unsupported plugin header version: %s", value))
	}
	return nil
}
