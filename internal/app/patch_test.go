package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facegen-baseline/internal/adapters"
	"facegen-baseline/internal/types"
)

func fixtureDataDir(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", "data")
}

func fixtureSettings() types.Settings {
	return types.Settings{
		BaselineMods:       []string{"Future.esp", "Missing.esp", "ModA.esp"},
		ExcludeNPCEditorID: []string{"Guard"},
		GetProtectedFlag:   true,
	}
}

func testService() Service {
	service := NewService()
	service.NewRunID = func() string { return "run-1" }
	return service
}

func TestPatchApp(t *testing.T) {
	out := t.TempDir()
	output := filepath.Join(out, "FacegenBaseline.esp.yaml")

	result, err := testService().Patch(t.Context(), PatchRequest{
		DataDir:       fixtureDataDir(t),
		Output:        output,
		ConfigVersion: "1.0",
		Settings:      fixtureSettings(),
	})
	require.NoError(t, err)

	want := types.RunSummary{
		RunID:            "run-1",
		PatchMod:         DefaultPatchMod,
		NpcRecords:       4,
		AlreadyWins:      1,
		UseBaseline:      1,
		HasBetterFacegen: 1,
		Excluded:         1,
		ProcessedSources: []string{"ModA.esp"},
		SkippedSources:   []string{"Missing.esp", "Future.esp"},
	}
	got := result.Summary
	got.Outcomes = nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
	assert.Equal(t, output, result.OutputPath)
	assert.Equal(t, out, result.ReportDir)

	patch, err := adapters.NewPatchFileAdapter("").ReadPatch(output)
	require.NoError(t, err)
	require.Len(t, patch.Npcs, 1)
	lydia := patch.Npcs[0]
	assert.Equal(t, "HousecarlWhiterun", lydia.EditorID)
	assert.Equal(t, int16(12), lydia.Configuration.Level, "non-appearance fields come from the winner")
	assert.True(t, lydia.Configuration.Flags.Has(types.NpcFlagProtected))
	assert.Equal(t, float32(55), lydia.Weight)
	assert.Equal(t, []types.ModKey{"Skyrim.esm"}, patch.Masters)
	assert.Contains(t, patch.Header.Description, "ModA.esp")

	for _, name := range []string{adapters.RunSummaryFile, adapters.RunOutcomesFile} {
		_, statErr := os.Stat(filepath.Join(out, name))
		require.NoError(t, statErr)
	}
}

func TestPatchAppSQLite(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "patch", "FacegenBaseline.sqlite")
	reportDir := filepath.Join(dir, "report")

	result, err := testService().Patch(t.Context(), PatchRequest{
		DataDir:   fixtureDataDir(t),
		Output:    output,
		Format:    "sqlite",
		ReportDir: reportDir,
		Settings:  fixtureSettings(),
	})
	require.NoError(t, err)
	assert.Equal(t, reportDir, result.ReportDir)

	patch, err := adapters.NewPatchSQLiteAdapter("").ReadPatch(output)
	require.NoError(t, err)
	require.Len(t, patch.Npcs, 1)
	assert.Equal(t, types.ModKey(DefaultPatchMod), patch.ModKey)
}

func TestPatchAppErrors(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) PatchRequest
		code errbuilder.ErrCode
	}{
		{
			name: "empty baseline list",
			req: func(t *testing.T) PatchRequest {
				return PatchRequest{DataDir: fixtureDataDir(t), Output: filepath.Join(t.TempDir(), "p.yaml")}
			},
			code: errbuilder.CodeInvalidArgument,
		},
		{
			name: "unsupported config version",
			req: func(t *testing.T) PatchRequest {
				return PatchRequest{
					DataDir:       fixtureDataDir(t),
					Output:        filepath.Join(t.TempDir(), "p.yaml"),
					ConfigVersion: "2.1",
					Settings:      fixtureSettings(),
				}
			},
			code: errbuilder.CodeFailedPrecondition,
		},
		{
			name: "missing output",
			req: func(t *testing.T) PatchRequest {
				return PatchRequest{DataDir: fixtureDataDir(t), Settings: fixtureSettings()}
			},
			code: errbuilder.CodeInvalidArgument,
		},
		{
			name: "unknown format",
			req: func(t *testing.T) PatchRequest {
				return PatchRequest{
					DataDir:  fixtureDataDir(t),
					Output:   filepath.Join(t.TempDir(), "p.esp"),
					Format:   "esp",
					Settings: fixtureSettings(),
				}
			},
			code: errbuilder.CodeInvalidArgument,
		},
		{
			name: "missing data dir",
			req: func(t *testing.T) PatchRequest {
				return PatchRequest{Output: filepath.Join(t.TempDir(), "p.yaml"), Settings: fixtureSettings()}
			},
			code: errbuilder.CodeInvalidArgument,
		},
		{
			name: "missing plugins file",
			req: func(t *testing.T) PatchRequest {
				return PatchRequest{
					DataDir:  t.TempDir(),
					Output:   filepath.Join(t.TempDir(), "p.yaml"),
					Settings: fixtureSettings(),
				}
			},
			code: errbuilder.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req(t)
			_, err := testService().Patch(t.Context(), req)
			require.Error(t, err)
			if diff := cmp.Diff(tt.code, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
			if req.Output != "" {
				_, statErr := os.Stat(req.Output)
				assert.True(t, os.IsNotExist(statErr), "no patch may be written on failure")
			}
		})
	}
}

func TestCheckConfigVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{version: ""},
		{version: "1.0"},
		{version: "1.4.2"},
		{version: "0.9", wantErr: true},
		{version: "2.0", wantErr: true},
		{version: "one", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := checkConfigVersion(tt.version)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
