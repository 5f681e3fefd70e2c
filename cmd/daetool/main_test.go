package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's config files and COLLADA_* variables out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	testChdir(t, dir)

	orig := now
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
	return dir
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCamera(t *testing.T) {
	isolate(t)

	code, out, errOut := runCmd(t, "camera", "-compact", "-id", "main", "-xfov", "45", "-aspect", "1.78")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, `<camera id="main"><optics><technique_common><perspective>`+
		`<xfov>45.0</xfov><aspect_ratio>1.78</aspect_ratio></perspective></technique_common></optics></camera>`)
	assert.Contains(t, out, `<created>2024-05-01T12:00:00Z</created>`)
	assert.Contains(t, out, `<authoring_tool>daetool</authoring_tool>`)
	assert.Contains(t, out, `<node id="main-node"><instance_camera url="#main"></instance_camera></node>`)
	assert.NotContains(t, out, "znear")
	assert.NotContains(t, out, "yfov")
}

func TestCamera_ExplicitZeroIsWritten(t *testing.T) {
	isolate(t)

	code, out, errOut := runCmd(t, "camera", "-compact", "-type", "orthographic", "-ymag", "2", "-znear", "0", "-translate", "0,10,0")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, `<orthographic><ymag>2.0</ymag><znear>0.0</znear></orthographic>`)
	assert.Contains(t, out, `<translate>0.0 10.0 0.0</translate>`)
}

func TestCamera_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"orthographic without magnification", []string{"camera", "-type", "orthographic"}},
		{"perspective without fov", []string{"camera", "-aspect", "1.5"}},
		{"fov out of range", []string{"camera", "-xfov", "180"}},
		{"unknown type", []string{"camera", "-type", "fisheye", "-xfov", "45"}},
		{"bad translate", []string{"camera", "-xfov", "45", "-translate", "1,2"}},
		{"bad orbit", []string{"camera", "-xfov", "45", "-orbit", "0,30,45"}},
		{"short orbit", []string{"camera", "-xfov", "45", "-orbit", "10,30"}},
		{"bad up axis", []string{"camera", "-xfov", "45", "-up-axis", "W_UP"}},
		{"unknown flag", []string{"camera", "-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			code, out, errOut := runCmd(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestBuildRoundtripInfo(t *testing.T) {
	dir := isolate(t)

	scene := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(scene, []byte(`
asset:
  title: Turntable
cameras:
  - id: cam
    type: perspective
    yfov: 40
    znear: 0.1
    zfar: 500
visual_scenes:
  - id: main
    nodes:
      - id: rig
        transforms:
          - rotate: [0, 1, 0, 45]
        children:
          - id: camNode
            transforms:
              - lookat: [0, 2, 10, 0, 0, 0, 0, 1, 0]
            cameras: [cam]
`), 0o644))

	built := filepath.Join(dir, "out", "scene.dae")
	code, _, errOut := runCmd(t, "build", "-o", built, scene)
	require.Equal(t, 0, code, errOut)

	again := filepath.Join(dir, "out", "again.dae")
	code, _, errOut = runCmd(t, "roundtrip", "-o", again, built)
	require.Equal(t, 0, code, errOut)

	first, err := os.ReadFile(built)
	require.NoError(t, err)
	second, err := os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	code, out, errOut := runCmd(t, "info", built)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Cameras: 1")
	assert.Contains(t, out, "yfov=40 znear=0.1 zfar=500")
	assert.Contains(t, out, "2 nodes")
	assert.Contains(t, out, "Scene:   #main")
	assert.Contains(t, out, "Up axis: Y_UP")
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "daetool.yaml"), []byte(`
output:
  indent: ""
asset:
  authoring_tool: "rig-builder"
`), 0o644))
	t.Setenv("COLLADA_AUTHOR", "Ada")

	code, out, errOut := runCmd(t, "camera", "-xfov", "30")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `<contributor><author>Ada</author><authoring_tool>rig-builder</authoring_tool></contributor>`)
}

func TestDebugLogging(t *testing.T) {
	isolate(t)

	code, _, errOut := runCmd(t, "camera", "-debug", "-xfov", "30")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "DEBUG")
}

func TestUsage(t *testing.T) {
	code, _, errOut := runCmd(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage:")

	code, out, _ := runCmd(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "daetool <command>")

	code, _, errOut = runCmd(t, "explode")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown command: explode")
}

func TestMissingArguments(t *testing.T) {
	isolate(t)

	for _, cmd := range []string{"build", "roundtrip", "info"} {
		code, _, errOut := runCmd(t, cmd)
		assert.Equal(t, 1, code, cmd)
		assert.Contains(t, errOut, "usage: daetool "+cmd, cmd)
	}
}

func TestCamera_Encoding(t *testing.T) {
	isolate(t)
	t.Setenv("COLLADA_AUTHOR", "Müller")

	code, out, errOut := runCmd(t, "camera", "-compact", "-encoding", "ISO-8859-1", "-xfov", "45")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `<?xml version="1.0" encoding="ISO-8859-1"?>`)
	assert.Contains(t, out, "<author>M\xfcller</author>")
}

func TestCamera_Orbit(t *testing.T) {
	isolate(t)

	code, out, errOut := runCmd(t, "camera", "-compact", "-yfov", "40", "-translate", "0,1,0", "-orbit", "10,0,0")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `<translate>0.0 1.0 0.0</translate><lookat>0.0 0.0 10.0 0.0 0.0 0.0 0.0 1.0 0.0</lookat>`)
}

// testChdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}
