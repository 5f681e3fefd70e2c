package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/collada-go/internal/config"
	"github.com/Faultbox/collada-go/internal/logger"
	"github.com/Faultbox/collada-go/internal/rig"
	"github.com/Faultbox/collada-go/internal/scenefile"
	"github.com/Faultbox/collada-go/pkg/collada"
	"github.com/Faultbox/collada-go/pkg/math"
)

// now is replaced in tests.
var now = time.Now

// session is the state shared by every subcommand after flag parsing.
type session struct {
	cfg    *config.Config
	writer *collada.Writer
	output string
	stdout io.Writer
}

// newFlagSet returns a flag set with the shared flags registered.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *config.Flags, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	output := fs.String("o", "", "Output file (default stdout)")
	return fs, flags, output
}

// start loads the configuration and logger once fs has been parsed.
func start(flags *config.Flags, output string, stdout, stderr io.Writer) (*session, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: stderr}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		return nil, err
	}

	return &session{
		cfg: cfg,
		writer: collada.NewWriter(
			collada.WithIndent(cfg.Output.Indent),
			collada.WithEncoding(cfg.Output.Encoding),
			collada.WithLogger(logger.Log),
		),
		output: output,
		stdout: stdout,
	}, nil
}

func (s *session) write(doc *collada.Document) error {
	defer logger.Sync()

	if s.output != "" {
		if err := s.writer.WriteFile(s.output, doc); err != nil {
			return err
		}
		logger.Info("wrote document", zap.String("path", s.output),
			zap.Int("cameras", len(doc.Cameras)), zap.Int("visual_scenes", len(doc.VisualScenes)))
		return nil
	}

	if err := s.writer.Write(s.stdout, doc); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.stdout)
	return err
}

func cmdCamera(args []string, stdout, stderr io.Writer) error {
	fs, flags, output := newFlagSet("camera", stderr)
	id := fs.String("id", "camera", "Camera id")
	name := fs.String("name", "", "Camera name")
	kind := fs.String("type", "perspective", "Optic type: perspective or orthographic")
	translate := fs.String("translate", "", "Camera node position as x,y,z")
	orbit := fs.String("orbit", "", "Aim at the node position from distance,pitch,yaw (degrees)")

	values := map[string]*float64{}
	for _, f := range []struct{ name, usage string }{
		{"xfov", "Horizontal field of view in degrees"},
		{"yfov", "Vertical field of view in degrees"},
		{"xmag", "Horizontal magnification"},
		{"ymag", "Vertical magnification"},
		{"aspect", "Aspect ratio"},
		{"znear", "Near clip distance"},
		{"zfar", "Far clip distance"},
	} {
		values[f.name] = fs.Float64(f.name, 0, f.usage)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := start(flags, *output, stdout, stderr)
	if err != nil {
		return err
	}

	k, err := collada.ParseOpticKind(*kind)
	if err != nil {
		return err
	}
	optic := collada.NewPerspectiveOptic()
	if k == collada.Orthographic {
		optic = collada.NewOrthographicOptic()
	}

	setters := map[string]func(float64){
		"xfov":   optic.SetXFov,
		"yfov":   optic.SetYFov,
		"xmag":   optic.SetXMag,
		"ymag":   optic.SetYMag,
		"aspect": optic.SetAspectRatio,
		"znear":  optic.SetZNear,
		"zfar":   optic.SetZFar,
	}
	// Only flags given on the command line set a field.
	fs.Visit(func(f *flag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set(*values[f.Name])
		}
	})

	cam := collada.NewCamera(*id, optic)
	if *name != "" {
		cam.SetName(*name)
	}

	node := collada.NewNode()
	node.SetID(*id + "-node")
	if *translate != "" {
		v, err := parseVec3(*translate)
		if err != nil {
			return fmt.Errorf("-translate: %w", err)
		}
		node.AddTransformation(collada.NewTranslate(v))
	}
	if *orbit != "" {
		v, err := parseFloats(*orbit, 3)
		if err != nil {
			return fmt.Errorf("-orbit: %w", err)
		}
		l, err := rig.Orbit{Distance: v[0], Pitch: v[1], Yaw: v[2]}.Lookat()
		if err != nil {
			return fmt.Errorf("-orbit: %w", err)
		}
		node.AddTransformation(l)
	}
	node.InstanceCamera(cam.URL())

	vs := collada.NewVisualScene("scene")
	vs.AddNode(node)

	asset, err := s.cfg.Asset.NewAsset(now().UTC().Truncate(time.Second))
	if err != nil {
		return err
	}
	doc := collada.NewDocument(asset)
	doc.AddCamera(cam)
	doc.AddVisualScene(vs)
	doc.Scene.Set(vs.URL())

	return s.write(doc)
}

func cmdBuild(args []string, stdout, stderr io.Writer) error {
	fs, flags, output := newFlagSet("build", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: daetool build [flags] <scene.yaml>")
	}

	s, err := start(flags, *output, stdout, stderr)
	if err != nil {
		return err
	}

	scene, err := scenefile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	asset, err := s.cfg.Asset.NewAsset(now().UTC().Truncate(time.Second))
	if err != nil {
		return err
	}
	doc, err := scene.Document(asset)
	if err != nil {
		return err
	}
	return s.write(doc)
}

func cmdRoundtrip(args []string, stdout, stderr io.Writer) error {
	fs, flags, output := newFlagSet("roundtrip", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: daetool roundtrip [flags] <file.dae>")
	}

	s, err := start(flags, *output, stdout, stderr)
	if err != nil {
		return err
	}

	doc, err := collada.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Debug("read document", zap.String("path", fs.Arg(0)))
	return s.write(doc)
}

func cmdInfo(args []string, stdout, stderr io.Writer) error {
	fs, flags, _ := newFlagSet("info", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: daetool info <file.dae>")
	}
	if _, err := start(flags, "", stdout, stderr); err != nil {
		return err
	}

	doc, err := collada.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File:    %s\n", fs.Arg(0))
	if a := doc.Asset; a != nil {
		fmt.Fprintf(stdout, "Created: %s\n", a.Created().Format(collada.TimeLayout))
		if tool := a.AuthoringTool(); tool != "" {
			fmt.Fprintf(stdout, "Tool:    %s\n", tool)
		}
		if axis := a.UpAxis(); axis != 0 {
			fmt.Fprintf(stdout, "Up axis: %s\n", axis)
		}
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Cameras: %d\n", len(doc.Cameras))
	for _, c := range doc.Cameras {
		o := c.Optic()
		var fields []string
		for _, f := range o.Fields() {
			if v, ok := f.Value.Lookup(); ok {
				fields = append(fields, f.Tag+"="+strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		fmt.Fprintf(stdout, "  %-12s %-12s %s\n", c.ID(), o.Kind(), strings.Join(fields, " "))
	}

	fmt.Fprintf(stdout, "Visual scenes: %d\n", len(doc.VisualScenes))
	for _, vs := range doc.VisualScenes {
		fmt.Fprintf(stdout, "  %-12s %d nodes\n", vs.ID(), countNodes(vs.Nodes()))
	}
	if url, ok := doc.Scene.Lookup(); ok {
		fmt.Fprintf(stdout, "Scene:   %s\n", url)
	}
	return nil
}

func countNodes(nodes []*collada.Node) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.Children())
	}
	return n
}

func parseVec3(s string) (math.Vec3, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.V3(v[0], v[1], v[2]), nil
}

// parseFloats parses n comma-separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", p)
		}
		out[i] = f
	}
	return out, nil
}
