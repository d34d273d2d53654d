package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/greentime"
)

// DOTGenerator generates Graphviz DOT format representations of a signal cycle
type DOTGenerator struct {
	result  *greentime.Result
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowOffsets   bool
	ShowCounts    bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
	GreenColor    string
	YellowColor   string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowOffsets:   true,
		ShowCounts:    true,
		RankDirection: "LR",
		NodeShape:     "box",
		GreenColor:    "palegreen",
		YellowColor:   "gold",
	}
}

// NewDOTGenerator creates a new DOT generator for the given allocation
func NewDOTGenerator(result *greentime.Result, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		result:  result,
		options: opts,
	}
}

// Generate creates a DOT representation of the signal cycle as a ring of phases
func (g *DOTGenerator) Generate() (string, error) {
	if g.result == nil {
		return "", fmt.Errorf("no allocation result to render")
	}

	var dot strings.Builder

	// DOT header
	dot.WriteString("digraph SignalCycle {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n")
	dot.WriteString(fmt.Sprintf("  label=\"%s\";\n\n", g.graphLabel()))

	plan := g.result.Plan()
	g.generatePhases(&dot, plan)
	g.generateTransitions(&dot, plan)

	// DOT footer
	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) graphLabel() string {
	label := fmt.Sprintf("green %ds / cycle %ds", g.result.GreenCycleTime, g.result.TotalCycleTime)
	if g.result.JunctionID != "" {
		label = fmt.Sprintf("%s: %s", g.result.JunctionID, label)
	}
	return label
}

func phaseID(p greentime.Phase) string {
	return fmt.Sprintf("lane%d_%s", p.Lane, p.Signal)
}

// generatePhases generates DOT nodes for all phases
func (g *DOTGenerator) generatePhases(dot *strings.Builder, plan []greentime.Phase) {
	dot.WriteString("  // Phases\n")

	for _, p := range plan {
		fillColor := g.options.GreenColor
		if p.Signal == greentime.Yellow {
			fillColor = g.options.YellowColor
		}

		label := fmt.Sprintf("lane %d\\n%s %ds", p.Lane, p.Signal, p.Duration)
		if g.options.ShowCounts && p.Signal == greentime.Green {
			label += fmt.Sprintf("\\n%d vehicles (%s)", g.result.Counts[p.Lane], g.result.Lanes[p.Lane])
		}
		if g.options.ShowOffsets {
			label += fmt.Sprintf("\\n@%ds", p.Start)
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"filled\" fillcolor=%s label=\"%s\"];\n",
			phaseID(p), fillColor, label))
	}
}

// generateTransitions links each phase to the next and closes the ring
func (g *DOTGenerator) generateTransitions(dot *strings.Builder, plan []greentime.Phase) {
	dot.WriteString("  // Transitions\n")

	for i, p := range plan {
		next := plan[(i+1)%len(plan)]
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%ds\"];\n", phaseID(p), phaseID(next), p.End()))
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator struct {
	dotGenerator *DOTGenerator
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator(result *greentime.Result, options ...DOTOptions) *SVGGenerator {
	return &SVGGenerator{
		dotGenerator: NewDOTGenerator(result, options...),
	}
}

// Generate creates an SVG representation of the signal cycle
func (g *SVGGenerator) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

// GenerateSVG creates an SVG representation of the signal cycle
func (g *DOTGenerator) GenerateSVG() (string, error) {
	svgGen := &SVGGenerator{dotGenerator: g}
	return svgGen.Generate()
}
