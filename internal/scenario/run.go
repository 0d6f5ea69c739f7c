package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowcheck/flowcheck/internal/evalctx"
	"github.com/flowcheck/flowcheck/internal/registry"
	"github.com/flowcheck/flowcheck/internal/typesystem"
)

// Result is the outcome of one Case or CallCase.
type Result struct {
	Name   string
	Passed bool
	Detail string // populated on failure, or for a call case's substitution check
}

// Report is the outcome of an entire scenario File.
type Report struct {
	Results []Result
}

// Passed reports whether every result in the report passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("scenario: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Run builds a registry from f's classes and executes every case and
// call in order, collecting a Report.
func Run(f *File) (*Report, error) {
	reg := registry.New()
	if err := registry.ApplyManifest(reg, &registry.Manifest{Classes: f.Classes}); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, c := range f.Cases {
		report.Results = append(report.Results, runCase(c, reg))
	}
	for _, c := range f.Calls {
		report.Results = append(report.Results, runCall(c, reg))
	}
	return report, nil
}

func runCase(c Case, reg *registry.Registry) Result {
	expected, err := Build(c.Expected, reg)
	if err != nil {
		return Result{Name: c.Name, Passed: false, Detail: err.Error()}
	}
	actual, err := Build(c.Actual, reg)
	if err != nil {
		return Result{Name: c.Name, Passed: false, Detail: err.Error()}
	}

	ctx := evalctx.New(evalctx.DescriptorResolver{})
	got := typesystem.Match(expected, actual, ctx, reg, typesystem.Substitutions{}, true)
	if got == c.Want {
		return Result{Name: c.Name, Passed: true}
	}
	return Result{
		Name:   c.Name,
		Passed: false,
		Detail: fmt.Sprintf("match(%s, %s) = %v, want %v", expected, actual, got, c.Want),
	}
}

// receiverExpr is the dedicated ctx slot a call case's receiver type is
// bound under, distinct from every integer argument index.
const receiverExpr = -1

func runCall(c CallCase, reg *registry.Registry) Result {
	v := vars{}

	parameters, err := buildParams(c.Parameters, reg, v)
	if err != nil {
		return Result{Name: c.Name, Passed: false, Detail: err.Error()}
	}

	ctx := evalctx.New(evalctx.DescriptorResolver{})

	kind := typesystem.CallSiteFunctionCall
	switch c.Kind {
	case "subscription":
		kind = typesystem.CallSiteSubscription
	case "binaryop":
		kind = typesystem.CallSiteBinaryOp
	}
	site := typesystem.CallSite{Kind: kind, Reflected: c.Reflected}

	if kind != typesystem.CallSiteFunctionCall || !c.Static {
		receiver, err := build(c.Receiver, reg, v)
		if err != nil {
			return Result{Name: c.Name, Passed: false, Detail: err.Error()}
		}
		ctx.Bind(receiverExpr, receiver)
		switch kind {
		case typesystem.CallSiteFunctionCall:
			site.Qualifier = receiverExpr
		case typesystem.CallSiteSubscription:
			site.Operand = receiverExpr
		case typesystem.CallSiteBinaryOp:
			if c.Reflected {
				site.Right = receiverExpr
			} else {
				site.Left = receiverExpr
			}
		}
	}

	explicit := site.FilterExplicitParameters(parameters)

	arguments := make([]typesystem.Argument, 0, len(c.Args))
	for i, argSpec := range c.Args {
		argType, err := build(argSpec, reg, v)
		if err != nil {
			return Result{Name: c.Name, Passed: false, Detail: err.Error()}
		}
		ctx.Bind(i, argType)
		param := typesystem.CallableParameter{}
		if i < len(explicit) {
			param = explicit[i]
		}
		arguments = append(arguments, typesystem.Argument{Expr: i, Parameter: param})
	}
	site.Arguments = arguments

	sigma, ok := typesystem.UnifyGenericCallSite(site, nil, ctx, reg)
	if ok != c.Want {
		return Result{
			Name:   c.Name,
			Passed: false,
			Detail: fmt.Sprintf("unifyGenericCall ok = %v, want %v", ok, c.Want),
		}
	}
	if !ok || c.Substitute == nil {
		return Result{Name: c.Name, Passed: true}
	}

	substituteType, err := build(*c.Substitute, reg, v)
	if err != nil {
		return Result{Name: c.Name, Passed: false, Detail: err.Error()}
	}
	got := typesystem.Substitute(substituteType, sigma, ctx)

	if c.WantSubstituted == nil {
		detail := "substituted: <nil>"
		if got != nil {
			detail = "substituted: " + got.String()
		}
		return Result{Name: c.Name, Passed: true, Detail: detail}
	}
	want, err := Build(*c.WantSubstituted, reg)
	if err != nil {
		return Result{Name: c.Name, Passed: false, Detail: err.Error()}
	}
	if typesystem.Equal(got, want) {
		return Result{Name: c.Name, Passed: true}
	}
	return Result{
		Name:   c.Name,
		Passed: false,
		Detail: fmt.Sprintf("substitute(...) = %s, want %s", got, want),
	}
}
