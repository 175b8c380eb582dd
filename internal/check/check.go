// SPDX-License-Identifier: Apache-2.0
package check

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

// Tolerance is the absolute-or-relative comparison of spec §4.J: a
// mismatch is only reported once both bounds are exceeded.
type Tolerance struct {
	Absolute float64
	Relative float64
}

// DefaultTolerance matches spec §4.J's default τ=1e-4.
var DefaultTolerance = Tolerance{Absolute: 1e-4, Relative: 1e-4}

// DefaultStep is the default central-difference step h=1e-5 (spec §4.J).
const DefaultStep = 1e-5

// Scales are the magnitudes test points are drawn from (spec §4.J).
var Scales = []float64{0.1, 1, 10}

// Mismatch reports one differentiation-variable path whose analytic
// gradient disagrees with the numerical estimate beyond tolerance.
type Mismatch struct {
	Function string
	Path     string
	Scale    float64
	Analytic float64
	Numeric  float64
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("gradient mismatch in %s at %s (scale %g): analytic=%v numeric=%v",
		m.Function, m.Path, m.Scale, m.Analytic, m.Numeric)
}

// Verify checks every gradient path of fn against a central-difference
// estimate at one random, non-zero point per scale in Scales (spec §4.J).
// rng is supplied by the caller so results are reproducible across runs
// of the same compilation.
func Verify(fn *ast.Function, inlined ast.Expr, gradients map[string]ast.Gradient, rng *rand.Rand, tol Tolerance) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, scale := range Scales {
		env := samplePoint(fn, scale, rng)
		for _, param := range fn.GradientParams() {
			grad := gradients[param.Name]
			for _, path := range grad.Paths(param.Name) {
				analyticExpr := grad.Expr(path, param.Name)
				analytic, err := Eval(analyticExpr, env)
				if err != nil {
					return mismatches, err
				}
				numeric, err := CentralDifference(inlined, env, path, DefaultStep)
				if err != nil {
					return mismatches, err
				}
				if !withinTolerance(analytic, numeric, tol) {
					mismatches = append(mismatches, Mismatch{
						Function: fn.Name, Path: path, Scale: scale,
						Analytic: analytic, Numeric: numeric,
					})
				}
			}
		}
	}
	return mismatches, nil
}

// CentralDifference estimates d(expr)/d(path) at env via
// (f(x+h)-f(x-h))/(2h) (spec §4.J).
func CentralDifference(expr ast.Expr, env Env, path string, h float64) (float64, error) {
	x0, ok := env.Get(path)
	if !ok {
		return 0, errors.New(errors.KindVerification, errors.CodeUndefinedVariable,
			fmt.Sprintf("gradient checker: no binding for %q", path))
	}
	env.Set(path, x0+h)
	fPlus, err := Eval(expr, env)
	if err != nil {
		return 0, err
	}
	env.Set(path, x0-h)
	fMinus, err := Eval(expr, env)
	if err != nil {
		return 0, err
	}
	env.Set(path, x0)
	return (fPlus - fMinus) / (2 * h), nil
}

func withinTolerance(analytic, numeric float64, tol Tolerance) bool {
	diff := math.Abs(analytic - numeric)
	if diff <= tol.Absolute {
		return true
	}
	return diff <= tol.Relative*(math.Abs(numeric)+1e-10)
}

// samplePoint draws one random, non-zero value per parameter component at
// the given scale (spec §4.J: "random non-zero component values").
func samplePoint(fn *ast.Function, scale float64, rng *rand.Rand) Env {
	env := NewEnv()
	for _, p := range fn.Params {
		if p.Type.IsScalar() {
			env.Scalars[p.Name] = nonZero(rng) * scale
			continue
		}
		fields := make(map[string]float64, len(p.Type.Components))
		for _, c := range p.Type.Components {
			fields[c] = nonZero(rng) * scale
		}
		env.Structs[p.Name] = fields
	}
	return env
}

// nonZero draws a uniform value in [0.5, 1.5) with a random sign, staying
// well clear of zero so log/sqrt/division-heavy primitives stay in domain.
func nonZero(rng *rand.Rand) float64 {
	v := 0.5 + rng.Float64()
	if rng.Intn(2) == 0 {
		v = -v
	}
	return v
}
