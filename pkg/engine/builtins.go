package engine

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chazu/frames/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms frames Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: local-to-master -> local_to_master
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpMatrix wraps any transform so it can be passed between builtins.
type sexpMatrix struct {
	m geom.Matrix
}

func (s *sexpMatrix) SexpString(ps *zygo.PrintState) string {
	if s.m.Name() != "" {
		return fmt.Sprintf("(%s %q %s)", kindName(s.m), s.m.Name(), s.m.Class())
	}
	return fmt.Sprintf("(%s %s)", kindName(s.m), s.m.Class())
}
func (s *sexpMatrix) Type() *zygo.RegisteredType { return nil }

func kindName(m geom.Matrix) string {
	switch m.(type) {
	case *geom.Identity:
		return "identity"
	case *geom.Translation:
		return "translation"
	case *geom.Rotation:
		return "rotation"
	case *geom.Scale:
		return "scale"
	case *geom.Combi:
		return "combi"
	case *geom.General:
		return "general"
	}
	return "hmatrix"
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// floatKW returns the numeric keyword name, or def when absent.
func (pa kwArgs) floatKW(name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// boolKW returns the boolean keyword name, or def when absent. A bare
// trailing keyword counts as true.
func (pa kwArgs) boolKW(name string, def bool) (bool, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	if v == zygo.SexpNull {
		return true, nil
	}
	b, err := toBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toFloats extracts n numbers from args.
func toFloats(args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d arguments", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// toBool accepts true/false or a number (non-zero is true).
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	if f, err := toFloat64(s); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toAxis converts :x, :y or :z to 0, 1 or 2.
func toAxis(s zygo.Sexp) (int, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected axis keyword (:x, :y, :z): %w", err)
	}
	switch name {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("invalid axis %q, expected x, y, or z", name)
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toMatrix extracts a transform from a sexpMatrix.
func toMatrix(s zygo.Sexp) (geom.Matrix, error) {
	if m, ok := s.(*sexpMatrix); ok {
		return m.m, nil
	}
	return nil, fmt.Errorf("expected transform, got %T (%s)", s, s.SexpString(nil))
}

// toRotation extracts a *geom.Rotation from a sexpMatrix.
func toRotation(s zygo.Sexp) (*geom.Rotation, error) {
	m, err := toMatrix(s)
	if err != nil {
		return nil, err
	}
	r, ok := m.(*geom.Rotation)
	if !ok {
		return nil, fmt.Errorf("expected rotation, got %s", kindName(m))
	}
	return r, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinContext is the state shared by the builtins of one evaluation.
type builtinContext struct {
	reg       *geom.Registry
	tolerance float64
	logger    *log.Logger
}

// named applies an optional :name keyword and wraps m.
func named(pa kwArgs, m geom.Matrix) (zygo.Sexp, error) {
	if v, ok := pa.kw["name"]; ok {
		n, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		m.SetName(n)
	}
	return &sexpMatrix{m: m}, nil
}

// registerBuiltins installs all frames DSL builtins into a zygomys
// environment. Registered transforms land in bc.reg.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals, and
// kebab-case names are registered in their underscore form.
func registerBuiltins(env *zygo.Zlisp, bc *builtinContext) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, 3)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpVec3{vec: geom.Vec3{f[0], f[1], f[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (translation 1 2 3) or (translation (vec3 1 2 3))
	// -----------------------------------------------------------------------
	env.AddFunction("translation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var v geom.Vec3
		if len(pa.positional) == 1 {
			vec, err := toVec3(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("translation: %w", err)
			}
			v = vec
		} else {
			f, err := toFloats(pa.positional, 3)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("translation: %w", err)
			}
			v = geom.Vec3{f[0], f[1], f[2]}
		}
		return named(pa, geom.NewTranslation(v[0], v[1], v[2]))
	})

	// -----------------------------------------------------------------------
	// (rotation :phi 90 :theta 0 :psi 0)
	// -----------------------------------------------------------------------
	env.AddFunction("rotation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var angles [3]float64
		for i, k := range []string{"phi", "theta", "psi"} {
			f, err := pa.floatKW(k, 0)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotation: %w", err)
			}
			angles[i] = f
		}
		return named(pa, geom.NewRotationEuler(angles[0], angles[1], angles[2]))
	})

	// -----------------------------------------------------------------------
	// (rotation-axes 90 0 90 90 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("rotation_axes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := toFloats(pa.positional, 6)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation-axes: %w", err)
		}
		r, err := geom.NewRotationAxes(f[0], f[1], f[2], f[3], f[4], f[5])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation-axes: %w", err)
		}
		return named(pa, r)
	})

	// -----------------------------------------------------------------------
	// (rotation-matrix 1 0 0 0 1 0 0 0 1), row-major
	// -----------------------------------------------------------------------
	env.AddFunction("rotation_matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := toFloats(pa.positional, 9)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation-matrix: %w", err)
		}
		var m geom.Mat3
		copy(m[:], f)
		r := geom.NewRotation()
		if err := r.SetMatrixTolerance(m, bc.tolerance); err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation-matrix: %w", err)
		}
		return named(pa, r)
	})

	// -----------------------------------------------------------------------
	// (scale 2 2 2)
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := toFloats(pa.positional, 3)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		s, err := geom.NewScale(f[0], f[1], f[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		return named(pa, s)
	})

	// -----------------------------------------------------------------------
	// (combi :at (vec3 1 2 3) :rot r :owned true)
	// -----------------------------------------------------------------------
	env.AddFunction("combi", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var at geom.Vec3
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("combi: at: %w", err)
			}
			at = vec
		}
		var rot *geom.Rotation
		if v, ok := pa.kw["rot"]; ok {
			r, err := toRotation(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("combi: rot: %w", err)
			}
			rot = r
		}
		owned, err := pa.boolKW("owned", false)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("combi: %w", err)
		}
		if owned {
			return named(pa, geom.NewCombiFrom(geom.NewTranslation(at[0], at[1], at[2]), rot))
		}
		return named(pa, geom.NewCombi(at[0], at[1], at[2], rot))
	})

	// -----------------------------------------------------------------------
	// (general :at (vec3 1 2 3) :scale (vec3 2 2 2) :rot r)
	// -----------------------------------------------------------------------
	env.AddFunction("general", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var at geom.Vec3
		sc := geom.Vec3{1, 1, 1}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("general: at: %w", err)
			}
			at = vec
		}
		if v, ok := pa.kw["scale"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("general: scale: %w", err)
			}
			sc = vec
		}
		var rot *geom.Rotation
		if v, ok := pa.kw["rot"]; ok {
			r, err := toRotation(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("general: rot: %w", err)
			}
			rot = r
		}
		g, err := geom.NewGeneral(at[0], at[1], at[2], sc[0], sc[1], sc[2], rot)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("general: %w", err)
		}
		return named(pa, g)
	})

	// -----------------------------------------------------------------------
	// (compose a b c): c is applied first.
	// -----------------------------------------------------------------------
	env.AddFunction("compose", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		ms := make([]geom.Matrix, 0, len(pa.positional))
		for i, a := range pa.positional {
			m, err := toMatrix(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("compose: argument %d: %w", i+1, err)
			}
			ms = append(ms, m)
		}
		return named(pa, geom.Compose(ms...))
	})

	// -----------------------------------------------------------------------
	// (inverse m)
	// -----------------------------------------------------------------------
	env.AddFunction("inverse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("inverse requires exactly one transform")
		}
		m, err := toMatrix(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inverse: %w", err)
		}
		return named(pa, m.Inverse())
	})

	// -----------------------------------------------------------------------
	// (rotate m :x 30 :y 0 :z 45): in place, x then y then z.
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a transform as first argument")
		}
		m, err := toMatrix(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		r, ok := m.(geom.Rotator)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("rotate: %s cannot be rotated in place", kindName(m))
		}
		steps := []struct {
			axis string
			fn   func(float64)
		}{{"x", r.RotateX}, {"y", r.RotateY}, {"z", r.RotateZ}}
		for _, s := range steps {
			if _, ok := pa.kw[s.axis]; !ok {
				continue
			}
			angle, err := pa.floatKW(s.axis, 0)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
			}
			s.fn(angle)
		}
		return pa.positional[0], nil
	})

	// -----------------------------------------------------------------------
	// (reflect m :axis :x :left true :rot-only false)
	// -----------------------------------------------------------------------
	env.AddFunction("reflect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("reflect requires a transform as first argument")
		}
		m, err := toMatrix(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: %w", err)
		}
		r, ok := m.(geom.Reflector)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("reflect: %s cannot be reflected in place", kindName(m))
		}
		v, ok := pa.kw["axis"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("reflect requires :axis")
		}
		axis, err := toAxis(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: axis: %w", err)
		}
		left, err := pa.boolKW("left", true)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: %w", err)
		}
		rotOnly, err := pa.boolKW("rot-only", false)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: %w", err)
		}
		switch axis {
		case 0:
			r.ReflectX(left, rotOnly)
		case 1:
			r.ReflectY(left, rotOnly)
		default:
			r.ReflectZ(left, rotOnly)
		}
		return pa.positional[0], nil
	})

	// -----------------------------------------------------------------------
	// (register "name" m) or (register m)
	// -----------------------------------------------------------------------
	env.AddFunction("register", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 || len(args) > 2 {
			return zygo.SexpNull, fmt.Errorf("register requires an optional name and a transform")
		}
		m, err := toMatrix(args[len(args)-1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("register: %w", err)
		}
		if len(args) == 2 {
			n, err := toString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("register: name: %w", err)
			}
			if m.IsRegistered() && m.Name() != n {
				return zygo.SexpNull, fmt.Errorf("register: transform already registered as %q", m.Name())
			}
			m.SetName(n)
		}
		got, ok := bc.reg.Register(m)
		if !ok {
			bc.logger.Warn("name already registered; keeping the first definition", "name", got.Name())
		}
		return &sexpMatrix{m: got}, nil
	})

	// -----------------------------------------------------------------------
	// (matrix "name")
	// -----------------------------------------------------------------------
	env.AddFunction("matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("matrix requires a name argument")
		}
		n, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("matrix: name: %w", err)
		}
		m, err := bc.reg.Lookup(n)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("matrix: no transform named %q", n)
		}
		return &sexpMatrix{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (local-to-master m (vec3 1 0 0) :vector false)
	// (master-to-local m (vec3 1 0 0) :vector false)
	// -----------------------------------------------------------------------
	mapping := func(label string, point, vector func(geom.Matrix, geom.Vec3) geom.Vec3) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires a transform and a vec3", label)
			}
			m, err := toMatrix(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			v, err := toVec3(pa.positional[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			isVector, err := pa.boolKW("vector", false)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			if isVector {
				return &sexpVec3{vec: vector(m, v)}, nil
			}
			return &sexpVec3{vec: point(m, v)}, nil
		}
	}
	env.AddFunction("local_to_master", mapping("local-to-master",
		geom.Matrix.LocalToMaster, geom.Matrix.LocalToMasterVect))
	env.AddFunction("master_to_local", mapping("master-to-local",
		geom.Matrix.MasterToLocal, geom.Matrix.MasterToLocalVect))

	// -----------------------------------------------------------------------
	// (determinant m)
	// -----------------------------------------------------------------------
	env.AddFunction("determinant", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("determinant requires exactly one transform")
		}
		m, err := toMatrix(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("determinant: %w", err)
		}
		d := m.RotationMatrix().MulDiag(m.Scale()).Determinant()
		return &zygo.SexpFloat{Val: d}, nil
	})
}
