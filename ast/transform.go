package ast

// Transform rewrites a script. Implementations must not mutate the input.
type Transform interface {
	Name() string
	Transform(s *Script) *Script
}

// TransformFunc adapts a named function to the Transform interface.
type TransformFunc struct {
	N string
	F func(*Script) *Script
}

func (t TransformFunc) Name() string                { return t.N }
func (t TransformFunc) Transform(s *Script) *Script { return t.F(s) }

// Chain composes transforms left-to-right into a single Transform.
// Each transform receives the output of the previous one.
func Chain(transforms ...Transform) Transform {
	return TransformFunc{
		N: "chain",
		F: func(s *Script) *Script {
			for _, t := range transforms {
				s = t.Transform(s)
			}
			return s
		},
	}
}
