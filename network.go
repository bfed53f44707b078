package magicpaper

// Shape classifies the input subgraph of a neuron.
type Shape int

const (
	// ShapeUnsupported is any topology without a closed form here.
	ShapeUnsupported Shape = iota
	// ShapeDirect is one input edge from a neuron with no inputs.
	ShapeDirect
	// ShapeHidden is a single hidden layer whose neurons all read the same
	// single input neuron.
	ShapeHidden
)

func (s Shape) String() string {
	switch s {
	case ShapeDirect:
		return "direct"
	case ShapeHidden:
		return "hidden"
	default:
		return "unsupported"
	}
}

// Network is the one argument function computed by a neuron's input
// subgraph. Func is nil when the shape is unsupported; that is a normal
// outcome meaning there is nothing to plot.
type Network struct {
	Shape Shape
	Func  func(x float64) float64
}

// Supported reports whether Func can be evaluated.
func (n Network) Supported() bool { return n.Func != nil }

// hiddenUnit is a snapshot of one hidden neuron feeding the root.
type hiddenUnit struct {
	kind                Kind
	outWeight, inWeight float64
	bias                float64
}

// Synthesize derives the network function of root from its inputs. Weights
// and biases are captured at call time; synthesize again after editing the
// diagram.
func (d *Diagram) Synthesize(root GlyphID) (Network, error) {
	r, err := d.neuron(root)
	if err != nil {
		return Network{}, err
	}
	kind, bias := r.Kind, r.Neuron.Bias
	inputs := r.Neuron.Inputs

	if len(inputs) == 1 {
		if src, ok := d.glyphs[inputs[0].Source]; ok && src.Neuron != nil && len(src.Neuron.Inputs) == 0 {
			w := inputs[0].Weight
			return Network{Shape: ShapeDirect, Func: func(x float64) float64 {
				return Activation(kind, w*x+bias)
			}}, nil
		}
	}

	if len(inputs) == 0 {
		return Network{Shape: ShapeUnsupported}, nil
	}
	var shared GlyphID
	units := make([]hiddenUnit, 0, len(inputs))
	for i, e := range inputs {
		h, ok := d.glyphs[e.Source]
		if !ok || h.Neuron == nil || len(h.Neuron.Inputs) != 1 {
			return Network{Shape: ShapeUnsupported}, nil
		}
		in := h.Neuron.Inputs[0]
		if i == 0 {
			shared = in.Source
		} else if in.Source != shared {
			return Network{Shape: ShapeUnsupported}, nil
		}
		units = append(units, hiddenUnit{
			kind:      h.Kind,
			outWeight: e.Weight,
			inWeight:  in.Weight,
			bias:      h.Neuron.Bias,
		})
	}
	return Network{Shape: ShapeHidden, Func: func(x float64) float64 {
		z := bias
		for _, u := range units {
			z += u.outWeight * Activation(u.kind, u.inWeight*x+u.bias)
		}
		return Activation(kind, z)
	}}, nil
}
