package equations

// ParseOption is an option for creating an equation.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	nameopt string
	regopt  struct {
		reg *Registry
	}
)

// parsectx holds the settings for creating an equation.
type parsectx struct {
	// name is the name to register the equation under, if any.
	name string
	// reg is the registry that the equation registers into and resolves names
	// against.
	reg *Registry
}

// Named registers the equation under name, replacing any equation already
// registered with that name. Other equations using the same registry can then
// use name as an operand.
func Named(name string) ParseOption {
	return nameopt(name)
}

func (o nameopt) parseOption(p parsectx) parsectx {
	p.name = string(o)
	return p
}

// In sets the registry that the equation registers into, if it is named, and
// resolves the names of other equations against. The default is Default. A
// nil registry means the equation neither registers nor uses other
// equations.
func In(reg *Registry) ParseOption {
	return regopt{reg}
}

func (o regopt) parseOption(p parsectx) parsectx {
	p.reg = o.reg
	return p
}
