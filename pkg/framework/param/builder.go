package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id uint32, key, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Key:       key,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Flags:     CanAutomate,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Name replaces the display name.
func (b *Builder) Name(name string) *Builder {
	b.param.Name = name
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max int) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value
func (b *Builder) Default(value int) *Builder {
	b.param.Default = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Choices turns the parameter into an enum over names starting at 0.
func (b *Builder) Choices(names ...string) *Builder {
	b.param.choices = names
	b.param.Min = 0
	b.param.Max = len(names) - 1
	b.param.Flags |= IsList
	return b
}

// Bypass marks this as the bypass parameter
func (b *Builder) Bypass() *Builder {
	b.param.Flags |= IsBypass
	return b
}

// Formatter sets custom value formatting and parsing. parse may be nil.
func (b *Builder) Formatter(format func(int) string, parse func(string) (int, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter
func (b *Builder) Build() *Parameter {
	b.param.Default = b.param.Clamp(b.param.Default)
	b.param.Reset()
	return b.param
}
