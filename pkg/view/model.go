package view

// DefaultCaptureTo names the parent variable a child view is rendered into
// when no explicit capture target is configured.
const DefaultCaptureTo = "content"

// ViewModel is the structured view exchanged between phases and the host
// renderer. The zero value is usable; New seeds the variable and option bags.
type ViewModel struct {
	template  string
	variables map[string]any
	options   map[string]any
	captureTo string
	captured  bool
	terminal  bool
	appendTo  bool
	children  []*ViewModel
}

// New returns a view model seeded with copies of the provided bags.
func New(variables, options map[string]any) *ViewModel {
	vm := &ViewModel{}
	vm.SetVariables(variables)
	vm.SetOptions(options)
	return vm
}

// Template returns the template name, empty when unresolved.
func (vm *ViewModel) Template() string {
	return vm.template
}

// SetTemplate records the template name.
func (vm *ViewModel) SetTemplate(name string) *ViewModel {
	vm.template = name
	return vm
}

// Variables returns the live variable bag. Callers must not retain it across
// a SetVariables call.
func (vm *ViewModel) Variables() map[string]any {
	if vm.variables == nil {
		vm.variables = make(map[string]any)
	}
	return vm.variables
}

// SetVariables replaces the whole variable bag. A nil map resets it to empty.
func (vm *ViewModel) SetVariables(variables map[string]any) *ViewModel {
	vm.variables = copyMap(variables)
	return vm
}

// Variable returns a single variable.
func (vm *ViewModel) Variable(name string) (any, bool) {
	value, ok := vm.variables[name]
	return value, ok
}

// SetVariable sets a single variable.
func (vm *ViewModel) SetVariable(name string, value any) *ViewModel {
	vm.Variables()[name] = value
	return vm
}

// Options returns the free-form options bag.
func (vm *ViewModel) Options() map[string]any {
	if vm.options == nil {
		vm.options = make(map[string]any)
	}
	return vm.options
}

// SetOptions replaces the options bag.
func (vm *ViewModel) SetOptions(options map[string]any) *ViewModel {
	vm.options = copyMap(options)
	return vm
}

// Option returns a single option value.
func (vm *ViewModel) Option(name string) (any, bool) {
	value, ok := vm.options[name]
	return value, ok
}

// SetOption sets a single option value.
func (vm *ViewModel) SetOption(name string, value any) *ViewModel {
	vm.Options()[name] = value
	return vm
}

// CaptureTo returns the parent variable this view renders into.
func (vm *ViewModel) CaptureTo() string {
	if !vm.captured {
		return DefaultCaptureTo
	}
	return vm.captureTo
}

// SetCaptureTo overrides the capture target. An empty name disables capture.
func (vm *ViewModel) SetCaptureTo(name string) *ViewModel {
	vm.captureTo = name
	vm.captured = true
	return vm
}

// Terminal reports whether the view is rendered without an enclosing layout.
func (vm *ViewModel) Terminal() bool {
	return vm.terminal
}

// SetTerminal sets the terminal flag.
func (vm *ViewModel) SetTerminal(terminal bool) *ViewModel {
	vm.terminal = terminal
	return vm
}

// IsAppend reports whether the rendered output is appended to an existing
// capture variable instead of replacing it.
func (vm *ViewModel) IsAppend() bool {
	return vm.appendTo
}

// SetAppend sets the append flag.
func (vm *ViewModel) SetAppend(appendTo bool) *ViewModel {
	vm.appendTo = appendTo
	return vm
}

// AddChild appends child after any existing children. An optional captureTo
// overrides the child's capture target.
func (vm *ViewModel) AddChild(child *ViewModel, captureTo ...string) *ViewModel {
	if child == nil {
		return vm
	}
	if len(captureTo) > 0 {
		child.SetCaptureTo(captureTo[0])
	}
	vm.children = append(vm.children, child)
	return vm
}

// Children returns the child views in insertion order.
func (vm *ViewModel) Children() []*ViewModel {
	return vm.children
}

// HasChildren reports whether any child views are attached.
func (vm *ViewModel) HasChildren() bool {
	return len(vm.children) > 0
}

// ClearChildren detaches every child view.
func (vm *ViewModel) ClearChildren() *ViewModel {
	vm.children = nil
	return vm
}

// Len returns the number of children.
func (vm *ViewModel) Len() int {
	return len(vm.children)
}

// Clone returns a shallow copy: bags are copied, children are shared.
func (vm *ViewModel) Clone() *ViewModel {
	if vm == nil {
		return nil
	}
	out := *vm
	out.variables = copyMap(vm.variables)
	out.options = copyMap(vm.options)
	out.children = append([]*ViewModel(nil), vm.children...)
	return &out
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
