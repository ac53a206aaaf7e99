package view

import (
	"errors"
	"fmt"
)

// Result is the value a dispatch listener hands back. It is either a
// ViewResult or a VariablesResult; a nil Result means the listener produced
// nothing.
type Result interface {
	isResult()
}

// ViewResult carries a fully structured view.
type ViewResult struct {
	View *ViewModel
}

func (ViewResult) isResult() {}

// VariablesResult carries a plain variable bag.
type VariablesResult map[string]any

func (VariablesResult) isResult() {}

// FromView wraps a structured view as a Result.
func FromView(vm *ViewModel) Result {
	return ViewResult{View: vm}
}

// FromVariables wraps a variable bag as a Result.
func FromVariables(variables map[string]any) Result {
	return VariablesResult(variables)
}

// Populate folds result into target in place.
//
// A ViewResult replaces the variables and copies template, options, capture
// target and both flags; its children are appended after target's own. A
// VariablesResult replaces the variable bag and touches nothing else. A nil
// result is treated as an empty VariablesResult.
func Populate(result Result, target *ViewModel) error {
	if target == nil {
		return errors.New("view: populate target is required")
	}
	if result == nil {
		result = VariablesResult{}
	}

	switch r := result.(type) {
	case ViewResult:
		if r.View == nil {
			return errors.New("view: structured result has no view")
		}
		populateFromView(r.View, target)
	case *ViewResult:
		if r == nil || r.View == nil {
			return errors.New("view: structured result has no view")
		}
		populateFromView(r.View, target)
	case VariablesResult:
		target.SetVariables(r)
	default:
		return fmt.Errorf("view: unsupported result type %T", result)
	}
	return nil
}

func populateFromView(source, target *ViewModel) {
	if source == target {
		return
	}
	target.SetVariables(source.variables)
	target.SetTemplate(source.Template())
	target.SetOptions(source.options)
	target.SetCaptureTo(source.CaptureTo())
	target.SetTerminal(source.Terminal())
	target.SetAppend(source.IsAppend())
	for _, child := range source.Children() {
		target.AddChild(child)
	}
}
