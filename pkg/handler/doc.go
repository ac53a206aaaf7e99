// Package handler implements the phased view dispatcher: it fires the
// BOOTSTRAP, TEMPLATE_RESOLVE and DISPATCH phases against a workflow context
// and folds the dispatch result into the view model owned by the MVC event.
//
// A minimal wiring looks like:
//
//	d, err := handler.New(handler.WithCarrier(mvcEvent), handler.WithTemplate("workflow/approve"))
//	if err != nil {
//	  return err
//	}
//	d.OnDispatch(func(ctx context.Context, e *event.Event) (view.Result, error) {
//	  return view.FromVariables(map[string]any{"entry": 42}), nil
//	})
//	vm, err := d.Run(ctx, handler.ActionContext{Workflow: "review", Action: "approve"})
package handler
